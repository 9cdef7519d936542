package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", "maya@state.edu", 168)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sub, err := ParseSubject(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "maya@state.edu", sub)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", "maya@state.edu", 168)
	require.NoError(t, err)

	_, err = ParseSubject(tok, "other-secret")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Issue("secret", "maya@state.edu", -1)
	require.NoError(t, err)

	_, err = ParseSubject(tok, "secret")
	require.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := ParseSubject("not-a-token", "secret")
	require.Error(t, err)
}
