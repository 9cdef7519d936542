package authsvc

import (
	"context"
	"errors"
	"testing"

	"campusrent/model"
	"campusrent/util/hash"
	jwtutil "campusrent/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, errors.New("unexpected ByEmail")
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, errors.New("unexpected ByID")
	}
	return m.byIDFn(ctx, id)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			u.Verified = true
			u.Rating = 5.0
			u.TotalRatings = 0
			return nil
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Email:    "maya@State.EDU",
		Password: "supersecret",
		FullName: "Maya Chen",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.True(t, u.Verified)
	require.Equal(t, 5.0, u.Rating)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "supersecret", u.PasswordHash)

	// token subject is the email
	sub, err := jwtutil.ParseSubject(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "maya@State.EDU", sub)
}

func TestRegister_BadEmailDomain(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret", ".edu", 168)

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "maya@gmail.com",
		Password: "supersecret",
		FullName: "Maya Chen",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadEmailDomain, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "taken@state.edu",
		Password: "supersecret",
		FullName: "Maya Chen",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "ok@state.edu",
		Password: "supersecret",
		FullName: "Maya Chen",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Email:        "maya@state.edu",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	u, tok, err := svc.Login(ctx, model.LoginReq{
		Email:    "maya@state.edu",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("no rows")
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "missing@state.edu",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "maya@state.edu",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret", ".edu", 168)

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "maya@state.edu",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrEmailTaken, Code(makeErr(ErrEmailTaken)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
