package qr

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	uri, err := DataURI("PICKUP-10-1-1700000000-abc")
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("got %q; want %q prefix", uri[:min(len(uri), 30)], prefix)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	// PNG magic bytes
	if len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Fatal("payload is not a PNG")
	}
}
