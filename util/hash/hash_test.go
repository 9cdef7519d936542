package hash

import "testing"

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("supersecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "supersecret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Check(h, "supersecret") {
		t.Fatal("correct password rejected")
	}
	if Check(h, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestHash_Salted(t *testing.T) {
	a, err := HashPassword("supersecret")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("supersecret")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}
