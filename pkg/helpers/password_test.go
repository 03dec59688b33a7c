package helpers

import "testing"

func TestHashPasswordIsSaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for the same plaintext, got identical")
	}
	if h1 == "secret1" || h2 == "secret1" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	h, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPassword(h, "secret1") {
		t.Errorf("correct password did not verify")
	}
	if CheckPassword(h, "secret2") {
		t.Errorf("wrong password verified")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "secret1") {
		t.Errorf("malformed hash must verify false")
	}
}
