package auth

import "testing"

func TestHashPasswordAndVerify(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword("pw123", hash) {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword("pw124", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !VerifyPassword("same-password", first) || !VerifyPassword("same-password", second) {
		t.Fatal("both hashes must verify against the original password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("pw123", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash must fail verification")
	}
	if VerifyPassword("pw123", "") {
		t.Fatal("empty hash must fail verification")
	}
}
