package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Fatalf("correct password should verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewTokenService("secret-b").Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret")
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Verify(bad); err != ErrInvalidToken {
			t.Fatalf("Verify(%q) should fail with ErrInvalidToken, got %v", bad, err)
		}
	}
}
