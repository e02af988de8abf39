package password

import (
	"errors"
	"testing"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

func TestHash_UniqueSalts(t *testing.T) {
	h1, err := Hash("Abcd123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash("Abcd123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for the same secret")
	}
	if !Verify("Abcd123!", h1) || !Verify("Abcd123!", h2) {
		t.Fatalf("secret should verify against both hashes")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	h, err := Hash("Abcd123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify("Abcd124!", h) {
		t.Fatalf("wrong secret should not verify")
	}
	if Verify("Abcd123!", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash should not verify")
	}
}

func TestValidateStrength(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		ok     bool
	}{
		{"valid", "Abcd123!", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "abcd123!", false},
		{"no lowercase", "ABCD123!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcd1234", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStrength(tc.secret)
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
			}
		})
	}
}
