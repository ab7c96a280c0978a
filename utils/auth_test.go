package utils

import "testing"

func TestExtractNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"ananya@example.com", "ananya"},
		{"first.last@bingo.app", "first.last"},
		{"noatsign", "noatsign"},
	}
	for _, tc := range cases {
		if got := ExtractNameFromEmail(tc.email); got != tc.want {
			t.Errorf("ExtractNameFromEmail(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("user-1", "ananya@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected userId user-1, got %s", claims.UserID)
	}
	if claims.Email != "ananya@example.com" {
		t.Errorf("Expected email to round-trip, got %s", claims.Email)
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseJWTToken("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if !CheckPasswordHash("correct horse battery", hash) {
		t.Error("Expected the original password to verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("Expected a wrong password to fail verification")
	}
}
