package auth

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, expires, err := tm.GenerateToken("errbot")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expires.IsZero() {
		t.Error("expected expiry")
	}
	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Host != "errbot" || claims.Subject != "errbot" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, _ := NewTokenManager("one", 5).GenerateToken("h")
	if _, err := NewTokenManager("two", 5).ParseToken(token); err == nil {
		t.Fatal("expected signature failure")
	}
}
