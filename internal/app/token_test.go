package app

import (
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestViewTokenRoundtrip(t *testing.T) {
	svc := NewTokenService("secret", "stockpile")

	token, err := svc.GenerateViewToken("match-1", "player-1", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	matchID, playerID, err := svc.VerifyViewToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if matchID != "match-1" || playerID != "player-1" {
		t.Fatalf("token bound to %s/%s", matchID, playerID)
	}
}

func TestViewTokenGenerateRequiresIdentity(t *testing.T) {
	svc := NewTokenService("secret", "stockpile")
	if _, err := svc.GenerateViewToken("", "player-1", time.Minute); err == nil {
		t.Fatal("empty match id should fail")
	}
	if _, err := svc.GenerateViewToken("match-1", "", time.Minute); err == nil {
		t.Fatal("empty player id should fail")
	}
	if _, err := NewTokenService("", "stockpile").GenerateViewToken("match-1", "player-1", time.Minute); err == nil {
		t.Fatal("missing secret should fail")
	}
}

func TestViewTokenWrongSecretFails(t *testing.T) {
	token, err := NewTokenService("secret", "stockpile").GenerateViewToken("match-1", "player-1", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, _, err := NewTokenService("other", "stockpile").VerifyViewToken(token); err == nil {
		t.Fatal("foreign secret should not verify")
	}
}

func TestViewTokenExpiryEnforced(t *testing.T) {
	svc := NewTokenService("secret", "stockpile")
	token, err := svc.GenerateViewToken("match-1", "player-1", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, _, err := svc.VerifyViewToken(token); err == nil {
		t.Fatal("expired token should not verify")
	}
}

func TestViewTokenIssuerMismatchFails(t *testing.T) {
	token, err := NewTokenService("secret", "someone-else").GenerateViewToken("match-1", "player-1", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, _, err := NewTokenService("secret", "stockpile").VerifyViewToken(token); err == nil {
		t.Fatal("foreign issuer should not verify")
	}
}

func TestViewTokenScopeEnforced(t *testing.T) {
	claims := jwt.MapClaims{
		"iss":   "stockpile",
		"sub":   "player-1",
		"mid":   "match-1",
		"scope": "admin",
		"exp":   time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, _, err := NewTokenService("secret", "stockpile").VerifyViewToken(signed); err == nil {
		t.Fatal("wrong scope should not verify")
	}
}
