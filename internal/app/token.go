package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// TokenService issues and verifies signed observer tokens. A token grants an
// external client (typically an AI agent without a match presence) read
// access to one player's filtered view through the view RPC.
type TokenService struct {
	secret string
	issuer string
}

const tokenScopeView = "view"

// NewTokenService constructs a token service from the shared HMAC secret and
// issuer id.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: secret, issuer: issuer}
}

// GenerateViewToken signs a token for the given match and player, valid for
// ttl.
func (s *TokenService) GenerateViewToken(matchID, playerID string, ttl time.Duration) (string, error) {
	if s == nil {
		return "", fmt.Errorf("token service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("token config is incomplete")
	}
	if matchID == "" || playerID == "" {
		return "", fmt.Errorf("match id and player id are required")
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   playerID,
		"mid":   matchID,
		"scope": tokenScopeView,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyViewToken checks signature, issuer, scope and expiry, returning the
// match and player the token is bound to.
func (s *TokenService) VerifyViewToken(tokenString string) (matchID, playerID string, err error) {
	if s == nil || s.secret == "" {
		return "", "", fmt.Errorf("token service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid view token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid view token claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", "", fmt.Errorf("view token issuer mismatch")
	}
	if scope, _ := claims["scope"].(string); scope != tokenScopeView {
		return "", "", fmt.Errorf("view token scope mismatch")
	}
	matchID, _ = claims["mid"].(string)
	playerID, _ = claims["sub"].(string)
	if matchID == "" || playerID == "" {
		return "", "", fmt.Errorf("view token missing subject")
	}
	return matchID, playerID, nil
}
