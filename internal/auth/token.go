package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/interviewace/interviewace/internal/utils"
)

const tokenTTL = 24 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenManager issues and verifies the API's HS256 bearer tokens. The secret
// is injected once at startup; there is no key rotation in this demo backend.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token with the user id as subject and a 24h expiry.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	const op = "TokenManager.Issue"

	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	const op = "TokenManager.Parse"

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || tok == nil || !tok.Valid {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token", err)
	}
	if claims.Subject == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing subject", nil)
	}
	return claims, nil
}
