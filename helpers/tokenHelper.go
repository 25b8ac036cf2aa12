package helpers

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"foodiehub/models"
)

// SignedDetails are the claims embedded in a session token. Tokens are
// stateless: nothing is stored at issuance, only signature and expiry are
// checked on presentation.
type SignedDetails struct {
	Uid  string `json:"uid"`
	Role string `json:"role"`
	jwt.StandardClaims
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), ttl: ttl}
}

func (m *TokenMaker) GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := SignedDetails{
		Uid:  userID,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

// ValidateToken resolves a bearer token to the identity it was issued for.
// Missing, malformed, tampered and expired tokens all fail with
// models.ErrUnauthorized.
func (m *TokenMaker) ValidateToken(signedToken string) (models.Identity, error) {
	if signedToken == "" {
		return models.Identity{}, fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return models.Identity{}, fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return models.Identity{}, fmt.Errorf("%w: token expired", models.ErrUnauthorized)
	}
	return models.Identity{UserID: claims.Uid, Role: claims.Role}, nil
}
