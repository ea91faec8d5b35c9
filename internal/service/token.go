package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spacebook/backend/internal/model"
)

const (
	PrimaryTokenTTL   = 7 * 24 * time.Hour
	FallbackTokenTTL  = 15 * time.Minute
	FederatedTokenTTL = 60 * time.Minute
)

type accessClaims struct {
	UserID string `json:"userid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens. It holds no state
// besides the key.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for email/userID valid for ttl. A zero ttl means
// FallbackTokenTTL; a negative ttl yields an already-expired token.
func (s *TokenService) Issue(email, userID string, ttl time.Duration) (string, time.Time, error) {
	if ttl == 0 {
		ttl = FallbackTokenTTL
	}
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate checks signature, algorithm, expiry and subject. Every failure is
// reported as ErrUnauthorized.
func (s *TokenService) Validate(tokenStr string) (*model.TokenClaims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrUnauthorized
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrUnauthorized)
		}
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	return &model.TokenClaims{
		Email:     claims.Subject,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
