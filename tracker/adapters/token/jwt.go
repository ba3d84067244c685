package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"task-tracker/tracker/core"
)

// Service issues and validates HS256 session tokens. Tokens are stateless:
// nothing is stored server side.
type Service struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// New returns a token service signing with secret. A nil now uses time.Now.
func New(secret []byte, now func() time.Time) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if now == nil {
		now = time.Now
	}

	return &Service{
		secret: secret,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

func (s *Service) Issue(username string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(username) == "" || ttl <= 0 {
		return "", core.ErrInvalidArgs
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate returns the username embedded in token. It does not check that
// the user still exists.
func (s *Service) Validate(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: missing subject", core.ErrInvalidToken)
	}
	return claims.Subject, nil
}

var _ core.TokenIssuer = (*Service)(nil)
