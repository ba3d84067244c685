package core

import (
	"strings"
)

const (
	SessionCookie = "access_token"
	BearerPrefix  = "Bearer "
)

// Sessions checks the bearer token carried in the session cookie. It never
// refreshes or rotates the token.
type Sessions struct {
	tokens TokenIssuer
}

func NewSessions(tokens TokenIssuer) *Sessions {
	return &Sessions{tokens: tokens}
}

// BearerValue formats a token the way it is stored in the cookie.
func BearerValue(token string) string {
	return BearerPrefix + token
}

// BearerToken extracts the token from a cookie value of the form
// "Bearer <token>". The marker must be a prefix, not merely present.
func BearerToken(cookieValue string) (string, bool) {
	token, found := strings.CutPrefix(cookieValue, BearerPrefix)
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate returns the username bound to the cookie value or
// ErrUnauthenticated.
func (s *Sessions) Authenticate(cookieValue string) (string, error) {
	token, ok := BearerToken(cookieValue)
	if !ok {
		return "", ErrUnauthenticated
	}

	username, err := s.tokens.Validate(token)
	if err != nil {
		return "", ErrUnauthenticated
	}
	return username, nil
}
