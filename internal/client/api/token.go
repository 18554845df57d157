package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the transient bearer credential. It lives in memory only:
// the token does not survive a restart, matching a browser session store.
// A 401 from any call clears it (see transport.go).
type TokenStore struct {
	mu    sync.Mutex
	token string
	now   func() time.Time // test seam
}

func NewTokenStore() *TokenStore {
	return &TokenStore{now: time.Now}
}

// Set replaces the stored token.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear drops the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Get returns the token to attach, or "". When the token is a JWT with an
// exp claim already in the past, it is dropped instead of sent; the server
// would only answer 401. Tokens that do not parse as JWTs are treated as
// opaque and returned unchanged.
func (s *TokenStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return ""
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, &claims); err != nil {
		return s.token
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now()) {
		s.token = ""
		return ""
	}
	return s.token
}
