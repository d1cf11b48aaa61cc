package state

import (
	"fmt"
	"sync"
	"time"
)

// TokenInfo is a mock OAuth token record. JSON field names follow the
// OAuth 2.0 token response convention.
type TokenInfo struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ClientID     string `json:"client_id"`
}

// AuthStore issues and validates mock OAuth tokens. A client holds at most
// one live token; issuing a new one invalidates the previous immediately.
type AuthStore struct {
	mu sync.RWMutex
	// client_id -> current token
	tokensByClient map[string]TokenInfo
	// access_token -> client_id, for O(1) validation
	tokenIndex map[string]string

	now func() time.Time // injectable clock for tests
}

// NewAuthStore creates an empty token store.
func NewAuthStore() *AuthStore {
	return &AuthStore{
		tokensByClient: make(map[string]TokenInfo),
		tokenIndex:     make(map[string]string),
		now:            time.Now,
	}
}

// GenerateToken mints a new access token for a client. Any previous token
// for the client is removed from the validation index in the same critical
// section, so the stale token is rejected before its nominal expiry.
func (s *AuthStore) GenerateToken(clientID string, expiresIn int64, scope string) TokenInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	if old, ok := s.tokensByClient[clientID]; ok {
		delete(s.tokenIndex, old.AccessToken)
	}

	token := TokenInfo{
		AccessToken:  fmt.Sprintf("mock_token_%s_%d", clientID, now),
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		ExpiresAt:    now + expiresIn,
		RefreshToken: fmt.Sprintf("mock_refresh_%s_%d", clientID, now),
		Scope:        scope,
		ClientID:     clientID,
	}

	s.tokenIndex[token.AccessToken] = clientID
	s.tokensByClient[clientID] = token
	return token
}

// GetToken returns the current token for a client.
func (s *AuthStore) GetToken(clientID string) (TokenInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokensByClient[clientID]
	return token, ok
}

// ValidateToken reports whether an access token exists and has not expired.
func (s *AuthStore) ValidateToken(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clientID, ok := s.tokenIndex[token]
	if !ok {
		return false
	}
	info, ok := s.tokensByClient[clientID]
	if !ok {
		return false
	}
	return info.ExpiresAt > s.now().Unix()
}

// RevokeToken removes a token and its owning client's record.
func (s *AuthStore) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clientID, ok := s.tokenIndex[token]; ok {
		delete(s.tokenIndex, token)
		delete(s.tokensByClient, clientID)
	}
}
