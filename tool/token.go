package tool

import (
	"sync"
	"time"

	"github.com/moyoez/sharekit/types"
)

// TokenStore keeps the current access token in memory.
type TokenStore struct {
	mu    sync.RWMutex
	token *types.AccessToken
}

// NewTokenStoreFromConfig loads the token configured in AppConfig, if any.
func NewTokenStoreFromConfig(cfg *types.AppConfig) *TokenStore {
	s := &TokenStore{}
	if cfg == nil || cfg.AccessToken == "" {
		return s
	}
	token := &types.AccessToken{Token: cfg.AccessToken}
	if cfg.AccessTokenExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, cfg.AccessTokenExpiresAt)
		if err != nil {
			DefaultLogger.Warnf("Ignoring malformed accessTokenExpiresAt %q: %v", cfg.AccessTokenExpiresAt, err)
		} else {
			token.ExpiresAt = expiresAt
		}
	}
	s.token = token
	return s
}

func (s *TokenStore) CurrentAccessToken() *types.AccessToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) SetAccessToken(token *types.AccessToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
