// Package session keeps the logged-in user's auth blob for the lifetime of
// the app, persisted through the same snapshot storage the cart uses so a
// restart does not force a re-login.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/storage"
)

type Session struct {
	mu     sync.RWMutex
	user   *clients.AuthResponse
	store  storage.Store
	logger *zap.Logger
}

func New(store storage.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, logger: logger}
	s.restore()
	return s
}

func (s *Session) restore() {
	if s.store == nil {
		return
	}
	data, err := s.store.Load(context.Background())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("loading session failed, starting logged out", zap.Error(err))
		}
		return
	}
	var user clients.AuthResponse
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("session snapshot is corrupt, starting logged out", zap.Error(err))
		return
	}
	if user.Token != "" {
		s.user = &user
	}
}

func (s *Session) persist() {
	if s.store == nil {
		return
	}
	var data []byte
	if s.user != nil {
		encoded, err := json.Marshal(s.user)
		if err != nil {
			s.logger.Warn("encoding session failed", zap.Error(err))
			return
		}
		data = encoded
	} else {
		data = []byte("null")
	}
	if err := s.store.Save(context.Background(), data); err != nil {
		s.logger.Warn("saving session failed", zap.Error(err))
	}
}

// SetUser stores the auth blob returned by login or register.
func (s *Session) SetUser(user clients.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.persist()
}

// Clear logs the session out locally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.persist()
}

func (s *Session) User() (clients.AuthResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return clients.AuthResponse{}, false
	}
	return *s.user, true
}

// Token implements clients.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}
