package database

import (
	"sync"

	"gift-link/app/internal/models"
	"gift-link/app/internal/services"
)

// In-memory store implementations, used when no DATABASE_URL is
// configured (degraded mode: the bot stays conversational but nothing
// survives a restart) and as fakes in tests.

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[int64]models.User)}
}

func (s *MemoryUserStore) Upsert(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Get(userID int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	return u, ok
}

func (s *MemoryUserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[int64]string
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[int64]string)}
}

func (s *MemoryStateStore) Get(userID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID], nil
}

func (s *MemoryStateStore) Set(userID int64, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
	return nil
}

func (s *MemoryStateStore) Clear(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	return nil
}

type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[string]models.Request
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{requests: make(map[string]models.Request)}
}

func (s *MemoryRequestStore) Save(req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.Token] = *req
	return nil
}

func (s *MemoryRequestStore) GetByToken(token string) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[token]
	if !ok {
		return nil, services.ErrRequestNotFound
	}
	return &req, nil
}

func (s *MemoryRequestStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}
