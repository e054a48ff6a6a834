package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory. It backs unit tests and
// the memory store backend.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*Profile),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (m *MemoryStore) Create(_ context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[userID]; exists {
		return nil, ErrAlreadyExists
	}

	now := m.now()
	p := &Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		FullName:  params.FullName,
		Email:     normalizeEmail(params.Email),
		Bio:       cloneBio(params.Bio),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.profiles[userID] = p
	return clone(p), nil
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryStore) GetMany(_ context.Context, userIDs []string) (map[string]*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]*Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := m.profiles[id]; ok {
			out[id] = clone(p)
		}
	}
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	p.FullName = params.FullName
	p.Bio = cloneBio(params.Bio)
	p.UpdatedAt = m.now()
	return clone(p), nil
}

// Delete removes a profile. Profiles are never deleted through the API; tests
// use it to simulate a post whose author vanished.
func (m *MemoryStore) Delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, userID)
}

func clone(p *Profile) *Profile {
	c := *p
	c.Bio = cloneBio(p.Bio)
	return &c
}

var _ Store = (*MemoryStore)(nil)
