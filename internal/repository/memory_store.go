package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
)

// MemoryStore keeps everything in process. Used by tests and STORE_DRIVER=memory.
type MemoryStore struct {
	mu         sync.RWMutex
	properties []model.Property
	users      map[string]model.User
	err        error
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]model.User)}
}

// WithError makes every subsequent call fail with err
func (m *MemoryStore) WithError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MemoryStore) ListProperties(_ context.Context, f query.Filter) ([]model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make([]model.Property, 0, len(m.properties))
	for _, p := range m.properties {
		if f.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	// properties are kept in insertion order, so a stable sort keeps ties that way
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetProperty(_ context.Context, id string) (model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return model.Property{}, m.err
	}

	if i := m.indexOf(id); i >= 0 {
		return m.properties[i].Clone(), nil
	}
	return model.Property{}, ErrNotFound
}

func (m *MemoryStore) InsertProperty(_ context.Context, p model.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if m.indexOf(p.ID) >= 0 {
		return fmt.Errorf("duplicate property id %s", p.ID)
	}
	m.properties = append(m.properties, p.Clone())
	return nil
}

func (m *MemoryStore) ReplaceProperty(_ context.Context, p model.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	i := m.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.properties[i] = p.Clone()
	return nil
}

func (m *MemoryStore) DeleteProperty(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.properties = append(m.properties[:i], m.properties[i+1:]...)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return model.User{}, m.err
	}

	u, ok := m.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) FindUsers(_ context.Context, ids []string) (map[string]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[string]model.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *MemoryStore) InsertUser(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if _, ok := m.users[u.ID]; ok {
		return fmt.Errorf("duplicate user id %s", u.ID)
	}
	m.users[u.ID] = u
	return nil
}

func (m *MemoryStore) Truncate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	m.properties = nil
	m.users = make(map[string]model.User)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *MemoryStore) Close(context.Context) error {
	return nil
}

func (m *MemoryStore) indexOf(id string) int {
	for i := range m.properties {
		if m.properties[i].ID == id {
			return i
		}
	}
	return -1
}
