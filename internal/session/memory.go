package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"traveling_help/internal/api"
)

// MemoryStore is an in-process Provider. One store stands for one browser.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	profile string
	expires time.Time
	Now     func() time.Time
}

// NewMemoryStore returns an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Now: time.Now}
}

// Factory returns a Factory that hands out this store for every request.
func (m *MemoryStore) Factory() Factory {
	return func(*gin.Context) Provider { return m }
}

func (m *MemoryStore) Save(token string, profile api.Driver, ttlDays int) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = string(raw)
	m.expires = m.Now().Add(time.Duration(ttlDays) * 24 * time.Hour)
	return nil
}

// SetRaw stores values verbatim, bypassing encoding.
func (m *MemoryStore) SetRaw(token, profile string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = profile
	m.expires = m.Now().Add(ttl)
}

func (m *MemoryStore) Load() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	if !now.Before(m.expires) {
		return Session{}, false
	}
	return decode(m.token, m.profile, now)
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.profile = "", ""
	m.expires = time.Time{}
}

// Expires reports when the stored session lapses.
func (m *MemoryStore) Expires() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expires
}
