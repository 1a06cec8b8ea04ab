package devapi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"traveling_help/internal/models"
)

// MemoryStore keeps everything in process memory. It is used by tests and
// by DEVAPI_STORE=memory.
type MemoryStore struct {
	mu      sync.RWMutex
	drivers map[string]models.Driver
	posts   map[string]models.Post
	// now is swapped in tests to order posts deterministically.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drivers: make(map[string]models.Driver),
		posts:   make(map[string]models.Post),
		now:     time.Now,
	}
}

func (s *MemoryStore) CreateDriver(_ context.Context, d *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.drivers {
		if strings.EqualFold(existing.Email, d.Email) || existing.Mobile == d.Mobile {
			return ErrDuplicate
		}
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = s.now()
	d.UpdatedAt = d.CreatedAt
	s.drivers[d.ID] = *d
	return nil
}

func (s *MemoryStore) FindDriver(_ context.Context, identifier string) (models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.drivers {
		if strings.EqualFold(d.Email, identifier) || d.Mobile == identifier {
			return d, nil
		}
	}
	return models.Driver{}, ErrNotFound
}

func (s *MemoryStore) ListPosts(_ context.Context, f PostFilter) ([]models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Post
	for _, p := range s.posts {
		if !containsFold(p.From, f.From) || !containsFold(p.To, f.To) {
			continue
		}
		p.Driver = s.drivers[p.DriverID]
		matched = append(matched, p)
	}
	newestFirst(matched)

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func (s *MemoryStore) PostsByDriver(_ context.Context, driverID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []models.Post{}
	for _, p := range s.posts {
		if p.DriverID == driverID {
			posts = append(posts, p)
		}
	}
	newestFirst(posts)
	return posts, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[p.ID]
	if !ok || existing.DriverID != p.DriverID {
		return ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryStore) DeletePost(_ context.Context, driverID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[id]
	if !ok || existing.DriverID != driverID {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func newestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
