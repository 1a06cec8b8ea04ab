package devapi

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"traveling_help/internal/models"
)

// GormStore keeps drivers and posts in PostgreSQL.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateDriver(ctx context.Context, d *models.Driver) error {
	if err := s.DB.WithContext(ctx).Create(d).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormStore) FindDriver(ctx context.Context, identifier string) (models.Driver, error) {
	var d models.Driver
	err := s.DB.WithContext(ctx).
		Where("lower(email) = lower(?) OR mobile = ?", identifier, identifier).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Driver{}, ErrNotFound
	}
	return d, err
}

func (s *GormStore) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Post{})
	if f.From != "" {
		q = q.Where("from_place ILIKE ?", likePattern(f.From))
	}
	if f.To != "" {
		q = q.Where("to_place ILIKE ?", likePattern(f.To))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Preload("Driver").
		Order("created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (s *GormStore) PostsByDriver(ctx context.Context, driverID string) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *GormStore) CreatePost(ctx context.Context, p *models.Post) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *GormStore) UpdatePost(ctx context.Context, p *models.Post) error {
	var existing models.Post
	err := s.DB.WithContext(ctx).
		Where("id = ? AND driver_id = ?", p.ID, p.DriverID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	p.CreatedAt = existing.CreatedAt
	return s.DB.WithContext(ctx).Omit("Driver").Save(p).Error
}

func (s *GormStore) DeletePost(ctx context.Context, driverID, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND driver_id = ?", id, driverID).
		Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports a PostgreSQL unique_violation from lib/pq.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
