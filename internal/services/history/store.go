package history

import (
	"context"
	"fmt"

	"github.com/urbanallinone/radio-host-api/internal/database"
	"github.com/urbanallinone/radio-host-api/internal/models"
)

// Store persists announcement history.
type Store struct {
	db *database.DB
}

// NewStore creates a new history store
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Record saves one announcement outcome.
func (s *Store) Record(ctx context.Context, a *models.Announcement) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("record announcement: %w", err)
	}
	return nil
}

// Recent returns the newest announcements, most recent first. Limit is
// capped at 100.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var announcements []models.Announcement
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

// CountByCategory reports how many announcements each slot produced.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Select("category, count(*) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count announcements: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Total
	}
	return counts, nil
}
