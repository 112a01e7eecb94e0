package search

import (
	"context"
	"time"

	"github.com/makaziyangu/makazi-backend/internal/cache"
	"github.com/makaziyangu/makazi-backend/internal/property"
)

const (
	snapshotKey = "search:snapshot"
	snapshotTTL = 30 * time.Second
)

// Service answers searches from a short-lived snapshot of the full
// property list, so a burst of keystroke-by-keystroke queries hits the
// document store at most once per TTL window.
type Service struct {
	properties property.Repository
	cache      *cache.Cache
}

func NewService(properties property.Repository, c *cache.Cache) *Service {
	return &Service{properties: properties, cache: c}
}

func (s *Service) Search(ctx context.Context, f Filters) ([]property.Property, error) {
	var snapshot []property.Property
	if err := s.cache.Get(ctx, snapshotKey, &snapshot); err != nil {
		list, err := s.properties.List(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = list
		s.cache.Set(ctx, snapshotKey, snapshot, snapshotTTL)
	}
	return Apply(f, snapshot), nil
}
