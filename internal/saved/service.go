package saved

import (
	"context"

	"github.com/makaziyangu/makazi-backend/internal/property"
)

type Service struct {
	repo       Repository
	properties property.Repository
}

func NewService(repo Repository, properties property.Repository) *Service {
	return &Service{repo: repo, properties: properties}
}

func (s *Service) Save(ctx context.Context, uid, propertyID string) error {
	return s.repo.Add(ctx, uid, propertyID)
}

func (s *Service) Unsave(ctx context.Context, uid, propertyID string) error {
	return s.repo.Remove(ctx, uid, propertyID)
}

func (s *Service) IDs(ctx context.Context, uid string) ([]string, error) {
	return s.repo.IDs(ctx, uid)
}

// List resolves the saved set to full property documents. Ids whose
// property has since been deleted are silently skipped.
func (s *Service) List(ctx context.Context, uid string) ([]property.Property, error) {
	ids, err := s.repo.IDs(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.properties.GetByIDs(ctx, ids)
}
