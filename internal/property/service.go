package property

import (
	"context"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Property, error) {
	return s.repo.List(ctx)
}

func (s *Service) Featured(ctx context.Context) ([]Property, error) {
	return s.repo.Featured(ctx)
}

func (s *Service) ByAgent(ctx context.Context, agentID string) ([]Property, error) {
	return s.repo.ByAgent(ctx, agentID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]Property, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *Service) Create(ctx context.Context, p Property) (Property, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, updates gateway.Fields) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
