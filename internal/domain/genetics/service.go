package genetics

import (
	"context"
	"strings"
	"time"

	"cultivo-console/internal/domain/validation"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create da de alta una genética (glue de administración, no parte del core).
func (s *Service) Create(ctx context.Context, name string) (Genetic, error) {
	if strings.TrimSpace(name) == "" {
		return Genetic{}, validation.NewError("name is required")
	}

	g := Genetic{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Genetic{}, err
	}
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Genetic, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Genetic, error) {
	return s.repo.List(ctx)
}
