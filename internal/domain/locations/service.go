package locations

import (
	"context"
	"errors"
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

type CreateBedInput struct {
	Name          string
	LocationLabel string
	Width         *float64
	Length        *float64
	Height        *float64
	Capacity      *int
	Notes         string
}

// CreateBed crea una cama. Los numéricos son opcionales; si vienen, tienen
// que ser no negativos.
func (s *Service) CreateBed(ctx context.Context, in CreateBedInput) (Bed, error) {
	var violations []string

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "name is required")
	}
	for _, f := range []struct {
		label string
		value *float64
	}{
		{"width", in.Width},
		{"length", in.Length},
		{"height", in.Height},
	} {
		if f.value != nil && *f.value < 0 {
			violations = append(violations, f.label+" must be non-negative")
		}
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		violations = append(violations, "capacity must be non-negative")
	}

	if len(violations) > 0 {
		return Bed{}, &validation.Error{Violations: violations}
	}

	now := s.now()
	b := Bed{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		LocationLabel: strings.TrimSpace(in.LocationLabel),
		Width:         in.Width,
		Length:        in.Length,
		Height:        in.Height,
		Capacity:      in.Capacity,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateBed(ctx, b); err != nil {
		return Bed{}, err
	}
	return b, nil
}

type CreatePotInput struct {
	Name          string
	BedID         string
	Volume        *float64
	LocationLabel string
	Notes         string
}

// CreatePot crea una maceta dentro de una cama existente. La integridad
// referencial maceta→cama se chequea acá, no en el motor de storage.
func (s *Service) CreatePot(ctx context.Context, in CreatePotInput) (Pot, error) {
	var violations []string

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "name is required")
	}

	bedID := strings.TrimSpace(in.BedID)
	if bedID == "" {
		violations = append(violations, "bed id is required")
	} else if _, err := s.repo.GetBed(ctx, bedID); err != nil {
		if errors.Is(err, ErrNotFound) {
			violations = append(violations, "bed does not exist")
		} else {
			return Pot{}, err
		}
	}

	if in.Volume != nil && *in.Volume < 0 {
		violations = append(violations, "volume must be non-negative")
	}

	if len(violations) > 0 {
		return Pot{}, &validation.Error{Violations: violations}
	}

	now := s.now()
	p := Pot{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		BedID:         bedID,
		Volume:        in.Volume,
		LocationLabel: strings.TrimSpace(in.LocationLabel),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreatePot(ctx, p); err != nil {
		return Pot{}, err
	}
	return p, nil
}

func (s *Service) GetBed(ctx context.Context, id string) (Bed, error) {
	return s.repo.GetBed(ctx, strings.TrimSpace(id))
}

func (s *Service) ListBeds(ctx context.Context) ([]Bed, error) {
	return s.repo.ListBeds(ctx)
}

func (s *Service) GetPot(ctx context.Context, id string) (Pot, error) {
	return s.repo.GetPot(ctx, strings.TrimSpace(id))
}

func (s *Service) ListPots(ctx context.Context) ([]Pot, error) {
	return s.repo.ListPots(ctx)
}
