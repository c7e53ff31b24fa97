package registros

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cultivo-console/internal/metrics"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

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

// AppendInput es una entrada nueva del historial. Detail puede ser nil
// (todos los campos por tipo son opcionales); si viene, su Kind tiene que
// coincidir con el tipo declarado.
type AppendInput struct {
	Kind      Kind
	Timestamp time.Time
	Detail    Detail
	Notes     string
}

// Append valida la forma del payload según el tipo, asigna id y createdAt,
// y persiste. Nunca muta una entrada existente.
func (s *Service) Append(ctx context.Context, cultivoID, actor string, in AppendInput) (Registro, error) {
	if strings.TrimSpace(cultivoID) == "" {
		return Registro{}, ErrInvalidInput
	}
	if in.Kind == "" || !ValidKind(in.Kind) {
		return Registro{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, in.Kind)
	}
	if in.Timestamp.IsZero() {
		return Registro{}, fmt.Errorf("%w: timestamp is required", ErrInvalidInput)
	}
	if in.Detail != nil && in.Detail.Kind() != in.Kind {
		return Registro{}, fmt.Errorf("%w: detail kind %s does not match entry kind %s",
			ErrInvalidInput, in.Detail.Kind(), in.Kind)
	}
	if h, ok := in.Detail.(HealthDetail); ok && h.Severity != nil {
		if *h.Severity < 1 || *h.Severity > 5 {
			return Registro{}, fmt.Errorf("%w: severity must be between 1 and 5", ErrInvalidInput)
		}
	}

	r := Registro{
		ID:        uuid.NewString(),
		CultivoID: cultivoID,
		Kind:      in.Kind,
		Timestamp: in.Timestamp,
		Detail:    in.Detail,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
		CreatedBy: strings.TrimSpace(actor),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Registro{}, err
	}
	metrics.RegistrosAppended.WithLabelValues(string(r.Kind)).Inc()
	return r, nil
}

func (s *Service) ListByCultivo(ctx context.Context, cultivoID string, filter ListFilter) ([]Registro, error) {
	if strings.TrimSpace(cultivoID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCultivo(ctx, cultivoID, filter)
}
