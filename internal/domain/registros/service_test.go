package registros

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	entries []Registro
}

func (r *testRepo) Create(ctx context.Context, e Registro) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByCultivo(ctx context.Context, cultivoID string, filter ListFilter) ([]Registro, error) {
	out := make([]Registro, 0)
	for _, e := range r.entries {
		if e.CultivoID == cultivoID {
			out = append(out, e)
		}
	}
	return out, nil
}

func intPtr(n int) *int { return &n }

func TestService_Append_AssignsIDAndCreatedAt(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	e, err := svc.Append(context.Background(), "cultivo-1", "user-1", AppendInput{
		Kind:      KindWaterNutrition,
		Timestamp: now.Add(-time.Hour),
		Detail:    WaterNutritionDetail{Fertilizer: "grow A+B"},
		Notes:     "  riego de la mañana  ",
	})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if e.CreatedAt != now || e.CreatedBy != "user-1" {
		t.Fatalf("unexpected audit: %+v", e)
	}
	if e.Notes != "riego de la mañana" {
		t.Fatalf("expected trimmed notes, got %q", e.Notes)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 persisted entry")
	}
}

func TestService_Append_NilDetailAllowed(t *testing.T) {
	svc := NewService(&testRepo{})

	_, err := svc.Append(context.Background(), "cultivo-1", "user-1", AppendInput{
		Kind:      KindGeneral,
		Timestamp: time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
		Notes:     "sin detalle",
	})
	if err != nil {
		t.Fatalf("expected nil detail to be valid, got %v", err)
	}
}

func TestService_Append_RejectsInvalidInput(t *testing.T) {
	svc := NewService(&testRepo{})
	ts := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		cultivoID string
		in        AppendInput
	}{
		{"blank cultivo id", "", AppendInput{Kind: KindGeneral, Timestamp: ts}},
		{"unknown kind", "cultivo-1", AppendInput{Kind: Kind("NOTE"), Timestamp: ts}},
		{"zero timestamp", "cultivo-1", AppendInput{Kind: KindGeneral}},
		{"detail kind mismatch", "cultivo-1", AppendInput{
			Kind:      KindStage,
			Timestamp: ts,
			Detail:    GeneralDetail{Event: "X"},
		}},
		{"severity out of range", "cultivo-1", AppendInput{
			Kind:      KindHealth,
			Timestamp: ts,
			Detail:    HealthDetail{PestOrFungus: "thrips", Severity: intPtr(9)},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), tc.cultivoID, "user-1", tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Append_SeverityBounds(t *testing.T) {
	svc := NewService(&testRepo{})
	ts := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	for _, sev := range []int{1, 3, 5} {
		_, err := svc.Append(context.Background(), "cultivo-1", "user-1", AppendInput{
			Kind:      KindHealth,
			Timestamp: ts,
			Detail:    HealthDetail{PestOrFungus: "oidio", Severity: intPtr(sev)},
		})
		if err != nil {
			t.Fatalf("severity %d should be valid: %v", sev, err)
		}
	}
}

func TestService_ListByCultivo_RequiresID(t *testing.T) {
	svc := NewService(&testRepo{})
	if _, err := svc.ListByCultivo(context.Background(), "  ", ListFilter{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
