package locations

import (
	"context"
	"testing"
	"time"

	"cultivo-console/internal/domain/validation"
)

type testRepo struct {
	beds map[string]Bed
	pots map[string]Pot
}

func newTestRepo() *testRepo {
	return &testRepo{beds: map[string]Bed{}, pots: map[string]Pot{}}
}

func (r *testRepo) CreateBed(ctx context.Context, b Bed) error {
	r.beds[b.ID] = b
	return nil
}

func (r *testRepo) GetBed(ctx context.Context, id string) (Bed, error) {
	b, ok := r.beds[id]
	if !ok {
		return Bed{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) ListBeds(ctx context.Context) ([]Bed, error) {
	out := make([]Bed, 0, len(r.beds))
	for _, b := range r.beds {
		out = append(out, b)
	}
	return out, nil
}

func (r *testRepo) CreatePot(ctx context.Context, p Pot) error {
	r.pots[p.ID] = p
	return nil
}

func (r *testRepo) GetPot(ctx context.Context, id string) (Pot, error) {
	p, ok := r.pots[id]
	if !ok {
		return Pot{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListPots(ctx context.Context) ([]Pot, error) {
	out := make([]Pot, 0, len(r.pots))
	for _, p := range r.pots {
		out = append(out, p)
	}
	return out, nil
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestService_CreateBed(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	b, err := svc.CreateBed(context.Background(), CreateBedInput{
		Name:     "  Cama norte  ",
		Width:    floatPtr(1.2),
		Length:   floatPtr(2.4),
		Capacity: intPtr(8),
	})
	if err != nil {
		t.Fatalf("CreateBed error: %v", err)
	}
	if b.ID == "" || b.Name != "Cama norte" {
		t.Fatalf("unexpected bed: %+v", b)
	}
	if b.CreatedAt != now {
		t.Fatalf("expected createdAt = now")
	}
}

func TestService_CreateBed_AccumulatesViolations(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.CreateBed(context.Background(), CreateBedInput{
		Width:    floatPtr(-1),
		Capacity: intPtr(-2),
	})
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{
		"name is required",
		"width must be non-negative",
		"capacity must be non-negative",
	}
	if len(ve.Violations) != len(want) {
		t.Fatalf("expected %v, got %v", want, ve.Violations)
	}
	for i := range want {
		if ve.Violations[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ve.Violations)
		}
	}
}

func TestService_CreatePot_RequiresExistingBed(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.CreatePot(context.Background(), CreatePotInput{
		Name:  "Maceta 20L",
		BedID: "bed-missing",
	})
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0] != "bed does not exist" {
		t.Fatalf("unexpected violations: %v", ve.Violations)
	}

	bed, err := svc.CreateBed(context.Background(), CreateBedInput{Name: "Cama 1"})
	if err != nil {
		t.Fatalf("CreateBed error: %v", err)
	}

	p, err := svc.CreatePot(context.Background(), CreatePotInput{
		Name:   "Maceta 20L",
		BedID:  bed.ID,
		Volume: floatPtr(20),
	})
	if err != nil {
		t.Fatalf("CreatePot error: %v", err)
	}
	if p.BedID != bed.ID {
		t.Fatalf("expected pot linked to bed")
	}
}
