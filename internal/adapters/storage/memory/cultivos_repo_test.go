package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cultivo-console/internal/domain/cultivos"
)

func activeInPot(id, potID string) cultivos.Cultivo {
	return cultivos.Cultivo{
		ID:        id,
		Code:      "CUL-" + id,
		Name:      "run " + id,
		Location:  cultivos.PotLocation(potID),
		Stage:     cultivos.StageVegetative,
		Status:    cultivos.StatusActive,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// El repo es el boundary serializado: aunque dos escritores pasen el
// validador con la misma lectura, el segundo write tiene que rebotar.
func TestCultivosRepo_PotExclusivityOnCreate(t *testing.T) {
	repo := NewCultivosRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, activeInPot("c1", "pot-1")); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	err := repo.Create(ctx, activeInPot("c2", "pot-1"))
	if !errors.Is(err, cultivos.ErrPotOccupied) {
		t.Fatalf("expected ErrPotOccupied, got %v", err)
	}

	// PAUSED no ocupa.
	paused := activeInPot("c3", "pot-1")
	paused.Status = cultivos.StatusPaused
	if err := repo.Create(ctx, paused); err != nil {
		t.Fatalf("expected paused cultivo allowed, got %v", err)
	}
}

func TestCultivosRepo_PotExclusivityOnUpdate(t *testing.T) {
	repo := NewCultivosRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, activeInPot("c1", "pot-1")); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	if err := repo.Create(ctx, activeInPot("c2", "pot-2")); err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	moved := activeInPot("c2", "pot-1")
	if err := repo.Update(ctx, moved); !errors.Is(err, cultivos.ErrPotOccupied) {
		t.Fatalf("expected ErrPotOccupied on update, got %v", err)
	}

	// Actualizarse a sí mismo en su propia maceta no es conflicto.
	if err := repo.Update(ctx, activeInPot("c1", "pot-1")); err != nil {
		t.Fatalf("self update error: %v", err)
	}
}

func TestCultivosRepo_DeletedFreesPotAndLeavesListing(t *testing.T) {
	repo := NewCultivosRepo()
	ctx := context.Background()

	c1 := activeInPot("c1", "pot-1")
	if err := repo.Create(ctx, c1); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	deletedAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c1.DeletedAt = &deletedAt
	c1.Status = cultivos.StatusFinished
	if err := repo.Update(ctx, c1); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if err := repo.Create(ctx, activeInPot("c2", "pot-1")); err != nil {
		t.Fatalf("expected pot free after delete, got %v", err)
	}

	all, err := repo.List(ctx, cultivos.ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 1 || all[0].ID != "c2" {
		t.Fatalf("expected only c2 listed, got %+v", all)
	}

	// GetByID sigue devolviendo el borrado.
	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !got.Deleted() {
		t.Fatalf("expected deleted cultivo via GetByID")
	}
}
