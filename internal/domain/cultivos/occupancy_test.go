package cultivos

import (
	"testing"
	"time"
)

func TestOccupiedPots(t *testing.T) {
	deleted := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	all := []Cultivo{
		{ID: "c1", Status: StatusActive, Location: PotLocation("pot-1")},
		{ID: "c2", Status: StatusPaused, Location: PotLocation("pot-2")},
		{ID: "c3", Status: StatusActive, Location: PotLocation("pot-3"), DeletedAt: &deleted},
		{ID: "c4", Status: StatusActive, Location: BedLocation("bed-1")},
		{ID: "c5", Status: StatusActive, Location: PotLocation("pot-5")},
	}

	occupied := OccupiedPots(all, "")
	if len(occupied) != 2 {
		t.Fatalf("expected 2 occupied pots, got %d: %v", len(occupied), occupied)
	}
	if _, ok := occupied["pot-1"]; !ok {
		t.Fatalf("expected pot-1 occupied")
	}
	if _, ok := occupied["pot-5"]; !ok {
		t.Fatalf("expected pot-5 occupied")
	}
}

func TestOccupiedPots_ExcludesEditedCultivo(t *testing.T) {
	all := []Cultivo{
		{ID: "c1", Status: StatusActive, Location: PotLocation("pot-1")},
	}

	occupied := OccupiedPots(all, "c1")
	if len(occupied) != 0 {
		t.Fatalf("expected own pot excluded, got %v", occupied)
	}
}
