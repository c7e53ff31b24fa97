package cultivos

import (
	"context"
	"errors"
	"testing"
	"time"

	"cultivo-console/internal/domain/genetics"
	"cultivo-console/internal/domain/locations"
	"cultivo-console/internal/domain/registros"
	"cultivo-console/internal/domain/validation"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Cultivo
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Cultivo{}}
}

func (r *testRepo) Create(ctx context.Context, c Cultivo) error {
	if c.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[c.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Cultivo) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Cultivo, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cultivo{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Cultivo, error) {
	out := make([]Cultivo, 0)
	for _, c := range r.byID {
		if c.Deleted() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// -------------------------
// Test lookups y log
// -------------------------

type testLookups struct {
	beds map[string]bool
	pots map[string]bool
	gens map[string]bool
}

func newTestLookups() *testLookups {
	return &testLookups{
		beds: map[string]bool{"bed-1": true},
		pots: map[string]bool{"pot-1": true, "pot-2": true},
		gens: map[string]bool{"gen-1": true},
	}
}

func (l *testLookups) GetBed(ctx context.Context, id string) (locations.Bed, error) {
	if !l.beds[id] {
		return locations.Bed{}, locations.ErrNotFound
	}
	return locations.Bed{ID: id}, nil
}

func (l *testLookups) GetPot(ctx context.Context, id string) (locations.Pot, error) {
	if !l.pots[id] {
		return locations.Pot{}, locations.ErrNotFound
	}
	return locations.Pot{ID: id}, nil
}

func (l *testLookups) GetByID(ctx context.Context, id string) (genetics.Genetic, error) {
	if !l.gens[id] {
		return genetics.Genetic{}, genetics.ErrNotFound
	}
	return genetics.Genetic{ID: id}, nil
}

type loggedEntry struct {
	cultivoID string
	actor     string
	in        registros.AppendInput
}

type testLog struct {
	entries []loggedEntry
	fail    bool
}

func (l *testLog) Append(ctx context.Context, cultivoID, actor string, in registros.AppendInput) (registros.Registro, error) {
	if l.fail {
		return registros.Registro{}, errors.New("log: append failed")
	}
	l.entries = append(l.entries, loggedEntry{cultivoID: cultivoID, actor: actor, in: in})
	return registros.Registro{ID: "reg-1", CultivoID: cultivoID, Kind: in.Kind}, nil
}

// -------------------------
// Helpers
// -------------------------

func newTestService(repo *testRepo, log *testLog) *Service {
	lookups := newTestLookups()
	svc := NewService(repo, lookups, lookups, log)
	svc.newCode = func() string { return "CUL-TEST01" }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:         "Northern Lights #3",
		LocationKind: "POT",
		PotID:        "pot-1",
		GeneticID:    "gen-1",
		Stage:        StageGermination,
		Status:       StatusActive,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsCodeAndAudit(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if c.Code != "CUL-TEST01" {
		t.Fatalf("expected code CUL-TEST01, got %s", c.Code)
	}
	if c.CreatedAt != now || c.UpdatedAt != now {
		t.Fatalf("expected audit timestamps = now")
	}
	if c.CreatedBy != "user-1" || c.UpdatedBy != "user-1" {
		t.Fatalf("expected audit actor user-1")
	}
	if id, ok := c.Location.PotID(); !ok || id != "pot-1" {
		t.Fatalf("expected pot location pot-1")
	}
	if len(log.entries) != 0 {
		t.Fatalf("create must not append registros, got %d", len(log.entries))
	}
}

func TestService_Create_AccumulatesAllViolations(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testLog{})

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		LocationKind: "POT",
		BedID:        "bed-1", // ambos ids seteados
		PotID:        "pot-1",
	})
	if err == nil {
		t.Fatalf("expected error")
	}

	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	// name, bed-con-kind-POT, stage, status, start date: todas juntas.
	want := []string{
		"name is required",
		"bed id must be empty when location kind is POT",
		"stage is required",
		"status is required",
		"start date is required",
	}
	if len(ve.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), ve.Violations)
	}
	for i := range want {
		if ve.Violations[i] != want[i] {
			t.Fatalf("violation %d: expected %q, got %q", i, want[i], ve.Violations[i])
		}
	}
}

func TestService_Create_OccupiedPotRejected(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testLog{})

	if _, err := svc.Create(context.Background(), "user-1", validCreateInput()); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	in := validCreateInput()
	in.Name = "Second run"
	_, err := svc.Create(context.Background(), "user-1", in)
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0] != "pot is already occupied by an active cultivo" {
		t.Fatalf("unexpected violations: %v", ve.Violations)
	}
}

func TestService_Create_FinishedCultivoFreesPot(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testLog{})

	first, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	// Terminar la primera corrida libera la maceta.
	upd := UpdateInput(validCreateInput())
	upd.Status = StatusFinished
	if _, err := svc.Update(context.Background(), "user-1", first.ID, upd); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	in := validCreateInput()
	in.Name = "Second run"
	if _, err := svc.Create(context.Background(), "user-1", in); err != nil {
		t.Fatalf("expected pot free after FINISHED, got %v", err)
	}
}

func TestService_Update_StageChange_AppendsStageRegistro(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := UpdateInput(validCreateInput())
	in.Stage = StageVegetative

	updated, err := svc.Update(context.Background(), "user-2", c.ID, in)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Stage != StageVegetative {
		t.Fatalf("expected stage VEGETATIVE, got %s", updated.Stage)
	}
	if updated.Code != c.Code {
		t.Fatalf("code must never change: %s vs %s", c.Code, updated.Code)
	}
	if updated.CreatedBy != "user-1" || updated.UpdatedBy != "user-2" {
		t.Fatalf("unexpected audit: createdBy=%s updatedBy=%s", updated.CreatedBy, updated.UpdatedBy)
	}

	if len(log.entries) != 1 {
		t.Fatalf("expected 1 registro, got %d", len(log.entries))
	}
	e := log.entries[0]
	if e.in.Kind != registros.KindStage {
		t.Fatalf("expected STAGE registro, got %s", e.in.Kind)
	}
	d, ok := e.in.Detail.(registros.StageDetail)
	if !ok {
		t.Fatalf("expected StageDetail, got %T", e.in.Detail)
	}
	if d.PreviousStage != string(StageGermination) || d.NewStage != string(StageVegetative) {
		t.Fatalf("unexpected stage detail: %+v", d)
	}
}

func TestService_Update_NoChanges_NoRegistros(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(context.Background(), "user-1", c.ID, UpdateInput(validCreateInput())); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(log.entries) != 0 {
		t.Fatalf("expected no registros without stage/location change, got %d", len(log.entries))
	}
}

func TestService_ChangeStage_AlwaysAppends(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.ChangeStage(context.Background(), "user-1", c.ID, StageSeedling); err != nil {
		t.Fatalf("ChangeStage error: %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].in.Kind != registros.KindStage {
		t.Fatalf("expected STAGE registro, got %+v", log.entries)
	}

	_, err = svc.ChangeStage(context.Background(), "user-1", c.ID, Stage("FLORACION"))
	if _, ok := validation.AsError(err); !ok {
		t.Fatalf("expected validation error for unknown stage, got %v", err)
	}
}

func TestService_Relocate_AppendsLocationRegistro(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	moved, err := svc.Relocate(context.Background(), "user-1", c.ID, RelocateInput{
		LocationKind: "BED",
		BedID:        "bed-1",
	})
	if err != nil {
		t.Fatalf("Relocate error: %v", err)
	}
	if id, ok := moved.Location.BedID(); !ok || id != "bed-1" {
		t.Fatalf("expected bed location, got %v", moved.Location)
	}

	if len(log.entries) != 1 {
		t.Fatalf("expected 1 registro, got %d", len(log.entries))
	}
	d, ok := log.entries[0].in.Detail.(registros.GeneralDetail)
	if !ok {
		t.Fatalf("expected GeneralDetail, got %T", log.entries[0].in.Detail)
	}
	if d.Event != registros.EventLocationChanged {
		t.Fatalf("expected LOCATION_CHANGED, got %s", d.Event)
	}
	if d.Before != "POT:pot-1" || d.After != "BED:bed-1" {
		t.Fatalf("unexpected descriptors: before=%s after=%s", d.Before, d.After)
	}
}

func TestService_Relocate_SameLocation_NoOp(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	same, err := svc.Relocate(context.Background(), "user-1", c.ID, RelocateInput{
		LocationKind: "POT",
		PotID:        "pot-1",
	})
	if err != nil {
		t.Fatalf("Relocate error: %v", err)
	}
	if same.UpdatedAt != c.UpdatedAt {
		t.Fatalf("no-op relocate must not touch updatedAt")
	}
	if len(log.entries) != 0 {
		t.Fatalf("no-op relocate must not append registros, got %d", len(log.entries))
	}
}

func TestService_Relocate_OccupiedPot_Conflict(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	first, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	in := validCreateInput()
	in.Name = "Second run"
	in.PotID = "pot-2"
	second, err := svc.Create(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	_, err = svc.Relocate(context.Background(), "user-1", second.ID, RelocateInput{
		LocationKind: "POT",
		PotID:        "pot-1",
	})
	if !errors.Is(err, ErrPotOccupied) {
		t.Fatalf("expected ErrPotOccupied, got %v", err)
	}

	// La operación aborta completa: ni mutación ni registro.
	after, _ := repo.GetByID(context.Background(), second.ID)
	if id, ok := after.Location.PotID(); !ok || id != "pot-2" {
		t.Fatalf("expected cultivo untouched in pot-2, got %v", after.Location)
	}
	if len(log.entries) != 0 {
		t.Fatalf("conflict must not append registros, got %d", len(log.entries))
	}
	_ = first
}

func TestService_Relocate_PausedIntoOccupiedPot_Allowed(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	if _, err := svc.Create(context.Background(), "user-1", validCreateInput()); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	in := validCreateInput()
	in.Name = "Paused run"
	in.PotID = "pot-2"
	in.Status = StatusPaused
	paused, err := svc.Create(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	// La exclusividad aplica solo a cultivos ACTIVOS: un pausado puede
	// compartir maceta con uno activo.
	moved, err := svc.Relocate(context.Background(), "user-1", paused.ID, RelocateInput{
		LocationKind: "POT",
		PotID:        "pot-1",
	})
	if err != nil {
		t.Fatalf("Relocate error: %v", err)
	}
	if id, ok := moved.Location.PotID(); !ok || id != "pot-1" {
		t.Fatalf("expected paused cultivo moved to pot-1, got %v", moved.Location)
	}
}

func TestService_Relocate_InvalidTarget_ReportsViolations(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testLog{})

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Un destino inválido se reporta como violaciones, nunca como conflicto
	// de ocupación.
	_, err = svc.Relocate(context.Background(), "user-1", c.ID, RelocateInput{
		LocationKind: "POT",
		PotID:        "pot-missing",
	})
	if errors.Is(err, ErrPotOccupied) {
		t.Fatalf("expected validation error, got ErrPotOccupied")
	}
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0] != "pot does not exist" {
		t.Fatalf("unexpected violations: %v", ve.Violations)
	}
}

func TestService_SoftDelete_ForcesFinishedAndLogs(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.SoftDelete(context.Background(), "user-1", c.ID); err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), c.ID)
	if !stored.Deleted() || *stored.DeletedAt != now {
		t.Fatalf("expected deletedAt = now")
	}
	if stored.Status != StatusFinished {
		t.Fatalf("expected status forced to FINISHED, got %s", stored.Status)
	}

	if len(log.entries) != 1 {
		t.Fatalf("expected 1 registro, got %d", len(log.entries))
	}
	d, ok := log.entries[0].in.Detail.(registros.GeneralDetail)
	if !ok || d.Event != registros.EventDeleted {
		t.Fatalf("expected GENERAL DELETED registro, got %+v", log.entries[0].in.Detail)
	}

	// Idempotente: segundo delete no toca nada ni loguea de nuevo.
	if err := svc.SoftDelete(context.Background(), "user-1", c.ID); err != nil {
		t.Fatalf("SoftDelete #2 error: %v", err)
	}
	if len(log.entries) != 1 {
		t.Fatalf("second delete must be a no-op, got %d registros", len(log.entries))
	}
}

func TestService_MutationsOnDeleted_ReturnNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testLog{})

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.SoftDelete(context.Background(), "user-1", c.ID); err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}

	if _, err := svc.Update(context.Background(), "user-1", c.ID, UpdateInput(validCreateInput())); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := svc.ChangeStage(context.Background(), "user-1", c.ID, StageHarvest); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on stage change, got %v", err)
	}
	if _, err := svc.Relocate(context.Background(), "user-1", c.ID, RelocateInput{LocationKind: "BED", BedID: "bed-1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on relocate, got %v", err)
	}

	// GetByID sí devuelve el borrado: el historial sigue siendo consultable.
	got, err := svc.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !got.Deleted() {
		t.Fatalf("expected deleted cultivo visible via GetByID")
	}
}

func TestService_ChangeStage_AppendFailure_KeepsMutation(t *testing.T) {
	repo := newTestRepo()
	log := &testLog{}
	svc := newTestService(repo, log)

	c, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	log.fail = true
	_, err = svc.ChangeStage(context.Background(), "user-1", c.ID, StageSeedling)
	if err == nil {
		t.Fatalf("expected error when registro append fails")
	}

	// La mutación primaria persiste ANTES del registro derivado: el cambio
	// queda aplicado aunque el append falle.
	stored, _ := repo.GetByID(context.Background(), c.ID)
	if stored.Stage != StageSeedling {
		t.Fatalf("expected primary mutation persisted, got %s", stored.Stage)
	}
}
