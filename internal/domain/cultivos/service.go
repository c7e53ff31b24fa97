package cultivos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cultivo-console/internal/domain/genetics"
	"cultivo-console/internal/domain/locations"
	"cultivo-console/internal/domain/registros"
	"cultivo-console/internal/domain/validation"

	"github.com/google/uuid"
)

// LocationLookup resuelve camas y macetas por id. Lo satisface
// locations.Service.
type LocationLookup interface {
	GetBed(ctx context.Context, id string) (locations.Bed, error)
	GetPot(ctx context.Context, id string) (locations.Pot, error)
}

// GeneticLookup resuelve genéticas por id. Lo satisface genetics.Service.
type GeneticLookup interface {
	GetByID(ctx context.Context, id string) (genetics.Genetic, error)
}

// RegistroLog agrega entradas al historial. Lo satisface registros.Service.
type RegistroLog interface {
	Append(ctx context.Context, cultivoID, actor string, in registros.AppendInput) (registros.Registro, error)
}

// Service orquesta cada mutación lógica: valida, persiste la mutación
// primaria, diffea contra el estado previo, agrega los registros implicados
// y devuelve el estado releído del storage. La mutación primaria siempre se
// persiste ANTES de agregar cualquier registro derivado: si el append falla,
// el estado queda consistente aunque sub-logueado, nunca con un registro
// huérfano.
type Service struct {
	repo Repository
	locs LocationLookup
	gens GeneticLookup
	log  RegistroLog

	now func() time.Time

	// newCode genera el código interno asignado una única vez al crear.
	// El colaborador upstream que emite la secuencia real queda fuera de
	// este core; el default deriva un código corto de un uuid.
	newCode func() string
}

func NewService(repo Repository, locs LocationLookup, gens GeneticLookup, log RegistroLog) *Service {
	return &Service{
		repo:    repo,
		locs:    locs,
		gens:    gens,
		log:     log,
		now:     time.Now,
		newCode: defaultCode,
	}
}

func defaultCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CUL-" + strings.ToUpper(id[:8])
}

// gatherFacts lee del estado persistido los hechos que el validador necesita.
// La ocupación se recalcula de una lectura fresca en cada mutación: acá no
// hay cache autoritativa.
func (s *Service) gatherFacts(ctx context.Context, in AllocationInput, excludeID string) (AllocationFacts, error) {
	var facts AllocationFacts

	if bedID := strings.TrimSpace(in.BedID); bedID != "" {
		_, err := s.locs.GetBed(ctx, bedID)
		switch {
		case err == nil:
			facts.BedExists = true
		case errors.Is(err, locations.ErrNotFound):
		default:
			return facts, err
		}
	}

	if potID := strings.TrimSpace(in.PotID); potID != "" {
		_, err := s.locs.GetPot(ctx, potID)
		switch {
		case err == nil:
			facts.PotExists = true
		case errors.Is(err, locations.ErrNotFound):
		default:
			return facts, err
		}
	}

	if genID := strings.TrimSpace(in.GeneticID); genID != "" {
		_, err := s.gens.GetByID(ctx, genID)
		switch {
		case err == nil:
			facts.GeneticExists = true
		case errors.Is(err, genetics.ErrNotFound):
		default:
			return facts, err
		}
	}

	all, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return facts, err
	}
	facts.Occupied = OccupiedPots(all, excludeID)

	return facts, nil
}

type CreateInput struct {
	Name         string
	LocationKind string
	BedID        string
	PotID        string
	GeneticID    string
	Stage        Stage
	Status       Status
	StartDate    time.Time
	EndDate      *time.Time
	Notes        string
}

// Create da de alta un cultivo. El código interno se asigna acá y no cambia
// nunca más.
func (s *Service) Create(ctx context.Context, actor string, in CreateInput) (Cultivo, error) {
	if strings.TrimSpace(actor) == "" {
		return Cultivo{}, validation.NewError("actor is required")
	}

	alloc := allocationInput(in)
	facts, err := s.gatherFacts(ctx, alloc, "")
	if err != nil {
		return Cultivo{}, err
	}

	loc, violations := ValidateAllocation(alloc, facts)
	if len(violations) > 0 {
		return Cultivo{}, &validation.Error{Violations: violations}
	}

	now := s.now()
	c := Cultivo{
		ID:        uuid.NewString(),
		Code:      s.newCode(),
		Name:      strings.TrimSpace(in.Name),
		Location:  loc,
		GeneticID: strings.TrimSpace(in.GeneticID),
		Stage:     in.Stage,
		Status:    in.Status,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cultivo{}, err
	}
	return c, nil
}

type UpdateInput struct {
	Name         string
	LocationKind string
	BedID        string
	PotID        string
	GeneticID    string
	Stage        Stage
	Status       Status
	StartDate    time.Time
	EndDate      *time.Time
	Notes        string
}

// Update aplica una edición completa. Diff contra el estado previo: un cambio
// de etapa agrega un registro STAGE, un cambio de ubicación agrega un GENERAL
// LOCATION_CHANGED con descriptores antes/después.
func (s *Service) Update(ctx context.Context, actor, id string, in UpdateInput) (Cultivo, error) {
	prior, err := s.getMutable(ctx, id)
	if err != nil {
		return Cultivo{}, err
	}

	alloc := allocationInput(CreateInput(in))
	facts, err := s.gatherFacts(ctx, alloc, prior.ID)
	if err != nil {
		return Cultivo{}, err
	}

	loc, violations := ValidateAllocation(alloc, facts)
	if len(violations) > 0 {
		return Cultivo{}, &validation.Error{Violations: violations}
	}

	now := s.now()
	next := prior
	next.Name = strings.TrimSpace(in.Name)
	next.Location = loc
	next.GeneticID = strings.TrimSpace(in.GeneticID)
	next.Stage = in.Stage
	next.Status = in.Status
	next.StartDate = in.StartDate
	next.EndDate = in.EndDate
	next.Notes = strings.TrimSpace(in.Notes)
	next.UpdatedAt = now
	next.UpdatedBy = actor

	if err := s.repo.Update(ctx, next); err != nil {
		return Cultivo{}, err
	}

	if prior.Stage != next.Stage {
		if err := s.appendStageRegistro(ctx, actor, next.ID, prior.Stage, next.Stage, now); err != nil {
			return Cultivo{}, err
		}
	}
	if prior.Location != next.Location {
		if err := s.appendLocationRegistro(ctx, actor, next.ID, prior.Location, next.Location, now); err != nil {
			return Cultivo{}, err
		}
	}

	return s.repo.GetByID(ctx, next.ID)
}

// ChangeStage persiste solo la etapa (más updatedAt/updatedBy) y agrega un
// registro STAGE con la etapa previa y la nueva.
func (s *Service) ChangeStage(ctx context.Context, actor, id string, newStage Stage) (Cultivo, error) {
	if !ValidStage(newStage) {
		return Cultivo{}, validation.NewError("unknown stage: " + string(newStage))
	}

	prior, err := s.getMutable(ctx, id)
	if err != nil {
		return Cultivo{}, err
	}

	now := s.now()
	next := prior
	next.Stage = newStage
	next.UpdatedAt = now
	next.UpdatedBy = actor

	if err := s.repo.Update(ctx, next); err != nil {
		return Cultivo{}, err
	}

	if err := s.appendStageRegistro(ctx, actor, next.ID, prior.Stage, newStage, now); err != nil {
		return Cultivo{}, err
	}

	return s.repo.GetByID(ctx, next.ID)
}

type RelocateInput struct {
	LocationKind string
	BedID        string
	PotID        string
}

// Relocate mueve un cultivo existente a una cama o maceta destino. El chequeo
// de ocupación se re-corre acotado al destino antes de persistir; un conflicto
// aborta la operación completa sin estado parcial.
func (s *Service) Relocate(ctx context.Context, actor, id string, in RelocateInput) (Cultivo, error) {
	prior, err := s.getMutable(ctx, id)
	if err != nil {
		return Cultivo{}, err
	}

	alloc := AllocationInput{
		Name:         prior.Name,
		LocationKind: in.LocationKind,
		BedID:        in.BedID,
		PotID:        in.PotID,
		GeneticID:    prior.GeneticID,
		Stage:        prior.Stage,
		Status:       prior.Status,
		StartDate:    prior.StartDate,
	}
	facts, err := s.gatherFacts(ctx, alloc, prior.ID)
	if err != nil {
		return Cultivo{}, err
	}

	// La ocupación se evalúa aparte del resto de las reglas: un conflicto
	// en el destino es ErrPotOccupied, no una lista de violaciones.
	occupied := facts.Occupied
	facts.Occupied = nil

	loc, violations := ValidateAllocation(alloc, facts)
	if len(violations) > 0 {
		return Cultivo{}, &validation.Error{Violations: violations}
	}

	if potID, ok := loc.PotID(); ok && prior.Status == StatusActive {
		if _, busy := occupied[potID]; busy {
			return Cultivo{}, ErrPotOccupied
		}
	}

	if loc == prior.Location {
		return prior, nil
	}

	now := s.now()
	next := prior
	next.Location = loc
	next.UpdatedAt = now
	next.UpdatedBy = actor

	if err := s.repo.Update(ctx, next); err != nil {
		return Cultivo{}, err
	}

	if err := s.appendLocationRegistro(ctx, actor, next.ID, prior.Location, next.Location, now); err != nil {
		return Cultivo{}, err
	}

	return s.repo.GetByID(ctx, next.ID)
}

// SoftDelete da de baja un cultivo: deletedAt = now, status forzado a
// FINISHED, y un registro GENERAL "DELETED". Borrar un cultivo ya borrado es
// un no-op idempotente. Nunca se borra físicamente.
func (s *Service) SoftDelete(ctx context.Context, actor, id string) error {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if c.Deleted() {
		return nil
	}

	now := s.now()
	c.DeletedAt = &now
	c.Status = StatusFinished
	c.UpdatedAt = now
	c.UpdatedBy = actor

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	_, err = s.log.Append(ctx, c.ID, actor, registros.AppendInput{
		Kind:      registros.KindGeneral,
		Timestamp: now,
		Detail:    registros.GeneralDetail{Event: registros.EventDeleted},
	})
	if err != nil {
		return fmt.Errorf("cultivo deleted but registro append failed: %w", err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cultivo, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Cultivo, error) {
	return s.repo.List(ctx, filter)
}

// getMutable devuelve el cultivo si existe y no está borrado. Los borrados
// conservan su historial pero no admiten más mutaciones que el propio
// SoftDelete (idempotente).
func (s *Service) getMutable(ctx context.Context, id string) (Cultivo, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cultivo{}, err
	}
	if c.Deleted() {
		return Cultivo{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) appendStageRegistro(ctx context.Context, actor, cultivoID string, prev, next Stage, at time.Time) error {
	_, err := s.log.Append(ctx, cultivoID, actor, registros.AppendInput{
		Kind:      registros.KindStage,
		Timestamp: at,
		Detail: registros.StageDetail{
			PreviousStage: string(prev),
			NewStage:      string(next),
		},
	})
	if err != nil {
		return fmt.Errorf("cultivo persisted but stage registro append failed: %w", err)
	}
	return nil
}

func (s *Service) appendLocationRegistro(ctx context.Context, actor, cultivoID string, before, after Location, at time.Time) error {
	_, err := s.log.Append(ctx, cultivoID, actor, registros.AppendInput{
		Kind:      registros.KindGeneral,
		Timestamp: at,
		Detail: registros.GeneralDetail{
			Event:  registros.EventLocationChanged,
			Before: before.String(),
			After:  after.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("cultivo persisted but location registro append failed: %w", err)
	}
	return nil
}

func allocationInput(in CreateInput) AllocationInput {
	return AllocationInput{
		Name:         in.Name,
		LocationKind: in.LocationKind,
		BedID:        in.BedID,
		PotID:        in.PotID,
		GeneticID:    in.GeneticID,
		Stage:        in.Stage,
		Status:       in.Status,
		StartDate:    in.StartDate,
	}
}
