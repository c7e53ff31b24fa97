package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cultivo-console/internal/domain/cultivos"

	"github.com/jackc/pgx/v5/pgconn"
)

type CultivosRepo struct {
	db *sql.DB
}

func NewCultivosRepo(db *sql.DB) *CultivosRepo {
	return &CultivosRepo{db: db}
}

const cultivoColumns = `
	id, code, name,
	location_kind, bed_id, pot_id,
	genetic_id, stage, status,
	start_date, end_date, notes,
	deleted_at,
	created_at, created_by, updated_at, updated_by
`

func (r *CultivosRepo) Create(ctx context.Context, c cultivos.Cultivo) error {
	bedID, potID := locationColumns(c.Location)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cultivos (`+cultivoColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		c.ID,
		c.Code,
		c.Name,
		string(c.Location.Kind()),
		bedID,
		potID,
		toNullString(c.GeneticID),
		string(c.Stage),
		string(c.Status),
		c.StartDate,
		toNullTime(c.EndDate),
		c.Notes,
		toNullTime(c.DeletedAt),
		c.CreatedAt,
		c.CreatedBy,
		c.UpdatedAt,
		c.UpdatedBy,
	)
	return mapConflict(err)
}

func (r *CultivosRepo) Update(ctx context.Context, c cultivos.Cultivo) error {
	bedID, potID := locationColumns(c.Location)

	// code y created_* nunca se reescriben.
	res, err := r.db.ExecContext(ctx, `
		UPDATE cultivos
		SET
			name = $2,
			location_kind = $3,
			bed_id = $4,
			pot_id = $5,
			genetic_id = $6,
			stage = $7,
			status = $8,
			start_date = $9,
			end_date = $10,
			notes = $11,
			deleted_at = $12,
			updated_at = $13,
			updated_by = $14
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		string(c.Location.Kind()),
		bedID,
		potID,
		toNullString(c.GeneticID),
		string(c.Stage),
		string(c.Status),
		c.StartDate,
		toNullTime(c.EndDate),
		c.Notes,
		toNullTime(c.DeletedAt),
		c.UpdatedAt,
		c.UpdatedBy,
	)
	if err != nil {
		return mapConflict(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cultivos.ErrNotFound
	}
	return nil
}

func (r *CultivosRepo) GetByID(ctx context.Context, id string) (cultivos.Cultivo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cultivos.Cultivo{}, cultivos.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+cultivoColumns+`
		FROM cultivos
		WHERE id = $1
	`, id)

	c, err := scanCultivo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cultivos.Cultivo{}, cultivos.ErrNotFound
		}
		return cultivos.Cultivo{}, err
	}
	return c, nil
}

func (r *CultivosRepo) List(ctx context.Context, filter cultivos.ListFilter) ([]cultivos.Cultivo, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + cultivoColumns + `
		FROM cultivos
		WHERE deleted_at IS NULL
	`)

	args := []any{}
	argN := 1

	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}
	if filter.Stage != "" {
		sb.WriteString(fmt.Sprintf(" AND stage = $%d", argN))
		args = append(args, string(filter.Stage))
		argN++
	}
	if filter.LocationKind != "" {
		sb.WriteString(fmt.Sprintf(" AND location_kind = $%d", argN))
		args = append(args, string(filter.LocationKind))
		argN++
	}
	if filter.LocationID != "" {
		sb.WriteString(fmt.Sprintf(" AND (bed_id = $%d OR pot_id = $%d)", argN, argN))
		args = append(args, filter.LocationID)
		argN++
	}
	if filter.GeneticID != "" {
		sb.WriteString(fmt.Sprintf(" AND genetic_id = $%d", argN))
		args = append(args, filter.GeneticID)
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	if filter.Sort == cultivos.SortStartAsc {
		sb.WriteString(" ORDER BY start_date ASC")
	} else {
		sb.WriteString(" ORDER BY start_date DESC")
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cultivos.Cultivo, 0)
	for rows.Next() {
		c, err := scanCultivo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCultivo(row rowScanner) (cultivos.Cultivo, error) {
	var (
		c                    cultivos.Cultivo
		kind                 string
		bedID, potID, genID  sql.NullString
		endDate, deletedAt   sql.NullTime
		stage, status        string
	)

	if err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&kind,
		&bedID,
		&potID,
		&genID,
		&stage,
		&status,
		&c.StartDate,
		&endDate,
		&c.Notes,
		&deletedAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.UpdatedAt,
		&c.UpdatedBy,
	); err != nil {
		return cultivos.Cultivo{}, err
	}

	switch cultivos.LocationKind(kind) {
	case cultivos.LocationKindBed:
		c.Location = cultivos.BedLocation(bedID.String)
	case cultivos.LocationKindPot:
		c.Location = cultivos.PotLocation(potID.String)
	}

	c.GeneticID = genID.String
	c.Stage = cultivos.Stage(stage)
	c.Status = cultivos.Status(status)
	c.EndDate = fromNullTime(endDate)
	c.DeletedAt = fromNullTime(deletedAt)

	return c, nil
}

func locationColumns(l cultivos.Location) (bedID, potID sql.NullString) {
	if id, ok := l.BedID(); ok {
		bedID = sql.NullString{String: id, Valid: true}
	}
	if id, ok := l.PotID(); ok {
		potID = sql.NullString{String: id, Valid: true}
	}
	return bedID, potID
}

// mapConflict traduce la violación del índice único parcial a ErrPotOccupied.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_cultivos_pot_active" {
		return cultivos.ErrPotOccupied
	}
	return err
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
