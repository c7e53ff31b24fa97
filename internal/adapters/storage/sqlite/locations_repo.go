package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cultivo-console/internal/domain/locations"
)

type LocationsRepo struct {
	db *sql.DB
}

func NewLocationsRepo(db *sql.DB) *LocationsRepo {
	return &LocationsRepo{db: db}
}

func (r *LocationsRepo) CreateBed(ctx context.Context, b locations.Bed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO beds (
			id, name, location_label,
			width, length, height, capacity,
			notes, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`,
		b.ID,
		b.Name,
		b.LocationLabel,
		toNullFloat(b.Width),
		toNullFloat(b.Length),
		toNullFloat(b.Height),
		toNullInt(b.Capacity),
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *LocationsRepo) GetBed(ctx context.Context, id string) (locations.Bed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return locations.Bed{}, locations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, location_label, width, length, height, capacity, notes, created_at, updated_at
		FROM beds
		WHERE id = ?
	`, id)

	b, err := scanBed(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return locations.Bed{}, locations.ErrNotFound
		}
		return locations.Bed{}, err
	}
	return b, nil
}

func (r *LocationsRepo) ListBeds(ctx context.Context) ([]locations.Bed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, location_label, width, length, height, capacity, notes, created_at, updated_at
		FROM beds
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]locations.Bed, 0)
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *LocationsRepo) CreatePot(ctx context.Context, p locations.Pot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pots (
			id, name, bed_id, volume, location_label, notes, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?)
	`,
		p.ID,
		p.Name,
		p.BedID,
		toNullFloat(p.Volume),
		p.LocationLabel,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *LocationsRepo) GetPot(ctx context.Context, id string) (locations.Pot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return locations.Pot{}, locations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, bed_id, volume, location_label, notes, created_at, updated_at
		FROM pots
		WHERE id = ?
	`, id)

	p, err := scanPot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return locations.Pot{}, locations.ErrNotFound
		}
		return locations.Pot{}, err
	}
	return p, nil
}

func (r *LocationsRepo) ListPots(ctx context.Context) ([]locations.Pot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, bed_id, volume, location_label, notes, created_at, updated_at
		FROM pots
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]locations.Pot, 0)
	for rows.Next() {
		p, err := scanPot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanBed(row rowScanner) (locations.Bed, error) {
	var (
		b                     locations.Bed
		width, length, height sql.NullFloat64
		capacity              sql.NullInt64
	)
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.LocationLabel,
		&width,
		&length,
		&height,
		&capacity,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return locations.Bed{}, err
	}
	b.Width = fromNullFloat(width)
	b.Length = fromNullFloat(length)
	b.Height = fromNullFloat(height)
	b.Capacity = fromNullInt(capacity)
	return b, nil
}

func scanPot(row rowScanner) (locations.Pot, error) {
	var (
		p      locations.Pot
		volume sql.NullFloat64
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.BedID,
		&volume,
		&p.LocationLabel,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return locations.Pot{}, err
	}
	p.Volume = fromNullFloat(volume)
	return p, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func toNullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
