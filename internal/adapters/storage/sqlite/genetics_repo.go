package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cultivo-console/internal/domain/genetics"
)

type GeneticsRepo struct {
	db *sql.DB
}

func NewGeneticsRepo(db *sql.DB) *GeneticsRepo {
	return &GeneticsRepo{db: db}
}

func (r *GeneticsRepo) Create(ctx context.Context, g genetics.Genetic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO genetics (id, name, created_at)
		VALUES (?,?,?)
	`, g.ID, g.Name, g.CreatedAt)
	return err
}

func (r *GeneticsRepo) GetByID(ctx context.Context, id string) (genetics.Genetic, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return genetics.Genetic{}, genetics.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM genetics
		WHERE id = ?
	`, id)

	var g genetics.Genetic
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return genetics.Genetic{}, genetics.ErrNotFound
		}
		return genetics.Genetic{}, err
	}
	return g, nil
}

func (r *GeneticsRepo) List(ctx context.Context) ([]genetics.Genetic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM genetics
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]genetics.Genetic, 0)
	for rows.Next() {
		var g genetics.Genetic
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
