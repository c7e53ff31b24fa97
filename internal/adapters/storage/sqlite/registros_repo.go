package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"cultivo-console/internal/domain/registros"
)

type RegistrosRepo struct {
	db *sql.DB
}

func NewRegistrosRepo(db *sql.DB) *RegistrosRepo {
	return &RegistrosRepo{db: db}
}

func (r *RegistrosRepo) Create(ctx context.Context, e registros.Registro) error {
	detail, err := registros.MarshalDetail(e.Detail)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO registros (
			id, cultivo_id, kind, ts, detail, notes, created_at, created_by
		) VALUES (?,?,?,?,?,?,?,?)
	`,
		e.ID,
		e.CultivoID,
		string(e.Kind),
		e.Timestamp,
		string(detail),
		e.Notes,
		e.CreatedAt,
		e.CreatedBy,
	)
	return err
}

func (r *RegistrosRepo) ListByCultivo(ctx context.Context, cultivoID string, filter registros.ListFilter) ([]registros.Registro, error) {
	cultivoID = strings.TrimSpace(cultivoID)
	if cultivoID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, cultivo_id, kind, ts, detail, notes, created_at, created_by
		FROM registros
		WHERE cultivo_id = ?
	`)

	args := []any{cultivoID}

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, "?")
			args = append(args, string(k))
		}
		sb.WriteString(" AND kind IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(" AND ts >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		sb.WriteString(" AND ts <= ?")
		args = append(args, *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	// Empates de ts se resuelven por orden de inserción (rowid).
	sb.WriteString(" ORDER BY ts DESC, rowid ASC LIMIT ?")
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]registros.Registro, 0)
	for rows.Next() {
		var (
			e      registros.Registro
			kind   string
			detail sql.NullString
		)
		if err := rows.Scan(
			&e.ID,
			&e.CultivoID,
			&kind,
			&e.Timestamp,
			&detail,
			&e.Notes,
			&e.CreatedAt,
			&e.CreatedBy,
		); err != nil {
			return nil, err
		}

		e.Kind = registros.Kind(kind)
		d, err := registros.UnmarshalDetail(e.Kind, []byte(detail.String))
		if err != nil {
			return nil, err
		}
		e.Detail = d

		out = append(out, e)
	}

	return out, rows.Err()
}
