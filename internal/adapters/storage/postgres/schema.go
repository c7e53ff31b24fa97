package postgres

import (
	"database/sql"
	"fmt"
)

// schema es el esquema completo. El índice único parcial sobre pot_id es la
// restricción de exclusividad a nivel storage: a lo sumo un cultivo ACTIVO
// no borrado por maceta, incluso ante mutaciones concurrentes.
const schema = `
CREATE TABLE IF NOT EXISTS beds (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    location_label TEXT NOT NULL DEFAULT '',
    width          DOUBLE PRECISION,
    length         DOUBLE PRECISION,
    height         DOUBLE PRECISION,
    capacity       INTEGER,
    notes          TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pots (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    bed_id         TEXT NOT NULL REFERENCES beds(id),
    volume         DOUBLE PRECISION,
    location_label TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS genetics (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cultivos (
    id            TEXT PRIMARY KEY,
    code          TEXT NOT NULL,
    name          TEXT NOT NULL,
    location_kind TEXT NOT NULL CHECK (location_kind IN ('BED', 'POT')),
    bed_id        TEXT,
    pot_id        TEXT,
    genetic_id    TEXT,
    stage         TEXT NOT NULL,
    status        TEXT NOT NULL CHECK (status IN ('ACTIVE', 'PAUSED', 'FINISHED')),
    start_date    TIMESTAMPTZ NOT NULL,
    end_date      TIMESTAMPTZ,
    notes         TEXT NOT NULL DEFAULT '',
    deleted_at    TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL,
    created_by    TEXT NOT NULL DEFAULT '',
    updated_at    TIMESTAMPTZ NOT NULL,
    updated_by    TEXT NOT NULL DEFAULT '',
    CHECK (
        (location_kind = 'BED' AND bed_id IS NOT NULL AND pot_id IS NULL) OR
        (location_kind = 'POT' AND pot_id IS NOT NULL AND bed_id IS NULL)
    )
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_cultivos_pot_active
    ON cultivos(pot_id)
    WHERE location_kind = 'POT' AND status = 'ACTIVE' AND deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS registros (
    id         TEXT PRIMARY KEY,
    cultivo_id TEXT NOT NULL REFERENCES cultivos(id),
    kind       TEXT NOT NULL,
    ts         TIMESTAMPTZ NOT NULL,
    detail     JSONB,
    notes      TEXT NOT NULL DEFAULT '',
    seq        BIGINT GENERATED ALWAYS AS IDENTITY,
    created_at TIMESTAMPTZ NOT NULL,
    created_by TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_registros_cultivo_ts
    ON registros(cultivo_id, ts DESC);
`

// EnsureSchema crea tablas e índices si no existen todavía.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
