package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open abre una base SQLite, configura pragmas y asegura el esquema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// schema replica el esquema de Postgres en dialecto SQLite. El índice único
// parcial sobre pot_id mantiene la exclusividad de maceta también acá.
const schema = `
CREATE TABLE IF NOT EXISTS beds (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    location_label TEXT NOT NULL DEFAULT '',
    width          REAL,
    length         REAL,
    height         REAL,
    capacity       INTEGER,
    notes          TEXT NOT NULL DEFAULT '',
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS pots (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    bed_id         TEXT NOT NULL REFERENCES beds(id),
    volume         REAL,
    location_label TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS genetics (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at DATETIME NOT NULL
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
    start_date    DATETIME NOT NULL,
    end_date      DATETIME,
    notes         TEXT NOT NULL DEFAULT '',
    deleted_at    DATETIME,
    created_at    DATETIME NOT NULL,
    created_by    TEXT NOT NULL DEFAULT '',
    updated_at    DATETIME NOT NULL,
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
    ts         DATETIME NOT NULL,
    detail     TEXT,
    notes      TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    created_by TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_registros_cultivo_ts
    ON registros(cultivo_id, ts);
`

// EnsureSchema crea tablas e índices si no existen todavía.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
