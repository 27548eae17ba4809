package sqlstore

import (
	"context"
	"fmt"
)

// dialect holds the DDL fragments that differ between drivers.
type dialect struct {
	idColumn string
	refType  string
	extra    []string
}

var dialects = map[string]dialect{
	"sqlite": {
		idColumn: "INTEGER PRIMARY KEY AUTOINCREMENT",
		refType:  "INTEGER",
		extra: []string{
			`CREATE INDEX IF NOT EXISTS idx_catches_angler ON catches(angler_id)`,
			`CREATE INDEX IF NOT EXISTS idx_lures_angler ON lures(angler_id)`,
		},
	},
	"mysql": {
		// InnoDB indexes foreign key columns on its own.
		idColumn: "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
		refType:  "BIGINT",
	},
}

// tables is ordered so referenced tables are created first.
// %[1]s is the id column definition, %[2]s the foreign key column type.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS anglers (
		id            %[1]s,
		username      VARCHAR(30)  NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		catch_count   INTEGER      NOT NULL DEFAULT 0,
		is_admin      BOOLEAN      NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS species (
		id                   %[1]s,
		name                 VARCHAR(100) NOT NULL UNIQUE,
		master_angler_length DOUBLE       NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lakes (
		id           %[1]s,
		name         VARCHAR(100) NOT NULL,
		state        CHAR(2)      NOT NULL,
		closest_town VARCHAR(100) NOT NULL,
		latitude     DOUBLE       NOT NULL,
		longitude    DOUBLE       NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lures (
		id        %[1]s,
		brand     VARCHAR(50)  NOT NULL,
		name      VARCHAR(100) NOT NULL DEFAULT '',
		color     VARCHAR(50)  NOT NULL DEFAULT '',
		size      VARCHAR(30)  NOT NULL DEFAULT '',
		angler_id %[2]s        NOT NULL,
		FOREIGN KEY (angler_id) REFERENCES anglers(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS catches (
		id                  %[1]s,
		species_id          %[2]s         NOT NULL,
		angler_id           %[2]s         NOT NULL,
		lake_id             %[2]s         NOT NULL,
		length              DOUBLE        NULL,
		weight              DOUBLE        NULL,
		catch_date          VARCHAR(10)   NOT NULL,
		catch_time          VARCHAR(8)    NOT NULL,
		catch_unix          BIGINT        NOT NULL,
		barometric_pressure DOUBLE        NOT NULL,
		temperature         INTEGER       NOT NULL,
		weather             VARCHAR(100)  NOT NULL,
		wind_direction      CHAR(1)       NOT NULL,
		wind_speed          INTEGER       NOT NULL,
		lure_id             %[2]s         NULL,
		image_url           VARCHAR(2048) NOT NULL,
		is_master_angler    BOOLEAN       NOT NULL DEFAULT FALSE,
		recorded_at         BIGINT        NOT NULL,
		FOREIGN KEY (species_id) REFERENCES species(id),
		FOREIGN KEY (angler_id) REFERENCES anglers(id) ON DELETE CASCADE,
		FOREIGN KEY (lake_id) REFERENCES lakes(id),
		FOREIGN KEY (lure_id) REFERENCES lures(id) ON DELETE SET NULL
	)`,
}

func (s *Store) initSchema(ctx context.Context, d dialect) error {
	stmts := make([]string, 0, len(tables)+len(d.extra))
	for _, t := range tables {
		stmts = append(stmts, fmt.Sprintf(t, d.idColumn, d.refType))
	}
	stmts = append(stmts, d.extra...)

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
