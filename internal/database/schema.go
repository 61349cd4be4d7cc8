// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the cube metadata table.
// IFU centre columns follow the DRP header names (IFURA, IFUDEC).
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS cubes (
			plateifu  VARCHAR PRIMARY KEY,
			mangaid   VARCHAR NOT NULL,
			plate     INTEGER NOT NULL,
			ifudesign VARCHAR NOT NULL,
			ifura     DOUBLE NOT NULL,
			ifudec    DOUBLE NOT NULL,
			redshift  DOUBLE
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes indexes the lookup columns other than the primary key.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_cubes_mangaid ON cubes(mangaid)",
		"CREATE INDEX IF NOT EXISTS idx_cubes_plate ON cubes(plate)",
	}

	for _, q := range indexes {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
