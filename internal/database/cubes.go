// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/metrics"
)

const cubeColumns = "plateifu, mangaid, plate, ifudesign, ifura, ifudec, redshift"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCube(row rowScanner) (*cube.Record, error) {
	var (
		rec      cube.Record
		redshift sql.NullFloat64
	)
	if err := row.Scan(&rec.PlateIFU, &rec.MangaID, &rec.Plate, &rec.IFU, &rec.RA, &rec.Dec, &redshift); err != nil {
		return nil, err
	}
	rec.Redshift = redshift.Float64
	return &rec, nil
}

// queryCube runs a single-row cube query. No rows maps to cube.ErrNoRecord,
// which is not recorded as a query error.
func (db *DB) queryCube(ctx context.Context, operation, query string, args ...any) (*cube.Record, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rec, err := scanCube(db.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery(operation, "cubes", time.Since(start), nil)
		return nil, cube.ErrNoRecord
	}
	metrics.RecordDBQuery(operation, "cubes", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query cube: %w", err)
	}
	return rec, nil
}

// CubeByPlateIFU returns the record of one plate-IFU.
func (db *DB) CubeByPlateIFU(ctx context.Context, plateifu string) (*cube.Record, error) {
	return db.queryCube(ctx, "cube_by_plateifu",
		"SELECT "+cubeColumns+" FROM cubes WHERE plateifu = ?", plateifu)
}

// CubeByMangaID returns the record of a MaNGA target. A target observed on
// more than one plate resolves to its lowest plate-IFU.
func (db *DB) CubeByMangaID(ctx context.Context, mangaid string) (*cube.Record, error) {
	return db.queryCube(ctx, "cube_by_mangaid",
		"SELECT "+cubeColumns+" FROM cubes WHERE mangaid = ? ORDER BY plateifu LIMIT 1", mangaid)
}

// MangaIDToPlateIFU returns the plate-IFU of a MaNGA target.
func (db *DB) MangaIDToPlateIFU(ctx context.Context, mangaid string) (string, error) {
	rec, err := db.CubeByMangaID(ctx, mangaid)
	if err != nil {
		return "", err
	}
	return rec.PlateIFU, nil
}

// CubesByPlate returns all cubes on a plate ordered by IFU design.
func (db *DB) CubesByPlate(ctx context.Context, plate int) ([]cube.Record, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	records, err := db.cubesByPlate(ctx, plate)
	metrics.RecordDBQuery("cubes_by_plate", "cubes", time.Since(start), err)
	return records, err
}

func (db *DB) cubesByPlate(ctx context.Context, plate int) ([]cube.Record, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+cubeColumns+" FROM cubes WHERE plate = ? ORDER BY ifudesign", plate)
	if err != nil {
		return nil, fmt.Errorf("failed to query plate %d: %w", plate, err)
	}
	defer closeQuietly(rows)

	records := make([]cube.Record, 0)
	for rows.Next() {
		rec, err := scanCube(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cube: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cubes: %w", err)
	}
	return records, nil
}

// UpsertCubes inserts records, replacing existing rows with the same plate-IFU.
func (db *DB) UpsertCubes(ctx context.Context, records ...cube.Record) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.upsertCubes(ctx, records)
	metrics.RecordDBQuery("upsert", "cubes", time.Since(start), err)
	return err
}

func (db *DB) upsertCubes(ctx context.Context, records []cube.Record) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cubes (`+cubeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (plateifu) DO UPDATE SET
			mangaid = EXCLUDED.mangaid,
			plate = EXCLUDED.plate,
			ifudesign = EXCLUDED.ifudesign,
			ifura = EXCLUDED.ifura,
			ifudec = EXCLUDED.ifudec,
			redshift = EXCLUDED.redshift`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range records {
		r := &records[i]
		if r.PlateIFU == "" || r.MangaID == "" {
			return fmt.Errorf("cube record %d: plateifu and mangaid are required", i)
		}
		if _, err = stmt.ExecContext(ctx, r.PlateIFU, r.MangaID, r.Plate, r.IFU, r.RA, r.Dec, r.Redshift); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", r.PlateIFU, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CountCubes returns the number of stored cube records.
func (db *DB) CountCubes(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM cubes").Scan(&n)
	metrics.RecordDBQuery("count", "cubes", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count cubes: %w", err)
	}
	return n, nil
}
