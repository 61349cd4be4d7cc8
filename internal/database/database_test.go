// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/cube"
)

// testDBSemaphore serializes DuckDB use across tests; concurrent CGO calls
// from many in-memory databases can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	return db
}

func seededTestDB(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	if err := db.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return db
}

func TestNew_FileDatabase(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "marvin.duckdb")
	db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "512MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCubeByPlateIFU(t *testing.T) {
	db := seededTestDB(t)

	rec, err := db.CubeByPlateIFU(context.Background(), "8485-1901")
	if err != nil {
		t.Fatalf("CubeByPlateIFU() error = %v", err)
	}
	want := ReferenceCubes[0]
	if *rec != want {
		t.Errorf("CubeByPlateIFU() = %+v, want %+v", *rec, want)
	}
}

func TestCubeByMangaID(t *testing.T) {
	db := seededTestDB(t)

	rec, err := db.CubeByMangaID(context.Background(), "1-209232")
	if err != nil {
		t.Fatalf("CubeByMangaID() error = %v", err)
	}
	if rec.PlateIFU != "8485-1901" || rec.Plate != 8485 {
		t.Errorf("CubeByMangaID() = %+v", rec)
	}
	if rec.RA != 232.544703894 || rec.Dec != 48.6902009334 {
		t.Errorf("RA, Dec = %v, %v", rec.RA, rec.Dec)
	}
}

func TestCubeLookup_NoRecord(t *testing.T) {
	db := seededTestDB(t)
	ctx := context.Background()

	if _, err := db.CubeByPlateIFU(ctx, "9999-9999"); !errors.Is(err, cube.ErrNoRecord) {
		t.Errorf("CubeByPlateIFU() error = %v, want ErrNoRecord", err)
	}
	if _, err := db.CubeByMangaID(ctx, "1-1"); !errors.Is(err, cube.ErrNoRecord) {
		t.Errorf("CubeByMangaID() error = %v, want ErrNoRecord", err)
	}
	if _, err := db.MangaIDToPlateIFU(ctx, "1-1"); !errors.Is(err, cube.ErrNoRecord) {
		t.Errorf("MangaIDToPlateIFU() error = %v, want ErrNoRecord", err)
	}
}

func TestMangaIDToPlateIFU(t *testing.T) {
	db := seededTestDB(t)

	got, err := db.MangaIDToPlateIFU(context.Background(), "12-98126")
	if err != nil {
		t.Fatalf("MangaIDToPlateIFU() error = %v", err)
	}
	if got != "7443-12701" {
		t.Errorf("MangaIDToPlateIFU() = %q, want 7443-12701", got)
	}
}

func TestCubesByPlate(t *testing.T) {
	db := seededTestDB(t)
	ctx := context.Background()

	extra := []cube.Record{
		{PlateIFU: "8485-12701", MangaID: "1-209199", Plate: 8485, IFU: "12701", RA: 233.1, Dec: 48.1},
		{PlateIFU: "8485-1902", MangaID: "1-209113", Plate: 8485, IFU: "1902", RA: 232.9, Dec: 48.9, Redshift: 0.03},
	}
	if err := db.UpsertCubes(ctx, extra...); err != nil {
		t.Fatalf("UpsertCubes() error = %v", err)
	}

	got, err := db.CubesByPlate(ctx, 8485)
	if err != nil {
		t.Fatalf("CubesByPlate() error = %v", err)
	}
	var ifus []string
	for _, r := range got {
		ifus = append(ifus, r.IFU)
	}
	want := []string{"12701", "1901", "1902"}
	if len(ifus) != len(want) {
		t.Fatalf("CubesByPlate() IFUs = %v, want %v", ifus, want)
	}
	for i := range want {
		if ifus[i] != want[i] {
			t.Errorf("CubesByPlate()[%d] = %s, want %s", i, ifus[i], want[i])
		}
	}

	empty, err := db.CubesByPlate(ctx, 1)
	if err != nil {
		t.Fatalf("CubesByPlate() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("CubesByPlate(1) = %v, want empty non-nil slice", empty)
	}
}

func TestUpsertCubes_Replaces(t *testing.T) {
	db := seededTestDB(t)
	ctx := context.Background()

	updated := ReferenceCubes[0]
	updated.Redshift = 0.05
	if err := db.UpsertCubes(ctx, updated); err != nil {
		t.Fatalf("UpsertCubes() error = %v", err)
	}

	rec, err := db.CubeByPlateIFU(ctx, updated.PlateIFU)
	if err != nil {
		t.Fatalf("CubeByPlateIFU() error = %v", err)
	}
	if rec.Redshift != 0.05 {
		t.Errorf("Redshift = %v, want 0.05", rec.Redshift)
	}

	n, err := db.CountCubes(ctx)
	if err != nil {
		t.Fatalf("CountCubes() error = %v", err)
	}
	if n != len(ReferenceCubes) {
		t.Errorf("CountCubes() = %d, want %d", n, len(ReferenceCubes))
	}
}

func TestUpsertCubes_RejectsIncomplete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.UpsertCubes(ctx,
		cube.Record{PlateIFU: "1-1", MangaID: "1-1", Plate: 1, IFU: "1"},
		cube.Record{PlateIFU: "", MangaID: "1-2"},
	)
	if err == nil {
		t.Fatal("UpsertCubes() should reject a record without plateifu")
	}

	n, err := db.CountCubes(ctx)
	if err != nil {
		t.Fatalf("CountCubes() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountCubes() = %d, want 0 after rollback", n)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := seededTestDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	n, err := db.CountCubes(ctx)
	if err != nil {
		t.Fatalf("CountCubes() error = %v", err)
	}
	if n != len(ReferenceCubes) {
		t.Errorf("CountCubes() = %d, want %d", n, len(ReferenceCubes))
	}
}

func TestDB_SatisfiesCubeStore(t *testing.T) {
	db := seededTestDB(t)

	c, err := cube.New(context.Background(), cube.Options{PlateIFU: "8485-1901", Store: db})
	if err != nil {
		t.Fatalf("cube.New() error = %v", err)
	}
	if c.MangaID != "1-209232" {
		t.Errorf("MangaID = %q, want 1-209232", c.MangaID)
	}
}
