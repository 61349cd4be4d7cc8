// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/marvin/internal/fits/fitstest"
	"github.com/tomtom215/marvin/internal/logging"
)

// Sky position used in the Marvin documentation for 8485-1901.
const (
	docRA  = 232.546383
	docDec = 48.6883954
)

func TestGetSpectrum_Pixel(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	spec, err := c.GetSpectrum(Pixel(10, 5))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if spec.X != 10 || spec.Y != 5 {
		t.Errorf("pixel = (%d, %d), want (10, 5)", spec.X, spec.Y)
	}
	if spec.PlateIFU != fitstest.PlateIFU {
		t.Errorf("PlateIFU = %q, want %q", spec.PlateIFU, fitstest.PlateIFU)
	}
	if len(spec.Flux) != 20 {
		t.Fatalf("len(Flux) = %d, want 20", len(spec.Flux))
	}
	for k, v := range spec.Flux {
		if want := fitstest.Voxel(10, 5, k); v != want {
			t.Errorf("Flux[%d] = %v, want %v", k, v, want)
		}
	}
}

func TestGetSpectrum_Corners(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	for _, p := range [][2]int{{0, 0}, {33, 0}, {0, 33}, {33, 33}} {
		spec, err := c.GetSpectrum(Pixel(p[0], p[1]))
		if err != nil {
			t.Fatalf("GetSpectrum(%v) error = %v", p, err)
		}
		if spec.Flux[3] != fitstest.Voxel(p[0], p[1], 3) {
			t.Errorf("GetSpectrum(%v).Flux[3] = %v", p, spec.Flux[3])
		}
	}
}

func TestGetSpectrum_Sky(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	spec, err := c.GetSpectrum(Sky(docRA, docDec))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if spec.X != 9 || spec.Y != 4 {
		t.Errorf("pixel = (%d, %d), want (9, 4)", spec.X, spec.Y)
	}
	if spec.Flux[0] != fitstest.Voxel(9, 4, 0) {
		t.Errorf("Flux[0] = %v, want %v", spec.Flux[0], fitstest.Voxel(9, 4, 0))
	}
}

func TestGetSpectrum_SkyReferencePixel(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	// CRPIX is (18, 18) 1-based.
	spec, err := c.GetSpectrum(Sky(fitstest.RA, fitstest.Dec))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if spec.X != 17 || spec.Y != 17 {
		t.Errorf("pixel = (%d, %d), want (17, 17)", spec.X, spec.Y)
	}
}

func TestGetSpectrum_SkyWithoutWCS(t *testing.T) {
	s := fitstest.DefaultSpec()
	s.NoWCS = true
	c := fileCube(t, s)

	spec, err := c.GetSpectrum(Sky(docRA, docDec))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if spec.X != 9 || spec.Y != 4 {
		t.Errorf("pixel = (%d, %d), want (9, 4)", spec.X, spec.Y)
	}
	if spec.Wavelength != nil {
		t.Errorf("Wavelength = %v, want nil without a spectral axis", spec.Wavelength[:2])
	}
}

func TestLoad_MissingWCSLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	s := fitstest.DefaultSpec()
	s.NoWCS = true
	fileCube(t, s)

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "No usable celestial WCS") {
		t.Errorf("log output = %q, want a warning about the missing WCS", out)
	}
}

func TestGetSpectrum_OutOfBounds(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	tests := []struct {
		name string
		args CoordinateArgs
	}{
		{"x=-50", Pixel(-50, 1)},
		{"x=50", Pixel(50, 1)},
		{"y=-50", Pixel(1, -50)},
		{"y=50", Pixel(1, 50)},
		{"x=nx", Pixel(34, 0)},
		{"y=ny", Pixel(0, 34)},
		{"x=-1", Pixel(-1, 0)},
		{"ra=1 dec=1", Sky(1, 1)},
		{"ra=100 dec=60", Sky(100, 60)},
		{"dec=1", Sky(docRA, 1)},
		{"ra=1", Sky(1, docDec)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := c.GetSpectrum(tt.args)
			if spec != nil {
				t.Errorf("GetSpectrum() = %+v, want nil", spec)
			}
			assertKind(t, err, CoordinateOutOfBounds)
			assertMessage(t, err, MsgOutOfBounds)
		})
	}
}

func TestGetSpectrum_ValidationPrecedesDataAccess(t *testing.T) {
	// The store-backed cube points at a file that does not exist; every
	// invalid combination must be reported before the missing file is.
	c, err := New(t.Context(), Options{
		PlateIFU:  fitstest.PlateIFU,
		DRPVer:    "v1_5_1",
		ReduxPath: t.TempDir(),
		Store:     &memStore{records: []Record{referenceRecord()}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		args CoordinateArgs
		kind Kind
	}{
		{"x and ra", CoordinateArgs{X: intp(1), RA: floatp(1)}, AmbiguousCoordinateInput},
		{"x, dec and ra", CoordinateArgs{X: intp(1), Dec: floatp(1), RA: floatp(1)}, AmbiguousCoordinateInput},
		{"only x", CoordinateArgs{X: intp(1)}, IncompleteCoordinate},
		{"only ra", CoordinateArgs{RA: floatp(1)}, IncompleteCoordinate},
		{"nothing", CoordinateArgs{}, NoCoordinateSpecified},
		{"valid pixel", Pixel(1, 1), SourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetSpectrum(tt.args)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestGetSpectrum_ReturnsCopy(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	first, err := c.GetSpectrum(Pixel(3, 4))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	for i := range first.Flux {
		first.Flux[i] = -1
	}

	second, err := c.GetSpectrum(Pixel(3, 4))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if second.Flux[0] != fitstest.Voxel(3, 4, 0) {
		t.Errorf("cube data was modified through a returned spectrum: %v", second.Flux[0])
	}
}

func TestGetSpectrum_Wavelength(t *testing.T) {
	c := fileCube(t, fitstest.DefaultSpec())

	spec, err := c.GetSpectrum(Pixel(0, 0))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if len(spec.Wavelength) != len(spec.Flux) {
		t.Fatalf("len(Wavelength) = %d, want %d", len(spec.Wavelength), len(spec.Flux))
	}
	if got := spec.Wavelength[0]; math.Abs(got-3621.59598486) > 1e-6 {
		t.Errorf("Wavelength[0] = %v, want 3621.596", got)
	}
	for k := 1; k < len(spec.Wavelength); k++ {
		if spec.Wavelength[k] <= spec.Wavelength[k-1] {
			t.Fatalf("wavelength grid not increasing at %d", k)
		}
	}
}

func TestGetSpectrum_FluxExtension(t *testing.T) {
	s := fitstest.DefaultSpec()
	s.AsExtension = true
	c := fileCube(t, s)

	if c.PlateIFU != fitstest.PlateIFU {
		t.Errorf("PlateIFU = %q from primary header", c.PlateIFU)
	}
	spec, err := c.GetSpectrum(Sky(docRA, docDec))
	if err != nil {
		t.Fatalf("GetSpectrum() error = %v", err)
	}
	if spec.Flux[5] != fitstest.Voxel(9, 4, 5) {
		t.Errorf("Flux[5] = %v, want %v", spec.Flux[5], fitstest.Voxel(9, 4, 5))
	}
}

func TestExtractionResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{newError(CoordinateOutOfBounds, MsgOutOfBounds, nil), "out_of_bounds"},
		{newError(SourceNotFound, "x", nil), "not_found"},
		{newError(AmbiguousCoordinateInput, MsgAmbiguous, nil), "invalid_input"},
		{errMock, "error"},
	}
	for _, tt := range tests {
		if got := extractionResult(tt.err); got != tt.want {
			t.Errorf("extractionResult(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
