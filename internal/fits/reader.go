// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package fits

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
	"github.com/klauspost/compress/gzip"
)

// FluxExtension is the EXTNAME of the flux HDU in DRP cubes.
const FluxExtension = "FLUX"

// ErrNoCube is returned when a file has no three-dimensional image HDU.
var ErrNoCube = errors.New("fits: no 3-D image HDU found")

// Cube is a decoded data cube.
type Cube struct {
	Primary Header // primary HDU keywords (identity: PLATEIFU, MANGAID, ...)
	Flux    Header // keywords of the HDU the flux was read from (WCS)

	NX, NY, NWave int
	Data          []float32
}

// Index returns the offset of voxel (x, y, k) in Data.
func (c *Cube) Index(x, y, k int) int {
	return k*c.NX*c.NY + y*c.NX + x
}

// Keywords returns the flux header with primary keywords filling the gaps.
func (c *Cube) Keywords() Header {
	return c.Flux.Merge(c.Primary)
}

// Open reads a cube from disk. A missing file yields an error wrapping
// os.ErrNotExist.
func Open(path string) (*Cube, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from configured redux root or supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer closeQuietly(f)

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}

// Read decodes a cube from r, transparently decompressing gzip streams.
func Read(r io.Reader) (*Cube, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("fits: reading header: %w", err)
	}

	var src io.Reader = br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("fits: gzip: %w", err)
		}
		defer closeQuietly(zr)
		src = zr
	}

	f, err := fitsio.Open(src)
	if err != nil {
		return nil, fmt.Errorf("fits: %w", err)
	}
	defer closeQuietly(f)

	hdus := f.HDUs()
	if len(hdus) == 0 {
		return nil, ErrNoCube
	}

	img := selectFluxHDU(f)
	if img == nil {
		return nil, ErrNoCube
	}

	axes := img.Header().Axes()
	c := &Cube{
		Primary: newHeader(hdus[0].Header()),
		Flux:    newHeader(img.Header()),
		NX:      axes[0],
		NY:      axes[1],
		NWave:   axes[2],
	}

	c.Data, err = readFloat32(img)
	if err != nil {
		return nil, err
	}
	if want := c.NX * c.NY * c.NWave; len(c.Data) != want {
		return nil, fmt.Errorf("fits: flux has %d values, expected %d", len(c.Data), want)
	}
	return c, nil
}

// selectFluxHDU prefers the FLUX extension, falling back to the first image
// with three axes.
func selectFluxHDU(f *fitsio.File) fitsio.Image {
	if f.Has(FluxExtension) {
		if img, ok := f.Get(FluxExtension).(fitsio.Image); ok && len(img.Header().Axes()) == 3 {
			return img
		}
	}
	for _, hdu := range f.HDUs() {
		if img, ok := hdu.(fitsio.Image); ok && len(img.Header().Axes()) == 3 {
			return img
		}
	}
	return nil
}

// readFloat32 reads image data of any supported BITPIX, applying BSCALE and
// BZERO to every type.
func readFloat32(img fitsio.Image) ([]float32, error) {
	hdr := newHeader(img.Header())
	scale, ok := hdr.Float("BSCALE")
	if !ok {
		scale = 1
	}
	zero, _ := hdr.Float("BZERO")

	// fitsio only sets the length of the destination slice, so it must
	// arrive with enough capacity for every element.
	n := elements(img.Header().Axes())

	switch bitpix := img.Header().Bitpix(); bitpix {
	case -32:
		data := make([]float32, n)
		if err := img.Read(&data); err != nil {
			return nil, fmt.Errorf("fits: reading flux: %w", err)
		}
		if scale != 1 || zero != 0 {
			for i, v := range data {
				data[i] = float32(float64(v)*scale + zero)
			}
		}
		return data, nil
	case -64:
		data := make([]float64, n)
		if err := img.Read(&data); err != nil {
			return nil, fmt.Errorf("fits: reading flux: %w", err)
		}
		return rescale(data, scale, zero), nil
	case 16:
		data := make([]int16, n)
		if err := img.Read(&data); err != nil {
			return nil, fmt.Errorf("fits: reading flux: %w", err)
		}
		return rescale(data, scale, zero), nil
	case 32:
		data := make([]int32, n)
		if err := img.Read(&data); err != nil {
			return nil, fmt.Errorf("fits: reading flux: %w", err)
		}
		return rescale(data, scale, zero), nil
	default:
		return nil, fmt.Errorf("fits: unsupported BITPIX %d", bitpix)
	}
}

// elements is the number of values in an image with the given axes.
func elements(axes []int) int {
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, dim := range axes {
		n *= dim
	}
	return n
}

// rescale converts raw pixel values to physical float32 values.
func rescale[T int16 | int32 | float64](data []T, scale, zero float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(float64(v)*scale + zero)
	}
	return out
}

// closeQuietly closes c, ignoring the error. Used for readers where a close
// failure cannot affect data already decoded.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}
