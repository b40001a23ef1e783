package steg

import "fmt"

// NumChannels is the number of color channels stored per pixel.
const NumChannels = 3

// Raster is a fully materialized 8-bit RGB pixel buffer.
//
// Pix holds Height*Width*3 bytes laid out row-major, then column, then
// channel (Red=0, Green=1, Blue=2).
type Raster struct {
	Height int
	Width  int
	Pix    []uint8
}

// NewRaster allocates a zeroed raster of the given size.
func NewRaster(height, width int) (*Raster, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	return &Raster{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, height*width*NumChannels),
	}, nil
}

// offset returns the index in Pix of the given slot.
func (r *Raster) offset(row, col, ch int) int {
	return (row*r.Width+col)*NumChannels + ch
}

// At returns the value of one channel of one pixel.
func (r *Raster) At(row, col, ch int) uint8 {
	return r.Pix[r.offset(row, col, ch)]
}

// Set stores the value of one channel of one pixel.
func (r *Raster) Set(row, col, ch int, v uint8) {
	r.Pix[r.offset(row, col, ch)] = v
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Height: r.Height, Width: r.Width, Pix: pix}
}

// Validate reports whether Pix has the length implied by the dimensions.
func (r *Raster) Validate() error {
	if r.Height < 0 || r.Width < 0 {
		return fmt.Errorf("invalid raster size %dx%d", r.Width, r.Height)
	}
	if want := r.Height * r.Width * NumChannels; len(r.Pix) != want {
		return fmt.Errorf("raster buffer holds %d bytes, want %d for %dx%d", len(r.Pix), want, r.Width, r.Height)
	}
	return nil
}
