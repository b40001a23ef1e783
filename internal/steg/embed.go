package steg

import "fmt"

// Capacity returns the number of bits a height x width raster can carry on
// the given channel selection: height*width for a single channel, three times
// that for All. Negative dimensions or an unknown Channel yield 0.
func Capacity(height, width int, ch Channel) int {
	if height <= 0 || width <= 0 {
		return 0
	}
	return height * width * ch.BitsPerPixel()
}

// Embed writes bits into the LSBs of the selected channels of a copy of r.
//
// Each slot in scan order takes the next bit as (v & 0xFE) | bit. Slots past
// the end of bits keep their original values. r itself is not modified.
//
// Embed returns a *CapacityError if len(bits) exceeds Capacity.
func Embed(r *Raster, bits Bits, ch Channel) (*Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if !ch.Valid() {
		return nil, fmt.Errorf("invalid channel %v", ch)
	}

	limit := Capacity(r.Height, r.Width, ch)
	if len(bits) > limit {
		return nil, &CapacityError{Capacity: limit, Required: len(bits)}
	}

	out := r.Clone()
	indices := ch.Indices()
	n := 0

	for row := 0; row < r.Height && n < len(bits); row++ {
		for col := 0; col < r.Width && n < len(bits); col++ {
			for _, c := range indices {
				if n >= len(bits) {
					break
				}
				v := out.At(row, col, c)
				out.Set(row, col, c, (v&0xFE)|(bits[n]&1))
				n++
			}
		}
	}

	return out, nil
}

// Extract reads the LSB of every selected slot of r in scan order.
//
// The result always has exactly Capacity(r.Height, r.Width, ch) bits; there is
// no early stop at a delimiter. A raster that fails Validate yields no bits.
func Extract(r *Raster, ch Channel) Bits {
	if r.Validate() != nil {
		return nil
	}
	indices := ch.Indices()
	bits := make(Bits, 0, Capacity(r.Height, r.Width, ch))

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			for _, c := range indices {
				bits = append(bits, r.At(row, col, c)&1)
			}
		}
	}

	return bits
}

// Encode hides message in a copy of r and returns the carrier raster.
//
// Errors are *CharacterError for runes above 255 and *CapacityError when the
// framed message does not fit.
func Encode(r *Raster, message string, ch Channel) (*Raster, error) {
	bits, err := Frame(message)
	if err != nil {
		return nil, err
	}
	return Embed(r, bits, ch)
}

// Decode recovers the message hidden in r on the given channel selection.
//
// It never fails: a raster without a message, or read with the wrong Channel,
// produces an empty or meaningless string. A malformed raster decodes to "".
func Decode(r *Raster, ch Channel) string {
	return Unframe(Extract(r, ch))
}
