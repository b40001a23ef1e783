package steg

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageTooLarge is matched by *CapacityError.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrUnsupportedCharacter is matched by *CharacterError.
	ErrUnsupportedCharacter = errors.New("unsupported character")
)

// CapacityError reports a framed message that does not fit in a raster.
type CapacityError struct {
	Capacity int // bits available
	Required int // bits the framed message needs
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message too large: capacity is %d bits, message needs %d bits", e.Capacity, e.Required)
}

func (e *CapacityError) Unwrap() error { return ErrMessageTooLarge }

// CharacterError reports a rune that cannot be framed in 8 bits.
type CharacterError struct {
	Rune   rune
	Offset int // character (not byte) offset in the message
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("unsupported character %U at position %d: only code points 0-255 can be embedded", e.Rune, e.Offset)
}

func (e *CharacterError) Unwrap() error { return ErrUnsupportedCharacter }
