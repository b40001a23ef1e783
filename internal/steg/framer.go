package steg

import (
	"strings"
	"unicode/utf8"
)

// Bits is an ordered sequence of single bits, one per element (0 or 1).
type Bits []uint8

// Delimiter marks the end of a framed message.
var Delimiter = Bits{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}

// maxCodePoint is the largest rune representable in one 8-bit group.
const maxCodePoint = 0xFF

// FramedLen returns the number of bits Frame produces for message, without
// checking character ranges.
func FramedLen(message string) int {
	return utf8.RuneCountInString(message)*8 + len(Delimiter)
}

// Frame converts message to its bit sequence: 8 bits per character, most
// significant bit first, followed by Delimiter.
//
// Every character must have a code point in 0-255; otherwise Frame returns a
// *CharacterError. Invalid UTF-8 decodes as U+FFFD and is rejected the same way.
func Frame(message string) (Bits, error) {
	bits := make(Bits, 0, FramedLen(message))

	pos := 0
	for _, r := range message {
		if r > maxCodePoint {
			return nil, &CharacterError{Rune: r, Offset: pos}
		}
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, uint8(r>>shift)&1)
		}
		pos++
	}

	return append(bits, Delimiter...), nil
}

// Unframe recovers a message from a bit sequence.
//
// The sequence is cut at the first occurrence of Delimiter at any bit offset.
// Without a delimiter the whole sequence is treated as message data. The
// remaining bits are decoded 8 at a time into code points 0-255; a trailing
// group shorter than 8 bits is dropped.
func Unframe(bits Bits) string {
	if i := indexBits(bits, Delimiter); i >= 0 {
		bits = bits[:i]
	}

	var b strings.Builder
	b.Grow(len(bits) / 8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var v rune
		for _, bit := range bits[i : i+8] {
			v = v<<1 | rune(bit&1)
		}
		b.WriteRune(v)
	}
	return b.String()
}

// indexBits returns the index of the first occurrence of sep in bits, or -1.
func indexBits(bits, sep Bits) int {
	n := len(sep)
	for i := 0; i+n <= len(bits); i++ {
		match := true
		for j := 0; j < n; j++ {
			if bits[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
