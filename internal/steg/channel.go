package steg

import (
	"fmt"
	"strings"
)

// Channel selects which color channels carry message bits.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	All
)

var channelIndices = map[Channel][]int{
	Red:   {0},
	Green: {1},
	Blue:  {2},
	All:   {0, 1, 2},
}

// Indices returns the channel indices visited per pixel, in scan order.
// An unknown Channel has no indices.
func (c Channel) Indices() []int {
	return channelIndices[c]
}

// BitsPerPixel is the number of message bits one pixel carries.
func (c Channel) BitsPerPixel() int {
	return len(c.Indices())
}

// Valid reports whether c is one of the defined selectors.
func (c Channel) Valid() bool {
	_, ok := channelIndices[c]
	return ok
}

func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	case All:
		return "ALL"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel converts a user-supplied selector to a Channel.
//
// Accepted values (case-insensitive, surrounding spaces ignored) are
// R, G, B, ALL and RED, GREEN, BLUE. An empty string selects Red.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "R", "RED":
		return Red, nil
	case "G", "GREEN":
		return Green, nil
	case "B", "BLUE":
		return Blue, nil
	case "ALL":
		return All, nil
	default:
		return 0, fmt.Errorf("channel must be R, G, B, or ALL (got %q)", s)
	}
}

// MarshalText renders the channel as R, G, B or ALL.
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid channel %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses the forms accepted by ParseChannel.
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
