package imaging

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// ChannelDiff counts changed values in one color channel.
type ChannelDiff struct {
	Changed  int `json:"changed"`
	MaxDelta int `json:"max_delta"`
}

// CompareResult describes how a carrier differs from its cover.
type CompareResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Identical is true when every channel value matches.
	Identical bool `json:"identical"`

	// ChangedPixels counts pixels with at least one changed channel.
	ChangedPixels int `json:"changed_pixels"`

	// Channels holds per-channel change counts keyed "R", "G", "B".
	Channels map[string]ChannelDiff `json:"channels"`

	// MaxDelta is the largest absolute change of any channel value. An LSB
	// carrier never exceeds 1.
	MaxDelta int `json:"max_delta"`

	// LSBOnly is true when all differences are confined to bit 0.
	LSBOnly bool `json:"lsb_only"`

	// MeanDeltaE and MaxDeltaE are CIEDE2000 distances over changed pixels.
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`
}

// Compare reports the differences between a cover and a carrier of the same
// size, including the perceptual CIEDE2000 colour distance of every changed
// pixel.
//
// Returns an error if the dimensions differ.
func Compare(cover, carrier *steg.Raster) (*CompareResult, error) {
	if cover.Width != carrier.Width || cover.Height != carrier.Height {
		return nil, fmt.Errorf("image dimensions differ: %dx%d vs %dx%d",
			cover.Width, cover.Height, carrier.Width, carrier.Height)
	}

	names := [steg.NumChannels]string{"R", "G", "B"}
	var diffs [steg.NumChannels]ChannelDiff

	result := &CompareResult{
		Width:   cover.Width,
		Height:  cover.Height,
		LSBOnly: true,
	}

	var sumDeltaE float64
	for y := 0; y < cover.Height; y++ {
		for x := 0; x < cover.Width; x++ {
			changed := false
			for c := 0; c < steg.NumChannels; c++ {
				a, b := cover.At(y, x, c), carrier.At(y, x, c)
				if a == b {
					continue
				}
				changed = true
				d := absDiff(a, b)
				diffs[c].Changed++
				if d > diffs[c].MaxDelta {
					diffs[c].MaxDelta = d
				}
				if d > result.MaxDelta {
					result.MaxDelta = d
				}
				if a&0xFE != b&0xFE {
					result.LSBOnly = false
				}
			}
			if !changed {
				continue
			}
			result.ChangedPixels++
			de := toColorful(cover, y, x).DistanceCIEDE2000(toColorful(carrier, y, x))
			sumDeltaE += de
			if de > result.MaxDeltaE {
				result.MaxDeltaE = de
			}
		}
	}

	result.Identical = result.ChangedPixels == 0
	if result.ChangedPixels > 0 {
		result.MeanDeltaE = sumDeltaE / float64(result.ChangedPixels)
	}

	result.Channels = make(map[string]ChannelDiff, steg.NumChannels)
	for c, name := range names {
		result.Channels[name] = diffs[c]
	}

	return result, nil
}

func toColorful(r *steg.Raster, y, x int) colorful.Color {
	return colorful.Color{
		R: float64(r.At(y, x, 0)) / 255.0,
		G: float64(r.At(y, x, 1)) / 255.0,
		B: float64(r.At(y, x, 2)) / 255.0,
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
