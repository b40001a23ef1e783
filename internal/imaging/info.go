package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// CapacityEntry describes how much text a raster can carry on one channel
// selection.
type CapacityEntry struct {
	// Bits is steg.Capacity for the selection.
	Bits int `json:"bits"`

	// Characters is the longest message that fits once the 16-bit delimiter
	// is accounted for.
	Characters int `json:"characters"`

	// EstimatedWords assumes five characters per word.
	EstimatedWords int `json:"estimated_words"`
}

// NewCapacityEntry computes the capacity of a height x width raster.
func NewCapacityEntry(height, width int, ch steg.Channel) CapacityEntry {
	bits := steg.Capacity(height, width, ch)
	chars := MaxMessageLength(bits)
	return CapacityEntry{
		Bits:           bits,
		Characters:     chars,
		EstimatedWords: chars / 5,
	}
}

// MaxMessageLength returns the longest message, in characters, whose framed
// form fits in capacityBits.
func MaxMessageLength(capacityBits int) int {
	n := (capacityBits - len(steg.Delimiter)) / 8
	if n < 0 {
		return 0
	}
	return n
}

// CapacityReport groups the single-channel and all-channel capacities.
type CapacityReport struct {
	PerChannel  CapacityEntry `json:"per_channel"`
	AllChannels CapacityEntry `json:"all_channels"`
}

// LSBRatio is the fraction of channel values with the low bit set.
//
// Natural images sit close to 0.5. Flat synthetic images sit at 0 or 1, and a
// value far from both after encoding shows where a payload was written.
type LSBRatio struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ImageInfo contains metadata and capacity information about a cover image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// TotalPixels is Width*Height.
	TotalPixels int `json:"total_pixels"`

	// Format is the detected source format: "png", "jpeg", "gif" or "bmp".
	Format string `json:"format"`

	// Mode is always "RGB": alpha is discarded when the raster is decoded.
	Mode string `json:"mode"`

	// FileSizeBytes is the encoded size of the source.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Capacity reports how much text fits per channel selection.
	Capacity CapacityReport `json:"capacity"`

	// Recommendations are human-readable hints derived from Capacity.
	Recommendations map[string]string `json:"recommendations"`

	// LSBOnesRatio is the share of odd values per channel.
	LSBOnesRatio LSBRatio `json:"lsb_ones_ratio"`

	// Lossless is false for JPEG sources, whose carriers must not be
	// re-encoded as JPEG.
	Lossless bool `json:"lossless"`
}

// Info computes metadata and capacity for a loaded image.
//
// The LSB ratios come from a per-channel histogram of the raster: every odd
// bin counts towards the ones ratio.
func Info(img *LoadedImage) *ImageInfo {
	r := img.Raster
	perChannel := NewCapacityEntry(r.Height, r.Width, steg.Red)
	all := NewCapacityEntry(r.Height, r.Width, steg.All)

	return &ImageInfo{
		Width:         r.Width,
		Height:        r.Height,
		TotalPixels:   r.Width * r.Height,
		Format:        img.Format,
		Mode:          "RGB",
		FileSizeBytes: img.SizeBytes,
		Capacity: CapacityReport{
			PerChannel:  perChannel,
			AllChannels: all,
		},
		Recommendations: map[string]string{
			"single_channel": fmt.Sprintf("Up to %d characters", perChannel.Characters),
			"all_channels":   fmt.Sprintf("Up to %d characters", all.Characters),
			"best_practice":  "Use 'ALL' channels for longer messages",
		},
		LSBOnesRatio: lsbRatio(r),
		Lossless:     img.Format != "jpeg",
	}
}

// lsbRatio counts odd values per channel using a bild RGBA histogram.
func lsbRatio(r *steg.Raster) LSBRatio {
	total := r.Width * r.Height
	if total == 0 {
		return LSBRatio{}
	}

	hist := histogram.NewRGBAHistogram(RasterToImage(r))
	odd := func(h histogram.Histogram) float64 {
		n := 0
		for v := 1; v < len(h.Bins); v += 2 {
			n += h.Bins[v]
		}
		return float64(n) / float64(total)
	}

	return LSBRatio{R: odd(hist.R), G: odd(hist.G), B: odd(hist.B)}
}
