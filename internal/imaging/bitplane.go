package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// BitPlaneResult contains a rendering of the least significant bit plane.
type BitPlaneResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channel     string `json:"channel"`
	Scale       int    `json:"scale"`
	OnesCount   int    `json:"ones_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// BitPlane renders the LSBs of the selected channel as a black and white
// image: white where the bit is 1.
//
// For a single channel the plane is grayscale. For All each channel's bit
// drives the matching output channel, so a pixel whose three LSBs are 1 is
// white and one with only the red LSB set is pure red.
//
// Scale enlarges the plane with nearest-neighbour resampling so individual
// pixels stay visible; it must be between 1 and maxScale. The scaled output
// must not exceed maxPixels (0 means no limit), otherwise the error wraps
// ErrImageTooLarge.
func BitPlane(r *steg.Raster, ch steg.Channel, scale, maxScale, maxPixels int) (*BitPlaneResult, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("invalid channel %v", ch)
	}
	if scale < 1 || scale > maxScale {
		return nil, fmt.Errorf("scale must be between 1 and %d", maxScale)
	}
	if r.Width == 0 || r.Height == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	outW, outH := int64(r.Width)*int64(scale), int64(r.Height)*int64(scale)
	if maxPixels > 0 && outW*outH > int64(maxPixels) {
		return nil, fmt.Errorf("%w: bit plane at scale %d is %dx%d, exceeds limit of %d pixels",
			ErrImageTooLarge, scale, outW, outH, maxPixels)
	}

	plane := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	ones := 0

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			o := plane.PixOffset(x, y)
			plane.Pix[o+3] = 0xFF
			if ch == steg.All {
				for c := 0; c < steg.NumChannels; c++ {
					bit := r.At(y, x, c) & 1
					plane.Pix[o+c] = bit * 0xFF
					ones += int(bit)
				}
				continue
			}
			bit := r.At(y, x, ch.Indices()[0]) & 1
			plane.Pix[o+0] = bit * 0xFF
			plane.Pix[o+1] = bit * 0xFF
			plane.Pix[o+2] = bit * 0xFF
			ones += int(bit)
		}
	}

	var out image.Image = plane
	if scale > 1 {
		out = transform.Resize(plane, r.Width*scale, r.Height*scale, transform.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode bit plane: %w", err)
	}

	return &BitPlaneResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Channel:     ch.String(),
		Scale:       scale,
		OnesCount:   ones,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    PNGMimeType,
	}, nil
}
