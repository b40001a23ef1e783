package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"strings"

	"github.com/disintegration/imaging"
	"github.com/zeebo/blake3"
	_ "golang.org/x/image/bmp" // Register BMP format decoder

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// ErrInvalidImage is returned when image bytes cannot be decoded.
var ErrInvalidImage = errors.New("invalid image")

// ErrImageTooLarge is returned when an image exceeds the configured limits.
var ErrImageTooLarge = errors.New("image too large")

// PNGMimeType is the MIME type of every carrier produced by this package.
const PNGMimeType = "image/png"

// Limits bounds the size of images accepted for decoding. Zero means no limit.
type Limits struct {
	MaxBytes  int64
	MaxPixels int
}

// check validates the encoded size and the header dimensions.
func (l Limits) check(size int64, width, height int) error {
	if l.MaxBytes > 0 && size > l.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrImageTooLarge, size, l.MaxBytes)
	}
	if l.MaxPixels > 0 && width*height > l.MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds limit of %d pixels", ErrImageTooLarge, width, height, l.MaxPixels)
	}
	return nil
}

// DecodeRaster decodes PNG, JPEG, GIF or BMP bytes into an RGB raster.
//
// The header is read first so oversized images are rejected before any pixel
// memory is allocated. The returned string is the detected format name as
// registered with the image package ("png", "jpeg", "gif", "bmp").
//
// Decode failures wrap ErrInvalidImage; limit violations wrap ErrImageTooLarge.
func DecodeRaster(data []byte, limits Limits) (*steg.Raster, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := limits.check(int64(len(data)), cfg.Width, cfg.Height); err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return RasterFromImage(img), format, nil
}

// DecodeBase64Image decodes a standard base64 string and then the image it
// holds. A "data:image/...;base64," prefix is accepted and ignored, as is
// ASCII whitespace such as MIME line wrapping.
func DecodeBase64Image(encoded string, limits Limits) (*LoadedImage, error) {
	encoded = stripASCIISpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.IndexByte(encoded, ','); i >= 0 {
			encoded = encoded[i+1:]
		}
	}
	if limits.MaxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(encoded))) > limits.MaxBytes+2 {
		return nil, fmt.Errorf("%w: encoded data exceeds limit of %d bytes", ErrImageTooLarge, limits.MaxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64: %v", ErrInvalidImage, err)
	}

	raster, format, err := DecodeRaster(data, limits)
	if err != nil {
		return nil, err
	}
	return &LoadedImage{Raster: raster, Format: format, SizeBytes: int64(len(data))}, nil
}

// stripASCIISpace removes spaces, tabs and line breaks.
func stripASCIISpace(s string) string {
	if strings.IndexAny(s, " \t\r\n\v\f") < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			return -1
		}
		return r
	}, s)
}

// RasterFromImage converts any image to an 8-bit RGB raster.
//
// The image is normalized to non-premultiplied RGBA with imaging.Clone and the
// alpha channel is discarded. 16-bit images are reduced to their high byte.
func RasterFromImage(img image.Image) *steg.Raster {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	r := &steg.Raster{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, width*height*steg.NumChannels),
	}

	for y := 0; y < height; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		dst := r.Pix[y*width*steg.NumChannels : (y+1)*width*steg.NumChannels]
		for x := 0; x < width; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}

	return r
}

// RasterToImage converts a raster to an opaque NRGBA image.
func RasterToImage(r *steg.Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		src := r.Pix[y*r.Width*steg.NumChannels : (y+1)*r.Width*steg.NumChannels]
		dst := img.Pix[y*img.Stride : y*img.Stride+r.Width*4]
		for x := 0; x < r.Width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xFF
		}
	}
	return img
}

// EncodePNG encodes a raster as PNG.
//
// Carriers must always be written losslessly, so PNG is the only output
// format regardless of the format the cover was read from.
func EncodePNG(r *steg.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, RasterToImage(r), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
