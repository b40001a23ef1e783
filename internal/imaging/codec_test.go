package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

func TestRasterFromImage(t *testing.T) {
	img := createGradientImage(5, 4)
	r := RasterFromImage(img)

	if r.Width != 5 || r.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 5x4", r.Width, r.Height)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			c := img.NRGBAAt(x, y)
			if r.At(y, x, 0) != c.R || r.At(y, x, 1) != c.G || r.At(y, x, 2) != c.B {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d), want (%d,%d,%d)", x, y,
					r.At(y, x, 0), r.At(y, x, 1), r.At(y, x, 2), c.R, c.G, c.B)
			}
		}
	}
}

func TestRasterFromImage_SubImage(t *testing.T) {
	src := createGradientImage(10, 10)
	sub := src.SubImage(image.Rect(3, 2, 7, 6))

	r := RasterFromImage(sub)
	if r.Width != 4 || r.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", r.Width, r.Height)
	}

	c := src.NRGBAAt(3, 2)
	if r.At(0, 0, 0) != c.R || r.At(0, 0, 1) != c.G || r.At(0, 0, 2) != c.B {
		t.Errorf("origin pixel: got (%d,%d,%d), want (%d,%d,%d)",
			r.At(0, 0, 0), r.At(0, 0, 1), r.At(0, 0, 2), c.R, c.G, c.B)
	}
}

func TestRasterToImage_Opaque(t *testing.T) {
	r, _ := steg.NewRaster(2, 2)
	r.Set(1, 1, 2, 200)

	img := RasterToImage(r)
	if !img.Opaque() {
		t.Error("RasterToImage should produce an opaque image")
	}
	if got := img.NRGBAAt(1, 1); got.B != 200 || got.A != 255 {
		t.Errorf("pixel (1,1): got %+v", got)
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	r := RasterFromImage(createGradientImage(17, 9))

	data, err := EncodePNG(r)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	back, format, err := DecodeRaster(data, Limits{})
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %s, want png", format)
	}
	if !rastersEqual(r, back) {
		t.Error("PNG round trip changed pixel values")
	}
}

func TestDecodeRaster_CarrierSurvivesPNG(t *testing.T) {
	cover := RasterFromImage(createGradientImage(40, 30))
	carrier, err := steg.Encode(cover, "hidden in plain sight", steg.All)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data, err := EncodePNG(carrier)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	back, _, err := DecodeRaster(data, Limits{})
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}

	if got := steg.Decode(back, steg.All); got != "hidden in plain sight" {
		t.Errorf("Decode: got %q", got)
	}
}

func TestDecodeRaster_BMP(t *testing.T) {
	img := createGradientImage(12, 8)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode failed: %v", err)
	}

	r, format, err := DecodeRaster(buf.Bytes(), Limits{})
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format: got %s, want bmp", format)
	}
	if !rastersEqual(r, RasterFromImage(img)) {
		t.Error("BMP decode changed pixel values")
	}
}

func TestDecodeRaster_JPEGCoverProducesPNGCarrier(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createGradientImage(32, 32), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}

	cover, format, err := DecodeRaster(buf.Bytes(), Limits{})
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %s, want jpeg", format)
	}

	carrier, err := steg.Encode(cover, "jpeg cover", steg.Red)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data, err := EncodePNG(carrier)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	back, format, err := DecodeRaster(data, Limits{})
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}
	if format != "png" {
		t.Errorf("carrier format: got %s, want png", format)
	}
	if got := steg.Decode(back, steg.Red); got != "jpeg cover" {
		t.Errorf("Decode: got %q", got)
	}
}

func TestDecodeRaster_Invalid(t *testing.T) {
	_, _, err := DecodeRaster([]byte("not an image"), Limits{})
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}
}

func TestDecodeRaster_Limits(t *testing.T) {
	data := encodePNGBytes(t, createSolidImage(100, 50, color.RGBA{1, 2, 3, 255}))

	tests := []struct {
		name    string
		limits  Limits
		wantErr bool
	}{
		{"no limits", Limits{}, false},
		{"pixels at limit", Limits{MaxPixels: 5000}, false},
		{"pixels over limit", Limits{MaxPixels: 4999}, true},
		{"bytes over limit", Limits{MaxBytes: int64(len(data) - 1)}, true},
		{"bytes at limit", Limits{MaxBytes: int64(len(data))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeRaster(data, tt.limits)
			if tt.wantErr {
				if !errors.Is(err, ErrImageTooLarge) {
					t.Errorf("expected ErrImageTooLarge, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("DecodeRaster failed: %v", err)
			}
		})
	}
}

func TestDecodeBase64Image(t *testing.T) {
	data := encodePNGBytes(t, createSolidImage(4, 4, color.RGBA{9, 9, 9, 255}))
	encoded := base64.StdEncoding.EncodeToString(data)

	for _, in := range []string{encoded, "data:image/png;base64," + encoded} {
		img, err := DecodeBase64Image(in, Limits{})
		if err != nil {
			t.Fatalf("DecodeBase64Image failed: %v", err)
		}
		if img.Raster.Width != 4 || img.Raster.Height != 4 {
			t.Errorf("dimensions: got %dx%d", img.Raster.Width, img.Raster.Height)
		}
		if img.Format != "png" {
			t.Errorf("Format: got %s, want png", img.Format)
		}
		if img.SizeBytes != int64(len(data)) {
			t.Errorf("SizeBytes: got %d, want %d", img.SizeBytes, len(data))
		}
	}

	_, err := DecodeBase64Image("!!!not base64", Limits{})
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}

	_, err = DecodeBase64Image(encoded, Limits{MaxBytes: 8})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestDecodeBase64Image_Whitespace(t *testing.T) {
	data := encodePNGBytes(t, createGradientImage(6, 5))
	encoded := base64.StdEncoding.EncodeToString(data)

	// MIME-style 76-column wrapping with CRLF.
	var wrapped strings.Builder
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[i:end])
		wrapped.WriteString("\r\n")
	}

	tests := map[string]string{
		"mime wrapped": wrapped.String(),
		"padded":       "  \t" + encoded + " \n",
		"data uri":     "data:image/png;base64,\n" + wrapped.String(),
		"inner spaces": encoded[:10] + " " + encoded[10:20] + "\t" + encoded[20:],
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			img, err := DecodeBase64Image(in, Limits{})
			if err != nil {
				t.Fatalf("DecodeBase64Image failed: %v", err)
			}
			if img.Raster.Width != 6 || img.Raster.Height != 5 {
				t.Errorf("dimensions: got %dx%d, want 6x5", img.Raster.Width, img.Raster.Height)
			}
			if img.SizeBytes != int64(len(data)) {
				t.Errorf("SizeBytes: got %d, want %d", img.SizeBytes, len(data))
			}
		})
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("carrier"))
	b := Digest([]byte("carrier"))
	c := Digest([]byte("carrier2"))

	if len(a) != 64 {
		t.Errorf("digest length: got %d, want 64", len(a))
	}
	if a != b {
		t.Error("digest is not deterministic")
	}
	if a == c {
		t.Error("different inputs produced the same digest")
	}
	if strings.ToLower(a) != a {
		t.Error("digest should be lower-case hex")
	}
}
