package imaging

import (
	"fmt"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// LoadedImage is a decoded cover or carrier together with its source metadata.
type LoadedImage struct {
	// Raster is the decoded 8-bit RGB pixel buffer. Callers must not modify it;
	// steg.Encode works on a copy.
	Raster *steg.Raster

	// Format is the detected format name ("png", "jpeg", "gif", "bmp").
	Format string

	// SizeBytes is the encoded size of the source in bytes.
	SizeBytes int64
}

// RasterCache provides thread-safe caching of decoded rasters to avoid
// redundant disk reads and decodes.
//
// Entries are keyed by the exact path string passed to Load. A cached raster
// is shared between callers, which is safe because the steg package never
// mutates its inputs.
//
// # Memory Management
//
// Cached rasters stay in memory until Evict or Clear is called. Each entry
// costs 3 bytes per pixel.
//
// # Example Usage
//
//	cache := imaging.NewRasterCache(imaging.Limits{MaxBytes: 16 << 20})
//	img, err := cache.Load("/path/to/cover.png")
//	if err != nil {
//	    return err
//	}
//	carrier, err := steg.Encode(img.Raster, "hello", steg.All)
type RasterCache struct {
	mu     sync.RWMutex
	images map[string]*LoadedImage
	limits Limits
}

// NewRasterCache creates an empty cache that enforces limits on every load.
func NewRasterCache(limits Limits) *RasterCache {
	return &RasterCache{
		images: make(map[string]*LoadedImage),
		limits: limits,
	}
}

// Limits returns the size limits enforced by the cache.
func (c *RasterCache) Limits() Limits {
	return c.limits
}

// Load retrieves a raster from the cache or reads and decodes it from disk.
//
// Parameters:
//   - path: Absolute or relative file path. The extension must be one of
//     .png, .jpg, .jpeg, .gif or .bmp.
//
// Returns:
//   - *LoadedImage: The decoded raster and its metadata.
//   - error: Non-nil if the extension is not supported, the file cannot be
//     read, it exceeds the limits, or it cannot be decoded.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns ErrImageTooLarge (wrapped) if the file or its dimensions exceed Limits
//   - Returns ErrInvalidImage (wrapped) if the contents are not a supported image
func (c *RasterCache) Load(path string) (*LoadedImage, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if err := c.limits.check(stat.Size(), 0, 0); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	raster, format, err := DecodeRaster(data, c.limits)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img := &LoadedImage{
		Raster:    raster,
		Format:    format,
		SizeBytes: int64(len(data)),
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all rasters from the cache.
func (c *RasterCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*LoadedImage)
	c.mu.Unlock()
}

// Evict removes the raster cached under path, if any.
//
// Callers that overwrite a file (for example an encode with an output path
// equal to a previously loaded path) must evict it so the next Load sees the
// new contents.
func (c *RasterCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// CheckExtension reports whether path names a supported cover format.
func CheckExtension(path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("file type not supported: %s (use png, jpg, jpeg, bmp or gif)", path)
	}
	switch format {
	case imaging.PNG, imaging.JPEG, imaging.BMP, imaging.GIF:
		return nil
	default:
		return fmt.Errorf("file type not supported: %s (use png, jpg, jpeg, bmp or gif)", path)
	}
}

// SavePNG writes PNG bytes to path, creating or truncating the file.
func SavePNG(path string, data []byte) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil || format != imaging.PNG {
		return fmt.Errorf("output path must end in .png: %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write carrier: %w", err)
	}
	return nil
}
