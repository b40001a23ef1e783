// Package imaging is the raster codec behind the steganography tools.
//
// It converts between encoded image files and the steg.Raster pixel buffer,
// and provides the analysis helpers exposed by the MCP server: capacity
// reports, LSB bit-plane rendering, pixel sampling and cover/carrier
// comparison.
//
// # Coordinate System
//
// Rasters are addressed as (row, column, channel) with (0,0) at the top-left
// corner. Row corresponds to Y and column to X in image.Image terms.
//
// # Formats
//
// Covers may be PNG, JPEG, GIF or BMP. Every carrier is written as PNG: the
// payload lives in bit 0 of each channel and any lossy re-encode destroys it.
// Alpha is discarded on decode and carriers are written fully opaque.
//
// # Thread Safety
//
// RasterCache is safe for concurrent use. All other functions are stateless
// and may be called concurrently on different rasters.
//
// # Error Handling
//
// Decode failures wrap ErrInvalidImage and size limit violations wrap
// ErrImageTooLarge, so callers can use errors.Is to tell a bad upload from an
// oversized one. File I/O errors are wrapped with context.
package imaging
