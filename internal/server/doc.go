// Package server implements the MCP (Model Context Protocol) server for the
// steganography tools.
//
// This package provides a JSON-RPC 2.0 server that exposes LSB message hiding
// and recovery through the MCP protocol, so MCP clients can hide text in
// images, read it back and inspect the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - stego_info: Dimensions, format, capacity and LSB statistics of a cover
//   - stego_capacity: Capacity for given dimensions, no image needed
//
// Hide and reveal:
//   - stego_encode: Hide a message, returns a PNG carrier
//   - stego_decode: Recover a message from a carrier
//
// Analysis:
//   - stego_compare: Differences between a cover and its carrier
//   - stego_bitplane: Render the least significant bit plane
//   - stego_sample_pixels: Pixel values, LSBs and scan positions at points
//
// Every image argument is either a file path or inline base64 data. Channels
// are R, G, B or ALL; an omitted channel uses the configured default.
//
// # Image Caching
//
// Images named by path are decoded once and cached by path. Writing a carrier
// to output_path evicts that path so a later decode sees the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger, server.WithVersion(Version))
//	if err := srv.Run(); err != nil {
//	    logger.Error("server error", "error", err)
//	    os.Exit(1)
//	}
package server
