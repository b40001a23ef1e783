package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/stego-tools-mcp/internal/imaging"
	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stego_encode", "stego_decode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves the image source (cached file or inline base64)
//  4. Calls the steg or imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Inspection
	case "stego_info":
		return s.handleStegoInfo(args)
	case "stego_capacity":
		return s.handleStegoCapacity(args)

	// Hide and reveal
	case "stego_encode":
		return s.handleStegoEncode(args)
	case "stego_decode":
		return s.handleStegoDecode(args)

	// Analysis
	case "stego_compare":
		return s.handleStegoCompare(args)
	case "stego_bitplane":
		return s.handleStegoBitPlane(args)
	case "stego_sample_pixels":
		return s.handleStegoSamplePixels(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageSource names an image either by file path or by inline base64 data.
// Exactly one of the two must be set.
type imageSource struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

// load resolves the source through the cache (path) or decodes it directly
// (base64). Both honour the configured size limits.
func (s *Server) load(src imageSource, what string) (*imaging.LoadedImage, error) {
	switch {
	case src.Path != "" && src.ImageBase64 != "":
		return nil, fmt.Errorf("%s: provide either path or image_base64, not both", what)
	case src.Path != "":
		return s.cache.Load(src.Path)
	case src.ImageBase64 != "":
		return imaging.DecodeBase64Image(src.ImageBase64, s.cache.Limits())
	default:
		return nil, fmt.Errorf("no %s provided: set path or image_base64", what)
	}
}

// channel parses a channel argument, falling back to the configured default.
func (s *Server) channel(arg string) (steg.Channel, error) {
	if arg == "" {
		return s.defaultChannel, nil
	}
	ch, err := steg.ParseChannel(arg)
	if err != nil {
		return 0, errors.New("channel must be R, G, B, or ALL")
	}
	return ch, nil
}

// === Inspection Handlers ===

type stegoInfoArgs struct {
	imageSource
}

func (s *Server) handleStegoInfo(args json.RawMessage) (interface{}, error) {
	var a stegoInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageSource, "image")
	if err != nil {
		return nil, err
	}
	return imaging.Info(img), nil
}

type stegoCapacityArgs struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Channel string `json:"channel"`
}

// CapacityResult is the stego_capacity response.
type CapacityResult struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Channel string `json:"channel"`
	imaging.CapacityEntry
}

func (s *Server) handleStegoCapacity(args json.RawMessage) (interface{}, error) {
	var a stegoCapacityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive (got %dx%d)", a.Width, a.Height)
	}
	ch, err := s.channel(a.Channel)
	if err != nil {
		return nil, err
	}
	return &CapacityResult{
		Width:         a.Width,
		Height:        a.Height,
		Channel:       ch.String(),
		CapacityEntry: imaging.NewCapacityEntry(a.Height, a.Width, ch),
	}, nil
}

// === Hide and Reveal Handlers ===

type stegoEncodeArgs struct {
	imageSource
	Message    *string `json:"message"`
	Channel    string  `json:"channel"`
	OutputPath string  `json:"output_path"`
}

// EncodeResult is the stego_encode response. The carrier is always PNG.
type EncodeResult struct {
	ImageBase64   string `json:"image_base64"`
	MimeType      string `json:"mime_type"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ChannelUsed   string `json:"channel_used"`
	MessageLength int    `json:"message_length"`
	BitsUsed      int    `json:"bits_used"`
	CapacityBits  int    `json:"capacity_bits"`
	Digest        string `json:"digest"`
	OutputPath    string `json:"output_path,omitempty"`
}

func (s *Server) handleStegoEncode(args json.RawMessage) (interface{}, error) {
	var a stegoEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Message == nil {
		return nil, errors.New("no message provided")
	}
	if strings.TrimSpace(*a.Message) == "" {
		return nil, errors.New("message cannot be empty")
	}
	ch, err := s.channel(a.Channel)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" && !strings.HasSuffix(strings.ToLower(a.OutputPath), ".png") {
		return nil, fmt.Errorf("output path must end in .png: %s", a.OutputPath)
	}

	img, err := s.load(a.imageSource, "cover image")
	if err != nil {
		return nil, err
	}

	cover := img.Raster
	carrier, err := steg.Encode(cover, *a.Message, ch)
	if err != nil {
		return nil, err
	}

	data, err := imaging.EncodePNG(carrier)
	if err != nil {
		return nil, err
	}

	result := &EncodeResult{
		ImageBase64:   base64.StdEncoding.EncodeToString(data),
		MimeType:      imaging.PNGMimeType,
		Width:         carrier.Width,
		Height:        carrier.Height,
		ChannelUsed:   ch.String(),
		MessageLength: utf8.RuneCountInString(*a.Message),
		BitsUsed:      steg.FramedLen(*a.Message),
		CapacityBits:  steg.Capacity(cover.Height, cover.Width, ch),
		Digest:        imaging.Digest(data),
	}

	if a.OutputPath != "" {
		if err := imaging.SavePNG(a.OutputPath, data); err != nil {
			return nil, err
		}
		s.cache.Evict(a.OutputPath)
		result.OutputPath = a.OutputPath
	}

	s.logger.Debug("message embedded",
		"channel", result.ChannelUsed,
		"bits", result.BitsUsed,
		"capacity", result.CapacityBits,
		"digest", result.Digest)

	return result, nil
}

type stegoDecodeArgs struct {
	imageSource
	Channel string `json:"channel"`
}

// DecodeResult is the stego_decode response.
type DecodeResult struct {
	Message       string `json:"message"`
	MessageLength int    `json:"message_length"`
	ChannelUsed   string `json:"channel_used"`
}

func (s *Server) handleStegoDecode(args json.RawMessage) (interface{}, error) {
	var a stegoDecodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ch, err := s.channel(a.Channel)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.imageSource, "image")
	if err != nil {
		return nil, err
	}

	message := steg.Decode(img.Raster, ch)
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("no hidden message found or wrong channel")
	}

	return &DecodeResult{
		Message:       message,
		MessageLength: utf8.RuneCountInString(message),
		ChannelUsed:   ch.String(),
	}, nil
}

// === Analysis Handlers ===

type stegoCompareArgs struct {
	Cover   imageSource `json:"cover"`
	Carrier imageSource `json:"carrier"`
}

func (s *Server) handleStegoCompare(args json.RawMessage) (interface{}, error) {
	var a stegoCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cover, err := s.load(a.Cover, "cover image")
	if err != nil {
		return nil, err
	}
	carrier, err := s.load(a.Carrier, "carrier image")
	if err != nil {
		return nil, err
	}
	return imaging.Compare(cover.Raster, carrier.Raster)
}

type stegoBitPlaneArgs struct {
	imageSource
	Channel string `json:"channel"`
	Scale   int    `json:"scale"`
}

func (s *Server) handleStegoBitPlane(args json.RawMessage) (interface{}, error) {
	var a stegoBitPlaneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	ch, err := s.channel(a.Channel)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.imageSource, "image")
	if err != nil {
		return nil, err
	}
	return imaging.BitPlane(img.Raster, ch, a.Scale, s.cfg.BitPlane.MaxScale, s.cfg.Limits.MaxPixels)
}

type stegoSamplePixelsArgs struct {
	imageSource
	Channel string `json:"channel"`
	Points  []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label"`
	} `json:"points"`
}

func (s *Server) handleStegoSamplePixels(args json.RawMessage) (interface{}, error) {
	var a stegoSamplePixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, errors.New("no points provided")
	}
	ch, err := s.channel(a.Channel)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.imageSource, "image")
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SamplePixels(img.Raster, points, ch)
}
