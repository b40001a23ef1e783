package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties returns the schema properties shared by every tool
// that reads an image: a file path or inline base64 data.
func imageSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a PNG, JPEG, BMP or GIF file. Alternative to image_base64.",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image data (a data: URI prefix is accepted). Alternative to path.",
		},
	}
}

// channelProperty describes the channel selector argument.
func channelProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"R", "G", "B", "ALL"},
		"description": description,
		"default":     "R",
	}
}

// withImageSource merges extra properties with the image source properties.
func withImageSource(extra map[string]interface{}) map[string]interface{} {
	props := imageSourceProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "stego_info",
			Description: "Inspect an image as a steganography cover: dimensions, format, hiding capacity per channel and across all channels, and the ratio of least significant bits set to 1 per channel.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(),
			},
		},
		{
			Name:        "stego_capacity",
			Description: "Compute how many bits and characters fit in an image of the given size without loading one. Characters account for the 16-bit end marker.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Image height in pixels",
					},
					"channel": channelProperty("Channel to hide in. ALL triples the capacity."),
				},
				"required": []string{"width", "height"},
			},
		},

		// Hide and reveal
		{
			Name:        "stego_encode",
			Description: "Hide a text message in the least significant bits of an image. Characters must be in the range U+0000 to U+00FF. The carrier is always returned as lossless PNG; save it as PNG or the message is lost.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withImageSource(map[string]interface{}{
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Text to hide. Must not be blank.",
					},
					"channel": channelProperty("Channel to hide in: R, G, B or ALL. Default R."),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path ending in .png to also write the carrier to",
					},
				}),
				"required": []string{"message"},
			},
		},
		{
			Name:        "stego_decode",
			Description: "Reveal a message hidden with stego_encode. The channel must match the one used to encode.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withImageSource(map[string]interface{}{
					"channel": channelProperty("Channel the message was hidden in. Default R."),
				}),
			},
		},

		// Analysis
		{
			Name:        "stego_compare",
			Description: "Compare a cover image with a carrier: changed values per channel, largest absolute change, whether only least significant bits differ, and CIEDE2000 colour distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cover": map[string]interface{}{
						"type":        "object",
						"description": "Original image (path or image_base64)",
						"properties":  imageSourceProperties(),
					},
					"carrier": map[string]interface{}{
						"type":        "object",
						"description": "Image carrying the message (path or image_base64)",
						"properties":  imageSourceProperties(),
					},
				},
				"required": []string{"cover", "carrier"},
			},
		},
		{
			Name:        "stego_bitplane",
			Description: "Render the least significant bit plane of an image as a PNG (white = 1). Hidden text shows up as noise in the first rows.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withImageSource(map[string]interface{}{
					"channel": channelProperty("Plane to render. ALL maps each channel's bit to its own colour."),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor using nearest-neighbour. Default 1",
						"default":     1,
					},
				}),
			},
		},
		{
			Name:        "stego_sample_pixels",
			Description: "Read pixel values and their least significant bits at specific coordinates, with each pixel's position in the embedding scan order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withImageSource(map[string]interface{}{
					"channel": channelProperty("Channel whose scan order is used for slot_index. Default R."),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Pixels to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				}),
				"required": []string{"points"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
