// Package steg implements the least-significant-bit (LSB) text codec used by
// the MCP server.
//
// A message is framed into a bit sequence (8 bits per character, most
// significant bit first, followed by a fixed 16-bit delimiter) and written
// into bit 0 of selected color channels of an RGB raster.
//
// # Scan Order
//
// Both embedding and extraction walk the raster in the same fixed order:
//   - rows from 0 to Height-1
//   - columns from 0 to Width-1
//   - channel indices of the selected Channel in ascending order
//
// Each (row, column, channel) slot carries exactly one bit. Changing this
// order breaks every carrier produced before the change.
//
// # Framing
//
// Characters must have code points in 0-255. The end of the message is marked
// by the pattern 1111111111111110. Extraction always reads the full capacity
// of the raster and cuts at the first occurrence of the delimiter, found at any
// bit offset. A message whose own bits contain the delimiter pattern is
// truncated early; this is a property of the carrier format.
//
// # Errors
//
//   - ErrMessageTooLarge (*CapacityError): framed bits exceed Capacity
//   - ErrUnsupportedCharacter (*CharacterError): a rune above 255
//
// Decode never fails. A raster that carries no message, or was encoded with a
// different Channel, yields an empty or meaningless string.
//
// # Thread Safety
//
// All functions are stateless. Embed and Encode return a new Raster and never
// modify their input, so concurrent calls on shared rasters are safe as long
// as the caller does not mutate them.
//
// This is not a secure scheme: there is no encryption and the payload does
// not survive lossy recompression.
package steg
