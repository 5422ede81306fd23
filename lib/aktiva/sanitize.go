package aktiva

import "bytes"

var (
	nullByte   = []byte{0x00}
	nullEscape = []byte(`\u0000`)
)

// CleanResponse strips the null markers the vendor occasionally embeds in
// payloads: raw 0x00 bytes first, then the literal six-character `\u0000`
// escape. A strict JSON decoder rejects both, so every response passes
// through here before decoding.
func CleanResponse(raw []byte) []byte {
	raw = bytes.ReplaceAll(raw, nullByte, nil)
	return bytes.ReplaceAll(raw, nullEscape, nil)
}
