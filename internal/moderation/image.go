package moderation

import (
	"bytes"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// sniffLimit caps how many payload bytes are examined for dimensions. Image
// headers live at the front of the file; decoding configuration never needs
// more than this.
const sniffLimit = 64 << 10

// SniffDimensions extracts width and height from an image payload prefix.
// Non-image mime types and undecodable payloads return ok == false; the
// caller treats that as "dimensions unknown", never as an error.
func SniffDimensions(data []byte, mimeType string) (width, height int, ok bool) {
	if !strings.HasPrefix(mimeType, "image/") {
		return 0, 0, false
	}

	if len(data) > sniffLimit {
		data = data[:sniffLimit]
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}

	return cfg.Width, cfg.Height, true
}
