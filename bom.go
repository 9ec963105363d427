package jstream

import (
	"bytes"
	"fmt"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// skipBOM scans the start of the input for a leading byte order mark
// and returns the number of bytes to skip. A UTF-8 mark is consumed;
// marks for encodings this cursor does not transcode, and truncated
// marks, are errors.
func skipBOM(chunk []byte) (int, error) {
	switch {
	case bytes.HasPrefix(chunk, bomUTF8):
		return len(bomUTF8), nil
	case bytes.HasPrefix(bomUTF8, chunk) && len(chunk) > 0:
		return 0, fmt.Errorf("%w: truncated byte order mark", ErrEncoding)
	case bytes.HasPrefix(chunk, bomUTF32BE), bytes.HasPrefix(chunk, bomUTF32LE):
		return 0, fmt.Errorf("%w: utf-32 input is not supported", ErrEncoding)
	case bytes.HasPrefix(chunk, bomUTF16BE), bytes.HasPrefix(chunk, bomUTF16LE):
		return 0, fmt.Errorf("%w: utf-16 input is not supported", ErrEncoding)
	}
	return 0, nil
}
