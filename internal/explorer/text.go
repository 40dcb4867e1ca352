package explorer

import (
	"bytes"
	"unicode/utf8"
)

// textSampleSize is how many leading bytes are scanned for NUL.
const textSampleSize = 8000

// IsText reports whether data can be printed as text: no NUL byte in the
// leading sample and valid UTF-8 throughout. Empty content is text.
func IsText(data []byte) bool {
	sample := data[:min(len(data), textSampleSize)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}

	return utf8.Valid(data)
}
