package release

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/meysam81/oneoffctl/internal/utils"
)

// Gunzip inflates a complete gzip payload. A malformed or truncated stream
// is an error; no partial output is returned.
func Gunzip(compressed []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer utils.Close(zr)

	var out bytes.Buffer
	if _, err := io.Copy(&out, zr); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out.Bytes(), nil
}
