package release

import (
	"bytes"
	"strings"
)

const (
	blockSize = 512

	nameLen    = 100
	sizeOffset = 124
	sizeLen    = 12
)

// ScanTar walks the ustar headers in buf and returns the size of the entry
// named binary (bare or as the last path element). Without such an entry it
// returns the largest size seen, or 0. Scanning stops at a zero block or at
// a header cut short by the end of buf.
func ScanTar(buf []byte, binary string) uint64 {
	var largest uint64
	for off := 0; off+blockSize <= len(buf); {
		header := buf[off : off+blockSize]
		if isZero(header) {
			break
		}

		name := headerName(header)
		size := headerSize(header)
		if name == binary || strings.HasSuffix(name, "/"+binary) {
			return size
		}
		largest = max(largest, size)

		// Content is padded to whole blocks.
		next := uint64(off) + blockSize + (size+blockSize-1)/blockSize*blockSize
		if next > uint64(len(buf)) {
			break
		}
		off = int(next)
	}
	return largest
}

func headerName(h []byte) string {
	name := h[:nameLen]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// headerSize reads the octal size field. Leading spaces and NULs are
// skipped and parsing stops at the first non-octal byte; no digits is 0.
func headerSize(h []byte) uint64 {
	field := bytes.Trim(h[sizeOffset:sizeOffset+sizeLen], " \x00")
	var n uint64
	for _, c := range field {
		if c < '0' || c > '7' {
			break
		}
		n = n<<3 | uint64(c-'0')
	}
	return n
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
