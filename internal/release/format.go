package release

import (
	"fmt"
	"math"
	"regexp"
)

const (
	kib = 1024
	mib = 1024 * kib
)

var majorMinorPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)`)

// FormatBytes renders n as "~NMB" from 1 MiB up and "~NKB" below.
func FormatBytes(n uint64) string {
	if n >= mib {
		return fmt.Sprintf("~%dMB", int64(math.Round(float64(n)/mib)))
	}
	return fmt.Sprintf("~%dKB", int64(math.Round(float64(n)/kib)))
}

// MajorMinor turns "v1.0.2" into "v1.0". Tags that do not start with a
// numeric major.minor yield FallbackVersion.
func MajorMinor(tag string) string {
	m := majorMinorPattern.FindStringSubmatch(tag)
	if m == nil {
		return FallbackVersion
	}
	return "v" + m[1] + "." + m[2]
}
