package versions

import (
	"fmt"
	"io"
	"runtime"
)

// Set at build time through -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// UserAgent identifies oneoffctl to the backend.
func UserAgent() string {
	return "oneoffctl/" + Version
}

func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, "oneoffctl - console client for the oneoff job scheduler")
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-10s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
