package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagSilent       bool // --silent
	FlagJSON         bool // --json-logs, for CI
)

// ConfigureLoggerFromFlags maps the persistent root flags onto Configure.
func ConfigureLoggerFromFlags() {
	var w io.Writer = os.Stderr
	level := "info"
	switch {
	case FlagSilent:
		level = "error"
		w = io.Discard
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON,
		Out:   w,
	})
}
