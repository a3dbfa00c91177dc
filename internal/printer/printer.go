package printer

import (
	"fmt"

	"github.com/fatih/color"
)

// Func formats like fmt.Sprintf and wraps the result in a colour.
type Func func(format string, a ...interface{}) string

type ColorPrinter struct {
	Success Func
	Error   Func
	Warning Func
	Info    Func
	Debug   Func
	Muted   Func
}

func NewColorPrinter() *ColorPrinter {
	return &ColorPrinter{
		Success: color.New(color.FgGreen).SprintfFunc(),
		Error:   color.New(color.FgRed).SprintfFunc(),
		Warning: color.New(color.FgYellow).SprintfFunc(),
		Info:    color.New(color.FgBlue).SprintfFunc(),
		Debug:   color.New(color.FgCyan).SprintfFunc(),
		Muted:   color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// Plain formats without colour; used for JSON logs and piped output.
func Plain(format string, a ...interface{}) string {
	if len(a) == 0 {
		return format
	}
	return fmt.Sprintf(format, a...)
}
