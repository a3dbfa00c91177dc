package notifier

import (
	"fmt"
	"io"
	"strings"

	"github.com/meysam81/oneoffctl/internal/printer"
	"github.com/meysam81/oneoffctl/internal/release"
	"github.com/meysam81/oneoffctl/internal/utils"
)

const (
	borderColor = "\033[38;5;39m"
	resetColor  = "\033[0m"
	padding     = 2
)

// DisplayRelease draws a boxed summary of the latest release. installCmd is
// shown on the last line when not empty.
func DisplayRelease(w io.Writer, d release.Data, installCmd string) {
	p := printer.NewColorPrinter()

	lines := []string{
		p.Success("oneoff %s", d.FullVersion),
		fmt.Sprintf("%s %s", p.Info("Binary size:"), p.Warning("%s", d.BinarySize)),
		fmt.Sprintf("%s %s", p.Info("Download:"), d.DownloadURL),
	}
	if d == release.Fallback() {
		lines = append(lines, p.Muted("(release metadata unavailable, showing defaults)"))
	}
	if installCmd != "" {
		lines = append(lines, p.Success("$ %s", installCmd))
	}
	Box(w, lines)
}

// Box centers lines inside a rounded border.
func Box(w io.Writer, lines []string) {
	maxWidth := utils.GetMaxWidth(lines) + padding*2
	sideBorder := borderColor + "│" + resetColor

	_, _ = fmt.Fprintln(w, borderColor+"╭"+strings.Repeat("─", maxWidth)+"╮"+resetColor)
	for _, line := range lines {
		visible := len([]rune(utils.StripANSI(line)))
		left := (maxWidth - visible) / 2
		right := maxWidth - visible - left
		_, _ = fmt.Fprintf(w, "%s%s%s%s%s\n", sideBorder, strings.Repeat(" ", left), line, strings.Repeat(" ", right), sideBorder)
	}
	_, _ = fmt.Fprintln(w, borderColor+"╰"+strings.Repeat("─", maxWidth)+"╯"+resetColor)
}
