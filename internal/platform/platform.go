// Package platform enumerates the release targets and builds the shell
// commands that download, install, run and open oneoff on each of them.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

type Platform string

const (
	LinuxAMD64   Platform = "linux-amd64"
	LinuxARM64   Platform = "linux-arm64"
	DarwinAMD64  Platform = "darwin-amd64"
	DarwinARM64  Platform = "darwin-arm64"
	WindowsAMD64 Platform = "windows-amd64"
)

var ErrUnknownPlatform = errors.New("unknown platform")

type Info struct {
	ID             Platform `json:"id"`
	Name           string   `json:"name"`
	Arch           string   `json:"arch"`
	Extension      string   `json:"extension"`
	ExtractCommand string   `json:"extractCommand"`
}

var infos = map[Platform]Info{
	LinuxAMD64:   {ID: LinuxAMD64, Name: "Linux", Arch: "x86_64", Extension: "tar.gz", ExtractCommand: "tar xz"},
	LinuxARM64:   {ID: LinuxARM64, Name: "Linux", Arch: "ARM64", Extension: "tar.gz", ExtractCommand: "tar xz"},
	DarwinAMD64:  {ID: DarwinAMD64, Name: "macOS", Arch: "Intel", Extension: "tar.gz", ExtractCommand: "tar xz"},
	DarwinARM64:  {ID: DarwinARM64, Name: "macOS", Arch: "Apple Silicon", Extension: "tar.gz", ExtractCommand: "tar xz"},
	WindowsAMD64: {ID: WindowsAMD64, Name: "Windows", Arch: "x86_64", Extension: "zip", ExtractCommand: "Expand-Archive"},
}

var displayNames = map[Platform]string{
	LinuxAMD64:   "Linux",
	LinuxARM64:   "Linux ARM",
	DarwinAMD64:  "macOS",
	DarwinARM64:  "macOS",
	WindowsAMD64: "Windows",
}

// All returns the platforms in display order.
func All() []Platform {
	return []Platform{LinuxAMD64, LinuxARM64, DarwinARM64, DarwinAMD64, WindowsAMD64}
}

func Parse(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := infos[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

func Lookup(p Platform) (Info, bool) {
	info, ok := infos[p]
	return info, ok
}

func (p Platform) String() string { return string(p) }

func (p Platform) IsWindows() bool { return p == WindowsAMD64 }

func (p Platform) IsDarwin() bool { return strings.HasPrefix(string(p), "darwin") }

// DisplayName is the label shown next to the terminal prompt.
func DisplayName(p Platform) string {
	if n, ok := displayNames[p]; ok {
		return n
	}
	return "Linux"
}

func PromptChar(p Platform) string {
	if p.IsWindows() {
		return ">"
	}
	return "$"
}

func TerminalTitle(p Platform) string {
	if p.IsWindows() {
		return "PowerShell"
	}
	return "Terminal"
}

// Client is what a browser reports about itself.
type Client struct {
	UserAgent    string
	Platform     string
	Architecture string
}

// Detect maps client hints to a platform. Windows always gets the amd64
// build. linux-arm64 needs both a Linux and an ARM hint; clients with no
// recognised OS get linux-amd64.
func Detect(c Client) Platform {
	ua := strings.ToLower(c.UserAgent)
	pf := strings.ToLower(c.Platform)

	isWindows := strings.Contains(pf, "win") || strings.Contains(ua, "windows")
	isMac := strings.Contains(pf, "mac") || strings.Contains(ua, "macintosh")
	isLinux := strings.Contains(pf, "linux") || strings.Contains(ua, "linux")
	isARM := strings.Contains(ua, "arm") || strings.Contains(ua, "aarch64") ||
		c.Architecture == "arm"

	switch {
	case isWindows:
		return WindowsAMD64
	case isMac && isARM:
		return DarwinARM64
	case isMac:
		return DarwinAMD64
	case isLinux && isARM:
		return LinuxARM64
	default:
		return LinuxAMD64
	}
}
