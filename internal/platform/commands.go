package platform

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	downloadBase = "https://github.com/meysam81/oneoff/releases/download"
	localURL     = "http://localhost:8080"
)

// AssetName is the release archive for p, e.g. oneoff_linux_amd64.tar.gz.
func AssetName(p Platform) string {
	ext := "tar.gz"
	if info, ok := infos[p]; ok {
		ext = info.Extension
	}
	return "oneoff_" + strings.ReplaceAll(string(p), "-", "_") + "." + ext
}

func DownloadURL(p Platform, version string) string {
	return downloadBase + "/" + version + "/" + AssetName(p)
}

func DownloadCommand(p Platform, version string) string {
	url := DownloadURL(p, version)
	if p.IsWindows() {
		return `Invoke-WebRequest -Uri "` + url + `" -OutFile "oneoff.zip"; Expand-Archive -Path "oneoff.zip" -DestinationPath "."`
	}
	return "curl -fsSL " + url + " | tar xz"
}

func InstallCommand(p Platform, version string) string {
	if p.IsWindows() {
		return DownloadCommand(p, version) + `; .\oneoff.exe`
	}
	return DownloadCommand(p, version) + " && ./oneoff"
}

func RunCommand(p Platform) string {
	if p.IsWindows() {
		return `.\oneoff.exe`
	}
	return "./oneoff"
}

func OpenCommand(p Platform) string {
	switch {
	case p.IsWindows():
		return `Start-Process "` + localURL + `"`
	case p.IsDarwin():
		return "open " + localURL
	default:
		return "xdg-open " + localURL
	}
}

// ShortInstallCommand is the abbreviated form used where space is tight.
func ShortInstallCommand(p Platform) string {
	if p.IsWindows() {
		return "Invoke-WebRequest ... | Expand-Archive"
	}
	return "curl -fsSL github.com/.../oneoff.tar.gz | tar xz"
}

// installCommands keeps the JSON keys in a fixed order.
type installCommands struct {
	LinuxAMD64   string `json:"linux-amd64"`
	LinuxARM64   string `json:"linux-arm64"`
	DarwinAMD64  string `json:"darwin-amd64"`
	DarwinARM64  string `json:"darwin-arm64"`
	WindowsAMD64 string `json:"windows-amd64"`
}

// CommandsJSON maps every platform to its install command for version.
func CommandsJSON(version string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(installCommands{
		LinuxAMD64:   InstallCommand(LinuxAMD64, version),
		LinuxARM64:   InstallCommand(LinuxARM64, version),
		DarwinAMD64:  InstallCommand(DarwinAMD64, version),
		DarwinARM64:  InstallCommand(DarwinARM64, version),
		WindowsAMD64: InstallCommand(WindowsAMD64, version),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
