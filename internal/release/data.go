package release

import "fmt"

const (
	FallbackVersion    = "v1.0"
	FallbackBinarySize = "~7MB"

	defaultOwner  = "meysam81"
	defaultRepo   = "oneoff"
	defaultAsset  = "oneoff_linux_amd64.tar.gz"
	defaultBinary = "oneoff"
)

// Data describes the latest release as shown on the landing page.
type Data struct {
	Version     string `json:"version"`
	FullVersion string `json:"fullVersion"`
	BinarySize  string `json:"binarySize"`
	DownloadURL string `json:"downloadUrl"`
}

func Fallback() Data {
	return fallbackFor(defaultOwner, defaultRepo, defaultAsset)
}

func fallbackFor(owner, repo, asset string) Data {
	return Data{
		Version:     FallbackVersion,
		FullVersion: FallbackVersion,
		BinarySize:  FallbackBinarySize,
		DownloadURL: fmt.Sprintf("https://github.com/%s/%s/releases/latest/download/%s", owner, repo, asset),
	}
}
