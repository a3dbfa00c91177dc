package release

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/service"
	"github.com/meysam81/oneoffctl/internal/utils"
)

const (
	UserAgent = "OneOff-Landing-Page"

	// MaxDownloadBytes caps the archive held in memory.
	MaxDownloadBytes = 256 << 20
)

// Inspector measures the binary inside a release archive.
type Inspector struct {
	HTTP     service.HTTPClient
	Token    string
	Binary   string
	MaxBytes int64
}

func NewInspector(client service.HTTPClient, binary, token string) *Inspector {
	return &Inspector{
		HTTP:     client,
		Token:    token,
		Binary:   utils.FirstNonEmpty(binary, defaultBinary),
		MaxBytes: MaxDownloadBytes,
	}
}

// BinarySize downloads the .tar.gz at url, inflates it and returns the size
// of the binary entry as recorded in its tar header.
func (i *Inspector) BinarySize(ctx context.Context, url string) (uint64, error) {
	parsed, err := utils.ParseSecureURL(url)
	if err != nil {
		return 0, err
	}

	hdr := http.Header{}
	hdr.Set("Accept", "application/octet-stream")
	hdr.Set("User-Agent", UserAgent)
	if i.Token != "" {
		hdr.Set("Authorization", "Bearer "+i.Token)
	}

	compressed, err := service.DownloadBytes(ctx, i.HTTP, parsed.String(), hdr, i.MaxBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", url, err)
	}
	logger.Debug("downloaded %d compressed bytes", len(compressed))

	archive, err := Gunzip(compressed)
	if err != nil {
		return 0, err
	}
	return ScanTar(archive, i.Binary), nil
}
