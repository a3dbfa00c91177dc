package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v67/github"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/service"
)

var ErrAssetNotFound = errors.New("release asset not found")

// Fetcher resolves the latest release through the GitHub API.
type Fetcher struct {
	gh        *github.Client
	inspector *Inspector
	cfg       config.ReleaseConfig
}

func NewFetcher(cfg config.ReleaseConfig, client *http.Client) (*Fetcher, error) {
	if client == nil {
		client = service.NewHTTPClient(0).Client
	}
	gh := github.NewClient(client)
	gh.UserAgent = UserAgent
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	if cfg.APIBaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.APIBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		gh.BaseURL = base
	}

	return &Fetcher{
		gh:        gh,
		inspector: NewInspector(&service.DefaultHTTPClient{Client: client}, cfg.BinaryName, cfg.Token),
		cfg:       cfg,
	}, nil
}

// Fetch never fails: any error is logged and the fallback data returned.
func (f *Fetcher) Fetch(ctx context.Context) Data {
	data, err := f.fetch(ctx)
	if err != nil {
		logger.Warn("Failed to fetch GitHub data: %v", err)
		logger.Warn("Using fallback values")
		return fallbackFor(f.cfg.Owner, f.cfg.Repo, f.cfg.AssetName)
	}
	return data
}

func (f *Fetcher) fetch(ctx context.Context) (Data, error) {
	logger.Info("Fetching GitHub release data...")
	rel, _, err := f.gh.Repositories.GetLatestRelease(ctx, f.cfg.Owner, f.cfg.Repo)
	if err != nil {
		return Data{}, fmt.Errorf("failed to get latest release: %w", err)
	}

	full := rel.GetTagName()
	version := MajorMinor(full)
	logger.Info("Found version: %s -> %s", full, version)

	var downloadURL string
	for _, a := range rel.Assets {
		if a.GetName() == f.cfg.AssetName {
			downloadURL = a.GetBrowserDownloadURL()
			break
		}
	}
	if downloadURL == "" {
		return Data{}, fmt.Errorf("%w: %s", ErrAssetNotFound, f.cfg.AssetName)
	}

	logger.Info("Downloading and measuring binary size...")
	n, err := f.inspector.BinarySize(ctx, downloadURL)
	if err != nil {
		return Data{}, err
	}
	size := FormatBytes(n)
	logger.Info("Binary size: %s (%d bytes)", size, n)

	return Data{
		Version:     version,
		FullVersion: full,
		BinarySize:  size,
		DownloadURL: downloadURL,
	}, nil
}
