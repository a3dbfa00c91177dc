package internal

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/errs"
	"github.com/meysam81/oneoffctl/internal/middleware"
	"github.com/meysam81/oneoffctl/internal/notifier"
	"github.com/meysam81/oneoffctl/internal/platform"
	"github.com/meysam81/oneoffctl/internal/release"
	"github.com/meysam81/oneoffctl/internal/utils"
)

// releaseHTTPClient is used for GitHub calls; nil means a default client.
var releaseHTTPClient *http.Client

func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Latest oneoff release and install commands",
	}
	return addAll(cmd,
		withConfig(newReleaseInfoCmd),
		withConfig(newReleaseCommandsCmd),
	)
}

func releaseProvider(cmd *cobra.Command) (*release.Provider, error) {
	cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
	if err != nil {
		return nil, err
	}
	f, err := release.NewFetcher(cfg.Release, releaseHTTPClient)
	if err != nil {
		return nil, err
	}
	return release.NewProvider(f), nil
}

// hostPlatform is the release target matching this machine.
func hostPlatform() platform.Platform {
	if p, err := platform.Parse(runtime.GOOS + "-" + runtime.GOARCH); err == nil {
		return p
	}
	return platform.LinuxAMD64
}

func platformFlag(cmd *cobra.Command) (platform.Platform, error) {
	raw, _ := cmd.Flags().GetString("platform")
	if raw == "" {
		return hostPlatform(), nil
	}
	p, err := platform.Parse(raw)
	if err != nil {
		names := utils.Map(platform.All(), platform.Platform.String)
		return "", middleware.UsageError(errs.UnknownPlatform, raw, strings.Join(names, ", "))
	}
	return p, nil
}

func newReleaseInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show version, binary size and download URL of the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := platformFlag(cmd)
			if err != nil {
				return err
			}
			provider, err := releaseProvider(cmd)
			if err != nil {
				return err
			}

			data := provider.Get(cmd.Context())
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), data)
			}
			notifier.DisplayRelease(cmd.OutOrStdout(), data, platform.InstallCommand(p, data.FullVersion))
			return nil
		},
	}
	cmd.Flags().String("platform", "", "Target platform for the install line (default: this machine)")
	addJSONFlag(cmd)
	return cmd
}

func newReleaseCommandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Print download, install, run and open commands",
		Example: `oneoffctl release commands --platform windows-amd64
oneoffctl release commands --version v1.2.0 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, _ := cmd.Flags().GetString("version")
			if version == "" {
				provider, err := releaseProvider(cmd)
				if err != nil {
					return err
				}
				version = provider.Get(cmd.Context()).FullVersion
			}

			w := cmd.OutOrStdout()
			if wantJSON(cmd) {
				out, err := platform.CommandsJSON(version)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, out)
				return err
			}

			p, err := platformFlag(cmd)
			if err != nil {
				return err
			}
			info, _ := platform.Lookup(p)
			prompt := platform.PromptChar(p)

			_, _ = fmt.Fprintf(w, "%s (%s %s)\n\n", platform.TerminalTitle(p), platform.DisplayName(p), info.Arch)
			_, _ = fmt.Fprintf(w, "# download\n%s %s\n", prompt, platform.DownloadCommand(p, version))
			_, _ = fmt.Fprintf(w, "# install and start\n%s %s\n", prompt, platform.InstallCommand(p, version))
			_, _ = fmt.Fprintf(w, "# run\n%s %s\n", prompt, platform.RunCommand(p))
			_, err = fmt.Fprintf(w, "# open the dashboard\n%s %s\n", prompt, platform.OpenCommand(p))
			return err
		},
	}
	cmd.Flags().String("platform", "", "linux-amd64, linux-arm64, darwin-arm64, darwin-amd64 or windows-amd64")
	cmd.Flags().String("version", "", "Release tag (default: latest)")
	addJSONFlag(cmd)
	return cmd
}
