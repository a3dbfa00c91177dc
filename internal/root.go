package internal

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/versions"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oneoffctl",
		Short: "Console client for the oneoff job scheduler",
		Long: `oneoffctl talks to a oneoff server: list, create and run one-off jobs,
inspect executions, projects and tags, and look up the latest release.

Responses are cached on disk with short TTLs for jobs and long TTLs for
reference data; pass --no-cache to a list command to force a fresh read.`,
		Example: `oneoffctl jobs list --status running
oneoffctl jobs create --name backup --type shell --job-config '{"command":"pg_dump"}' --now
oneoffctl release commands --platform darwin-arm64`,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.ConfigureLoggerFromFlags()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versions.PrintVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/oneoff/config.yml)")
	pf.String("api-url", "", "Backend API base URL, e.g. http://localhost:8080/api")
	pf.Bool("no-persist", false, "Keep the response cache in memory only")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (-V, -VV)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVar(&logger.FlagSilent, "silent", false, "Print nothing but command output")
	pf.BoolVar(&logger.FlagJSON, "json-logs", false, "Emit logs as JSON")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
