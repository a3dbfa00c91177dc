package middleware

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
)

// LoadConfig reads the config file named by --config (or the default one),
// applies --api-url and stores the result under CtxKeyConfig.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path, _ := globalFlags(cmd).GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if u, _ := globalFlags(cmd).GetString("api-url"); strings.TrimSpace(u) != "" {
		cfg.API.BaseURL = strings.TrimSpace(u)
	}
	logger.Debug("api: %s, cache: %s", cfg.API.BaseURL, cfg.Cache.Dir)

	WithValue(cmd, CtxKeyConfig, cfg)
	return next(cmd, args)
}

// globalFlags returns the root's persistent flags. Reading them there means a
// subcommand flag of the same name cannot shadow them.
func globalFlags(cmd *cobra.Command) *pflag.FlagSet {
	return cmd.Root().PersistentFlags()
}
