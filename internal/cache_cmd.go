package internal

import (
	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/cache"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/middleware"
)

func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
	}
	return addAll(cmd, withBackend(newCacheClearCmd))
}

func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached responses",
		Example: `oneoffctl cache clear
oneoffctl cache clear --prefix jobs_`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := middleware.Get[*cache.Cache](cmd, middleware.CtxKeyCache)
			if err != nil {
				return err
			}
			prefix, _ := cmd.Flags().GetString("prefix")
			if prefix == "" {
				c.Clear()
				logger.Success("Cache cleared")
				return nil
			}
			c.InvalidatePrefix(prefix)
			logger.Success("Dropped cached %s* entries", prefix)
			return nil
		},
	}
	cmd.Flags().String("prefix", "", "Only drop entries whose key starts with this (jobs_, executions_, system_)")
	return cmd
}
