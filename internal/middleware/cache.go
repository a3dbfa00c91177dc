package middleware

import (
	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/cache"
	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/kvstore"
	"github.com/meysam81/oneoffctl/internal/logger"
)

// OpenCache builds the response cache over the persisted store, or over a
// memory store with --no-persist. Requires LoadConfig earlier in the chain.
func OpenCache(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[*config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	var store kvstore.Store
	quota := kvstore.WithMaxBytes(cfg.Cache.MaxBytes)
	if noPersist, _ := globalFlags(cmd).GetBool("no-persist"); noPersist {
		store = kvstore.NewMemory(quota)
	} else {
		f, err := kvstore.NewFile(cfg.StorePath(), quota)
		if err != nil {
			logger.Warn("cache unavailable, continuing in memory: %v", err)
			store = kvstore.NewMemory(quota)
		} else {
			store = f
		}
	}

	c := cache.New(store,
		cache.WithPrefix(cfg.Cache.Prefix),
		cache.WithDefaultTTL(cfg.Cache.DefaultTTL),
	)
	WithValue(cmd, CtxKeyCache, c)
	return next(cmd, args)
}
