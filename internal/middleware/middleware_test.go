package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysam81/oneoffctl/internal/cache"
	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/errs"
	"github.com/meysam81/oneoffctl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestUseMiddlewareChain_Order(t *testing.T) {
	var trail []string
	mw := func(name string) MiddlewareFunc {
		return func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
			trail = append(trail, name)
			return next(cmd, args)
		}
	}

	factory := UseMiddlewareChain(mw("a"), mw("b"))(func() *cobra.Command {
		return &cobra.Command{
			Use:     "x",
			PreRunE: func(*cobra.Command, []string) error { trail = append(trail, "own"); return nil },
			RunE:    func(*cobra.Command, []string) error { trail = append(trail, "run"); return nil },
		}
	})

	cmd := factory()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, []string{"a", "b", "own", "run"}, trail)
}

func TestUseMiddlewareChain_ShortCircuit(t *testing.T) {
	ran := false
	stop := func(*cobra.Command, []string, func(*cobra.Command, []string) error) error {
		return UsageError(errs.NothingToUpdate, "j1")
	}
	cmd := UseMiddlewareChain(stop)(func() *cobra.Command {
		return &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { ran = true; return nil }}
	})()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, ErrLogged)
	assert.False(t, ran)
}

func TestGet(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := Get[string](cmd, CtxKeyConfig)
	assert.ErrorIs(t, err, ErrMissingValue)
	assert.ErrorContains(t, err, "no context")

	cmd.SetContext(context.Background())
	_, err = Get[string](cmd, CtxKeyConfig)
	assert.ErrorIs(t, err, ErrMissingValue)

	WithValue(cmd, CtxKeyConfig, 42)
	_, err = Get[string](cmd, CtxKeyConfig)
	assert.ErrorContains(t, err, "wrong type")

	v, err := Get[int](cmd, CtxKeyConfig)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func newFlaggedCmd(run func(cmd *cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "x",
		RunE: func(cmd *cobra.Command, _ []string) error { return run(cmd) },
	}
	cmd.PersistentFlags().String("config", "", "")
	cmd.PersistentFlags().String("api-url", "", "")
	cmd.PersistentFlags().Bool("no-persist", false, "")
	return cmd
}

func TestLoadConfigAndOpenCache(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	cfg := config.Default()
	cfg.Cache.Dir = filepath.Join(dir, "state")
	require.NoError(t, config.Save(&cfg, cfgPath))
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvCacheDir, "")

	var gotCfg *config.Config
	var gotCache *cache.Cache
	cmd := UseMiddlewareChain(LoadConfig, OpenCache)(func() *cobra.Command {
		return newFlaggedCmd(func(cmd *cobra.Command) error {
			var err error
			if gotCfg, err = Get[*config.Config](cmd, CtxKeyConfig); err != nil {
				return err
			}
			gotCache, err = Get[*cache.Cache](cmd, CtxKeyCache)
			return err
		})
	})()
	cmd.SetArgs([]string{"--config", cfgPath, "--api-url", "http://backend:9000/api"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "http://backend:9000/api", gotCfg.API.BaseURL)
	require.NotNil(t, gotCache)

	gotCache.Set("k", "v", 0)
	_, err := os.Stat(filepath.Join(dir, "state", "storage.json"))
	assert.NoError(t, err, "persisted store is created on first write")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	cmd := UseMiddlewareChain(LoadConfig)(func() *cobra.Command {
		return newFlaggedCmd(func(*cobra.Command) error { return nil })
	})()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yml")})

	assert.ErrorContains(t, cmd.ExecuteContext(context.Background()), "config file not found")
}

func TestLoadConfig_LocalFlagCannotShadowGlobal(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvCacheDir, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newFlaggedCmd(func(*cobra.Command) error { return nil })
	var got *config.Config
	child := UseMiddlewareChain(LoadConfig)(func() *cobra.Command {
		c := &cobra.Command{
			Use: "create",
			RunE: func(cmd *cobra.Command, _ []string) error {
				var err error
				got, err = Get[*config.Config](cmd, CtxKeyConfig)
				return err
			},
		}
		c.Flags().String("config", "{}", "job payload")
		return c
	})()
	root.AddCommand(child)
	root.SetArgs([]string{"create", "--config", `{"command":"ls"}`})

	// the payload must not be read as a config file path
	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NotNil(t, got)
	assert.Equal(t, config.Default().API.BaseURL, got.API.BaseURL)
}
