package internal

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/api"
	"github.com/meysam81/oneoffctl/internal/cache"
	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/middleware"
	"github.com/meysam81/oneoffctl/internal/service"
	"github.com/meysam81/oneoffctl/internal/stores"
)

// depsFrom assembles the store dependencies from what withBackend put on
// the command context.
func depsFrom(cmd *cobra.Command) (*stores.Deps, error) {
	cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
	if err != nil {
		return nil, err
	}
	c, err := middleware.Get[*cache.Cache](cmd, middleware.CtxKeyCache)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.API, service.NewHTTPClient(0))
	return stores.NewDeps(client, c, cfg.Cache), nil
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := logger.CreateTable(w, headers)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}
