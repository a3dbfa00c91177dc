package internal

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/errs"
	"github.com/meysam81/oneoffctl/internal/initiator"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/middleware"
	"github.com/meysam81/oneoffctl/internal/utils/pathutils"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default oneoffctl configuration",
		Long: `Initialize oneoffctl configuration.
This command will:
- Create config.yml in $XDG_CONFIG_HOME/oneoff (or the --config path)
- Create the cache directory in $XDG_STATE_HOME/oneoff`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Root().PersistentFlags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")

			written, err := initiator.New(path, force).Execute()
			if errors.Is(err, initiator.ErrExists) {
				return middleware.UsageError(errs.ConfigExists, written)
			}
			if err != nil {
				return err
			}

			if short, err := pathutils.ToHomePathFormat(written); err == nil {
				written = short
			}
			logger.Success("Wrote %s", written)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
