package internal

import (
	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/platform"
	"github.com/meysam81/oneoffctl/internal/utils"
)

func NewPlatformsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "Supported release targets",
	}
	return addAll(cmd, newPlatformsListCmd, newPlatformsDetectCmd)
}

func newPlatformsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List release targets in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := utils.Map(platform.All(), func(p platform.Platform) platform.Info {
				info, _ := platform.Lookup(p)
				return info
			})
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), infos)
			}
			return renderTable(cmd.OutOrStdout(),
				[]string{"ID", "Name", "Arch", "Archive", "Extract"},
				utils.Map(infos, func(i platform.Info) []string {
					return []string{string(i.ID), i.Name, i.Arch, platform.AssetName(i.ID), i.ExtractCommand}
				}))
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func newPlatformsDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Pick the release target for a browser's hints",
		Example: `oneoffctl platforms detect --user-agent "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)" --arch arm`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var c platform.Client
			c.UserAgent, _ = cmd.Flags().GetString("user-agent")
			c.Platform, _ = cmd.Flags().GetString("platform")
			c.Architecture, _ = cmd.Flags().GetString("arch")

			p := platform.Detect(c)
			_, err := cmd.OutOrStdout().Write([]byte(string(p) + "\n"))
			return err
		},
	}
	cmd.Flags().String("user-agent", "", "navigator.userAgent")
	cmd.Flags().String("platform", "", "navigator.platform")
	cmd.Flags().String("arch", "", "navigator.userAgentData.architecture")
	return cmd
}
