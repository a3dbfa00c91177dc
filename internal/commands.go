package internal

import (
	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/middleware"
)

// withBackend gives a command its config and response cache.
var withBackend = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.OpenCache)

// withConfig is for commands that never touch the backend cache.
var withConfig = middleware.UseMiddlewareChain(middleware.LoadConfig)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	NewJobsCmd,
	NewExecutionsCmd,
	NewProjectsCmd,
	NewTagsCmd,
	NewSystemCmd,
	NewCacheCmd,
	NewReleaseCmd,
	NewPlatformsCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

func addAll(parent *cobra.Command, factories ...middleware.CommandFactory) *cobra.Command {
	for _, f := range factories {
		parent.AddCommand(f())
	}
	return parent
}
