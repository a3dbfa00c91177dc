package internal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/models"
	"github.com/meysam81/oneoffctl/internal/stores"
	"github.com/meysam81/oneoffctl/internal/utils"
)

func NewExecutionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "executions",
		Aliases: []string{"exec", "runs"},
		Short:   "Inspect job executions",
	}
	return addAll(cmd,
		withBackend(newExecutionsListCmd),
		withBackend(newExecutionsGetCmd),
	)
}

func executionsStore(cmd *cobra.Command) (*stores.ExecutionsStore, error) {
	d, err := depsFrom(cmd)
	if err != nil {
		return nil, err
	}
	return stores.NewExecutionsStore(d), nil
}

var executionHeaders = []string{"ID", "Job", "Status", "Started", "Duration", "Exit"}

func executionRow(e models.Execution) []string {
	duration, exit := "-", "-"
	if e.DurationMs != nil {
		duration = (time.Duration(*e.DurationMs) * time.Millisecond).String()
	}
	if e.ExitCode != nil {
		exit = strconv.Itoa(*e.ExitCode)
	}
	return []string{e.ID, e.JobID, string(e.Status), e.StartedAt.Local().Format(time.DateTime), duration, exit}
}

func newExecutionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := executionsStore(cmd)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			var filter models.ExecutionFilter
			filter.JobID, _ = f.GetString("job")
			filter.Status, _ = f.GetString("status")
			filter.ProjectID, _ = f.GetString("project")
			filter.TagIDs, _ = f.GetStringSlice("tag")
			filter.Limit, _ = f.GetInt("limit")
			filter.Offset, _ = f.GetInt("offset")
			noCache, _ := f.GetBool("no-cache")

			if err := s.FetchExecutions(cmd.Context(), filter, !noCache); err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), s.Executions())
			}
			return renderTable(cmd.OutOrStdout(), executionHeaders, utils.Map(s.Executions(), executionRow))
		},
	}

	f := cmd.Flags()
	f.String("job", "", "Only executions of this job")
	f.String("status", "", "running, completed, failed or cancelled")
	f.String("project", "", "Project ID")
	f.StringSlice("tag", nil, "Tag ID; repeatable")
	f.Int("limit", 50, "Page size")
	f.Int("offset", 0, "Page offset")
	f.Bool("no-cache", false, "Bypass the response cache")
	addJSONFlag(cmd)
	return cmd
}

func newExecutionsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one execution with its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := executionsStore(cmd)
			if err != nil {
				return err
			}
			e, err := s.FetchExecution(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), e)
			}
			if err := renderTable(cmd.OutOrStdout(), executionHeaders, [][]string{executionRow(e)}); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if e.Error != "" {
				_, _ = fmt.Fprintf(w, "Error: %s\n", e.Error)
			}
			if e.Output != "" {
				_, _ = fmt.Fprintf(w, "\n%s\n", e.Output)
			}
			return nil
		},
	}
	addJSONFlag(cmd)
	return cmd
}
