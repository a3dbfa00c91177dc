package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/models"
	"github.com/meysam81/oneoffctl/internal/utils"
)

func NewSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Scheduler status, workers and settings",
	}
	return addAll(cmd,
		withBackend(newSystemStatusCmd),
		withBackend(newSystemWorkersCmd),
		withBackend(newSystemJobTypesCmd),
		withBackend(newSystemConfigCmd),
		withBackend(newSystemSetCmd),
		withBackend(newSystemOverviewCmd),
	)
}

func statsRows(st models.SystemStats) [][]string {
	return [][]string{
		{"Scheduled", strconv.FormatInt(st.TotalScheduled, 10)},
		{"Running", strconv.FormatInt(st.CurrentlyRunning, 10)},
		{"Completed today", strconv.FormatInt(st.CompletedToday, 10)},
		{"Failed (recent)", strconv.FormatInt(st.FailedRecent, 10)},
		{"Avg duration", fmt.Sprintf("%.0fms", st.AvgDurationMs)},
		{"Queue depth", strconv.FormatInt(st.QueueDepth, 10)},
	}
}

func workerRows(ws models.WorkerStatus) [][]string {
	return [][]string{
		{"Workers", strconv.Itoa(ws.TotalWorkers)},
		{"Active", strconv.Itoa(ws.ActiveWorkers)},
		{"Available", strconv.Itoa(ws.AvailableWorkers)},
		{"Queued", strconv.Itoa(ws.QueuedJobs)},
		{"Running jobs", strings.Join(ws.RunningJobs, ", ")},
	}
}

func newSystemStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show job counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			st, err := s.FetchStats(cmd.Context())
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), st)
			}
			return renderTable(cmd.OutOrStdout(), []string{"Metric", "Value"}, statsRows(st))
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func newSystemWorkersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "Show worker pool usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			ws, err := s.FetchWorkerStatus(cmd.Context())
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), ws)
			}
			return renderTable(cmd.OutOrStdout(), []string{"Metric", "Value"}, workerRows(ws))
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func newSystemJobTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "job-types",
		Short: "List job types the server can run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			types, err := s.FetchJobTypes(cmd.Context(), true)
			if err != nil {
				return err
			}
			for _, t := range types {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSystemConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show server settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			settings, err := s.FetchConfig(cmd.Context())
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), settings)
			}
			return renderTable(cmd.OutOrStdout(), []string{"Key", "Value"},
				utils.Map(settings, func(c models.SystemConfig) []string { return []string{c.Key, c.Value} }))
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func newSystemSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change a server setting",
		Example: `oneoffctl system set log_retention_days 30`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			if err := s.UpdateConfig(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			logger.Success("Set %s", args[0])
			return nil
		},
	}
}

// newSystemOverviewCmd loads everything a dashboard shows on start and prints a
// summary. Sections that fail are reported and skipped.
func newSystemOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Load projects, tags, job types, stats and workers in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			s.InitializeApp(cmd.Context())

			rows := [][]string{
				{"Projects", strconv.Itoa(len(s.Projects()))},
				{"Tags", strconv.Itoa(len(s.Tags()))},
				{"Job types", strings.Join(s.JobTypes(), ", ")},
			}
			if st, ok := s.Stats(); ok {
				rows = append(rows, statsRows(st)...)
			}
			if ws, ok := s.WorkerStatus(); ok {
				rows = append(rows, workerRows(ws)...)
			}
			return renderTable(cmd.OutOrStdout(), []string{"Item", "Value"}, rows)
		},
	}
}
