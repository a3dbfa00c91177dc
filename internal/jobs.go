package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/errs"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/middleware"
	"github.com/meysam81/oneoffctl/internal/models"
	"github.com/meysam81/oneoffctl/internal/prompter"
	"github.com/meysam81/oneoffctl/internal/stores"
	"github.com/meysam81/oneoffctl/internal/utils"
)

func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "List, create and control jobs",
	}
	return addAll(cmd,
		withBackend(newJobsListCmd),
		withBackend(newJobsGetCmd),
		withBackend(newJobsCreateCmd),
		withBackend(newJobsUpdateCmd),
		withBackend(newJobsDeleteCmd),
		withBackend(newJobsExecuteCmd),
		withBackend(newJobsCancelCmd),
		withBackend(newJobsCloneCmd),
	)
}

func jobsStore(cmd *cobra.Command) (*stores.JobsStore, error) {
	d, err := depsFrom(cmd)
	if err != nil {
		return nil, err
	}
	return stores.NewJobsStore(d), nil
}

func newJobsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs matching a filter",
		Example: `oneoffctl jobs list --status scheduled --sort-by priority --sort-order desc
oneoffctl jobs list --tag nightly --tag db --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}

			noCache, _ := cmd.Flags().GetBool("no-cache")
			if err := s.FetchJobs(cmd.Context(), jobFilterPatch(cmd), !noCache); err != nil {
				return err
			}

			jobs := s.Jobs()
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), map[string]any{"data": jobs, "total": s.Total()})
			}
			if err := renderTable(cmd.OutOrStdout(), jobHeaders, utils.Map(jobs, jobRow)); err != nil {
				return err
			}
			logger.Info("%d of %d jobs", len(jobs), s.Total())
			return nil
		},
	}

	f := cmd.Flags()
	f.String("project", "", "Project ID")
	f.String("status", "", "scheduled, running, completed, failed or cancelled")
	f.String("type", "", "Job type (http, shell, docker)")
	f.String("search", "", "Free-text search on job names")
	f.StringSlice("tag", nil, "Tag ID; repeat to require several")
	f.String("sort-by", "", "scheduled_at, created_at, priority or name")
	f.String("sort-order", "", "asc or desc")
	f.Int("limit", 0, "Page size (default 50)")
	f.Int("offset", 0, "Page offset")
	f.Bool("no-cache", false, "Bypass the response cache")
	addJSONFlag(cmd)
	return cmd
}

// jobFilterPatch turns the filter flags the user actually passed into a
// patch, so an explicit --offset 0 or --status "" resets the stored filter.
func jobFilterPatch(cmd *cobra.Command) *models.JobFilterPatch {
	f := cmd.Flags()
	p := &models.JobFilterPatch{}
	str := func(flag string, dst **string) {
		if f.Changed(flag) {
			v, _ := f.GetString(flag)
			*dst = &v
		}
	}
	num := func(flag string, dst **int) {
		if f.Changed(flag) {
			v, _ := f.GetInt(flag)
			*dst = &v
		}
	}
	str("project", &p.ProjectID)
	str("status", &p.Status)
	str("type", &p.Type)
	str("search", &p.Search)
	str("sort-by", &p.SortBy)
	str("sort-order", &p.SortOrder)
	num("limit", &p.Limit)
	num("offset", &p.Offset)
	if f.Changed("tag") {
		tags, _ := f.GetStringSlice("tag")
		p.TagIDs = &tags
	}
	return p
}

var jobHeaders = []string{"ID", "Name", "Type", "Status", "Scheduled", "Priority", "Tags"}

func jobRow(j models.Job) []string {
	return []string{
		j.ID,
		j.Name,
		j.Type,
		string(j.Status),
		j.ScheduledAt.Local().Format(time.DateTime),
		strconv.Itoa(j.Priority),
		strings.Join(utils.Map(j.Tags, func(t models.Tag) string { return t.Name }), ","),
	}
}

func newJobsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			job, err := s.FetchJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), job)
			}
			if err := renderTable(cmd.OutOrStdout(), jobHeaders, [][]string{jobRow(job)}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", job.Config)
			return err
		},
	}
	addJSONFlag(cmd)
	return cmd
}

// parseSchedule validates --scheduled-at and --now and returns the value the
// backend expects ("" with immediate=true for --now).
func parseSchedule(cmd *cobra.Command, usage string, required bool) (at string, immediate bool, err error) {
	at, _ = cmd.Flags().GetString("scheduled-at")
	now, _ := cmd.Flags().GetBool("now")

	switch {
	case now && at != "":
		return "", false, middleware.UsageError(errs.ScheduleConflict, usage)
	case now:
		return "", true, nil
	case at == "":
		if required {
			return "", false, middleware.UsageError(errs.ScheduleRequired, usage)
		}
		return "", false, nil
	case at == "now":
		return "", true, nil
	}

	if _, perr := time.Parse(time.RFC3339, at); perr != nil {
		return "", false, middleware.UsageError(errs.InvalidScheduledAt, at)
	}
	return at, false, nil
}

func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().String("scheduled-at", "", `RFC3339 time, or "now"`)
	cmd.Flags().Bool("now", false, "Run as soon as a worker is free")
}

func newJobsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a new job",
		Example: `oneoffctl jobs create --name ping --type http --job-config '{"url":"https://example.com"}' --now
oneoffctl jobs create --name backup --type shell --job-config '{"command":"pg_dump db"}' \
    --scheduled-at 2025-06-01T02:00:00Z --tag nightly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, immediate, err := parseSchedule(cmd, "jobs create", true)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			req := models.CreateJobRequest{ScheduledAt: at, Immediate: immediate}
			req.Name, _ = f.GetString("name")
			req.Type, _ = f.GetString("type")
			req.Config, _ = f.GetString("job-config")
			req.Priority, _ = f.GetInt("priority")
			req.ProjectID, _ = f.GetString("project")
			req.Timezone, _ = f.GetString("timezone")
			req.TagIDs, _ = f.GetStringSlice("tag")

			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			job, err := s.CreateJob(cmd.Context(), req)
			if err != nil {
				return err
			}
			logger.Success("Created job %s (%s)", job.Name, job.ID)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), job)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("name", "", "Job name")
	f.String("type", "", "Job type (http, shell, docker)")
	f.String("job-config", "{}", "Job type specific JSON configuration")
	f.Int("priority", 5, "Priority from 1 (low) to 10 (high)")
	f.String("project", "", "Project ID")
	f.String("timezone", "", "IANA timezone for --scheduled-at display")
	f.StringSlice("tag", nil, "Tag ID; repeatable")
	addScheduleFlags(cmd)
	addJSONFlag(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newJobsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a scheduled job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var req models.UpdateJobRequest
			changed := false

			str := func(flag string, dst **string) {
				if f.Changed(flag) {
					v, _ := f.GetString(flag)
					*dst = &v
					changed = true
				}
			}
			str("name", &req.Name)
			str("job-config", &req.Config)
			str("project", &req.ProjectID)
			str("timezone", &req.Timezone)
			if f.Changed("priority") {
				v, _ := f.GetInt("priority")
				req.Priority = &v
				changed = true
			}
			if f.Changed("tag") {
				req.TagIDs, _ = f.GetStringSlice("tag")
				changed = true
			}
			if f.Changed("scheduled-at") || f.Changed("now") {
				at, immediate, err := parseSchedule(cmd, "jobs update "+args[0], true)
				if err != nil {
					return err
				}
				if immediate {
					at = time.Now().UTC().Format(time.RFC3339)
				}
				req.ScheduledAt = &at
				changed = true
			}
			if !changed {
				return middleware.UsageError(errs.NothingToUpdate, args[0])
			}

			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			job, err := s.UpdateJob(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			logger.Success("Updated job %s", job.ID)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), job)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("name", "", "Job name")
	f.String("job-config", "", "Job type specific JSON configuration")
	f.Int("priority", 0, "Priority from 1 (low) to 10 (high)")
	f.String("project", "", "Project ID")
	f.String("timezone", "", "IANA timezone")
	f.StringSlice("tag", nil, "Replace tags; repeatable")
	addScheduleFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}

func newJobsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a job",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			ok, err := prompter.New(cmd.InOrStdin(), cmd.OutOrStdout()).
				AssumeYes(yes).
				Confirm(fmt.Sprintf("Delete job %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("Aborted")
				return nil
			}

			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			if err := s.DeleteJob(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Success("Deleted job %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newJobsExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <id>",
		Short: "Run a job now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			msg, err := s.ExecuteJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Success("%s", utils.FirstNonEmpty(msg.Message, "Job queued"))
			return nil
		},
	}
}

func newJobsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a scheduled or running job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			msg, err := s.CancelJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Success("%s", utils.FirstNonEmpty(msg.Message, "Job cancelled"))
			return nil
		},
	}
}

func newJobsCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clone <id>",
		Short:   "Copy a job with a new schedule",
		Example: `oneoffctl jobs clone 01HX... --scheduled-at now`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, immediate, err := parseSchedule(cmd, "jobs clone "+args[0], true)
			if err != nil {
				return err
			}
			if immediate {
				at = "now"
			}

			s, err := jobsStore(cmd)
			if err != nil {
				return err
			}
			job, err := s.CloneJob(cmd.Context(), args[0], at)
			if err != nil {
				return err
			}
			logger.Success("Cloned %s as %s", args[0], job.ID)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), job)
			}
			return nil
		},
	}
	addScheduleFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}
