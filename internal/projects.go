package internal

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/models"
	"github.com/meysam81/oneoffctl/internal/prompter"
	"github.com/meysam81/oneoffctl/internal/stores"
	"github.com/meysam81/oneoffctl/internal/utils"
)

func systemStore(cmd *cobra.Command) (*stores.SystemStore, error) {
	d, err := depsFrom(cmd)
	if err != nil {
		return nil, err
	}
	return stores.NewSystemStore(d), nil
}

func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}
	return addAll(cmd,
		withBackend(newProjectsListCmd),
		withBackend(newProjectsCreateCmd),
		withBackend(newProjectsArchiveCmd),
		withBackend(newProjectsDeleteCmd),
	)
}

func newProjectsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			archived, _ := cmd.Flags().GetBool("archived")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			ps, err := s.FetchProjects(cmd.Context(), archived, !noCache)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), ps)
			}
			return renderTable(cmd.OutOrStdout(),
				[]string{"ID", "Name", "Description", "Archived"},
				utils.Map(ps, func(p models.Project) []string {
					return []string{p.ID, p.Name, p.Description, strconv.FormatBool(p.IsArchived)}
				}))
		},
	}
	cmd.Flags().Bool("archived", false, "Include archived projects")
	cmd.Flags().Bool("no-cache", false, "Bypass the response cache")
	addJSONFlag(cmd)
	return cmd
}

func newProjectsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			req := models.ProjectRequest{Name: &args[0]}
			if cmd.Flags().Changed("description") {
				v, _ := cmd.Flags().GetString("description")
				req.Description = &v
			}
			if cmd.Flags().Changed("color") {
				v, _ := cmd.Flags().GetString("color")
				req.Color = &v
			}

			p, err := s.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			logger.Success("Created project %s (%s)", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("color", "", "Hex colour, e.g. #3b82f6")
	return cmd
}

func newProjectsArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive (or with --undo restore) a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			undo, _ := cmd.Flags().GetBool("undo")
			archived := !undo
			if _, err := s.UpdateProject(cmd.Context(), args[0], models.ProjectRequest{IsArchived: &archived}); err != nil {
				return err
			}
			logger.Success("Project %s archived=%t", args[0], archived)
			return nil
		},
	}
	cmd.Flags().Bool("undo", false, "Restore an archived project")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			ok, err := prompter.New(cmd.InOrStdin(), cmd.OutOrStdout()).
				AssumeYes(yes).
				Confirm(fmt.Sprintf("Delete project %s?", args[0]))
			if err != nil || !ok {
				return err
			}

			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			if err := s.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Success("Deleted project %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func NewTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
	}
	return addAll(cmd,
		withBackend(newTagsListCmd),
		withBackend(newTagsCreateCmd),
		withBackend(newTagsDeleteCmd),
	)
}

func newTagsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")
			tags, err := s.FetchTags(cmd.Context(), !noCache)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), tags)
			}
			return renderTable(cmd.OutOrStdout(),
				[]string{"ID", "Name", "Color", "Default"},
				utils.Map(tags, func(t models.Tag) []string {
					return []string{t.ID, t.Name, t.Color, strconv.FormatBool(t.IsDefault)}
				}))
		},
	}
	cmd.Flags().Bool("no-cache", false, "Bypass the response cache")
	addJSONFlag(cmd)
	return cmd
}

func newTagsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			req := models.TagRequest{Name: &args[0]}
			if cmd.Flags().Changed("color") {
				v, _ := cmd.Flags().GetString("color")
				req.Color = &v
			}
			t, err := s.CreateTag(cmd.Context(), req)
			if err != nil {
				return err
			}
			logger.Success("Created tag %s (%s)", t.Name, t.ID)
			return nil
		},
	}
	cmd.Flags().String("color", "", "Hex colour, e.g. #22c55e")
	return cmd
}

func newTagsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			ok, err := prompter.New(cmd.InOrStdin(), cmd.OutOrStdout()).
				AssumeYes(yes).
				Confirm(fmt.Sprintf("Delete tag %s?", args[0]))
			if err != nil || !ok {
				return err
			}

			s, err := systemStore(cmd)
			if err != nil {
				return err
			}
			if err := s.DeleteTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Success("Deleted tag %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}
