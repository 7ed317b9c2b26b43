package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/wire"
)

var kanbanCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Manage the kanban board",
	Long:  "Sync the board from the notes and create, move, update or delete tasks",
}

var kanbanSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync tasks from the notes and agent feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}
		return wire.BoardAdapter(s).Sync(NewContext())
	},
}

var kanbanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored board without syncing",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		s, err := services()
		if err != nil {
			return err
		}
		return wire.BoardAdapter(s).List(NewContext(), project)
	},
}

var kanbanCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a manual task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		project, _ := cmd.Flags().GetString("project")
		owner, _ := cmd.Flags().GetString("owner")
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		s, err := services()
		if err != nil {
			return err
		}
		err = wire.BoardAdapter(s).Create(NewContext(), primary.CreateKanbanTaskRequest{
			Title:       args[0],
			Status:      models.Status(status),
			Priority:    models.Priority(priority),
			Project:     models.Project(project),
			Owner:       owner,
			Description: description,
			Tags:        tags,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	},
}

var kanbanMoveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another column (backlog, inprogress, done)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.BoardAdapter(s).Move(NewContext(), args[0], models.Status(args[1])); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
		return nil
	},
}

var kanbanUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update fields of a task",
	Long:  "Update fields of a task. Only flags that are given are changed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.BoardAdapter(s).Update(NewContext(), args[0], patch); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	},
}

var kanbanDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a manual task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.BoardAdapter(s).Delete(NewContext(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	},
}

// patchFromFlags builds a patch holding only the flags the user set.
func patchFromFlags(cmd *cobra.Command) (kanban.Patch, error) {
	var p kanban.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		p.Title = &v
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		status := models.Status(v)
		p.Status = &status
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		priority := models.Priority(v)
		p.Priority = &priority
	}
	if flags.Changed("project") {
		v, _ := flags.GetString("project")
		project := models.Project(v)
		p.Project = &project
	}
	if flags.Changed("owner") {
		v, _ := flags.GetString("owner")
		p.Owner = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		p.Description = &v
	}
	if flags.Changed("tags") {
		v, _ := flags.GetStringSlice("tags")
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		p.Tags = &tags
	}

	if p == (kanban.Patch{}) {
		return p, fmt.Errorf("nothing to update: pass at least one of --title, --status, --priority, --project, --owner, --description or --tags")
	}
	return p, p.Validate()
}

func addTaskFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "", "Column: backlog, inprogress or done")
	cmd.Flags().StringP("priority", "p", "", "Priority: high, medium or low")
	cmd.Flags().String("project", "", "Project: LessonCraft, JD Gallery, Infrastructure, Content or Other")
	cmd.Flags().StringP("owner", "o", "", "Owner")
	cmd.Flags().StringP("description", "d", "", "Description")
	cmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
}

func init() {
	// kanban list flags
	kanbanListCmd.Flags().String("project", "", "Only show tasks of this project")

	// kanban create flags
	addTaskFieldFlags(kanbanCreateCmd)

	// kanban update flags
	kanbanUpdateCmd.Flags().StringP("title", "t", "", "Title")
	addTaskFieldFlags(kanbanUpdateCmd)

	// Register subcommands
	kanbanCmd.AddCommand(kanbanSyncCmd)
	kanbanCmd.AddCommand(kanbanListCmd)
	kanbanCmd.AddCommand(kanbanCreateCmd)
	kanbanCmd.AddCommand(kanbanMoveCmd)
	kanbanCmd.AddCommand(kanbanUpdateCmd)
	kanbanCmd.AddCommand(kanbanDeleteCmd)
}

// KanbanCmd returns the kanban command
func KanbanCmd() *cobra.Command {
	return kanbanCmd
}
