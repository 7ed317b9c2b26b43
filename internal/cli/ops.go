package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/wire"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List agent gateway sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.OpsAdapter(s).Sessions(NewContext()); err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		return nil
	},
}

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "List scheduled gateway jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.OpsAdapter(s).CronJobs(NewContext()); err != nil {
			return fmt.Errorf("failed to list cron jobs: %w", err)
		}
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity (audit trail)",
	Long:  "Show activity log entries, newest first (default 50)",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entityType, _ := cmd.Flags().GetString("type")
		entityID, _ := cmd.Flags().GetString("entity")
		actor, _ := cmd.Flags().GetString("by")
		action, _ := cmd.Flags().GetString("action")

		s, err := services()
		if err != nil {
			return err
		}
		err = wire.OpsAdapter(s).Activity(NewContext(), primary.ActivityFilters{
			EntityType: entityType,
			EntityID:   entityID,
			Actor:      actor,
			Action:     action,
			Limit:      limit,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch activity: %w", err)
		}
		return nil
	},
}

var activityPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old activity entries",
	Long:  "Delete activity entries older than the specified number of days (default 30)",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		s, err := services()
		if err != nil {
			return err
		}
		if err := wire.OpsAdapter(s).Prune(NewContext(), days); err != nil {
			return fmt.Errorf("failed to prune activity: %w", err)
		}
		return nil
	},
}

func init() {
	// activity flags
	activityCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")
	activityCmd.Flags().String("type", "", "Filter by entity type (e.g. kanban_task)")
	activityCmd.Flags().String("entity", "", "Filter by entity id")
	activityCmd.Flags().String("by", "", "Filter by actor")
	activityCmd.Flags().String("action", "", "Filter by action (create, update, delete, sync)")

	// activity prune flags
	activityPruneCmd.Flags().Int("days", 30, "Delete entries older than this many days")

	activityCmd.AddCommand(activityPruneCmd)
}

// SessionsCmd returns the sessions command
func SessionsCmd() *cobra.Command {
	return sessionsCmd
}

// CronCmd returns the cron command
func CronCmd() *cobra.Command {
	return cronCmd
}

// ActivityCmd returns the activity command
func ActivityCmd() *cobra.Command {
	return activityCmd
}
