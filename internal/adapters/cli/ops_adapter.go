package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
)

var (
	activeColor   = color.New(color.FgGreen)
	inactiveColor = color.New(color.FgHiBlack)
)

// OpsAdapter prints gateway sessions, cron jobs and the activity log.
type OpsAdapter struct {
	ops      primary.OpsService
	activity primary.ActivityService
	out      io.Writer
}

// NewOpsAdapter creates a new OpsAdapter with the given services.
func NewOpsAdapter(ops primary.OpsService, activity primary.ActivityService, out io.Writer) *OpsAdapter {
	return &OpsAdapter{
		ops:      ops,
		activity: activity,
		out:      out,
	}
}

// Sessions lists gateway sessions.
func (a *OpsAdapter) Sessions(ctx context.Context) error {
	sessions, err := a.ops.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-8s %-30s %-12s %-20s %s\n", "STATUS", "NAME", "LAST ACTIVE", "MODEL", "TOKENS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range sessions {
		statusColor(s.Status == models.SessionStatusActive).Fprintf(a.out, "%-8s", s.Status)
		fmt.Fprintf(a.out, " %-30s %-12s %-20s %s\n", s.Name, s.LastActive, s.Model, s.Tokens)
	}
	fmt.Fprintln(a.out)
	return nil
}

// CronJobs lists scheduled jobs.
func (a *OpsAdapter) CronJobs(ctx context.Context) error {
	jobs, err := a.ops.ListCronJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No cron jobs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-20s %-16s %-16s %s\n", "STATUS", "ID", "SCHEDULE", "NEXT RUN", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, j := range jobs {
		statusColor(j.Status == "active").Fprintf(a.out, "%-9s", j.Status)
		name := j.Name
		if name == "" {
			name = j.Command
		}
		fmt.Fprintf(a.out, " %-20s %-16s %-16s %s\n", j.ID, j.Schedule, j.NextRun, name)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Activity lists recent activity, newest first.
func (a *OpsAdapter) Activity(ctx context.Context, filters primary.ActivityFilters) error {
	entries, err := a.activity.ListActivity(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-10s %-7s %-30s %s\n", "TIMESTAMP", "ACTOR", "ACTION", "ENTITY", "CHANGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		change := ""
		switch {
		case e.Action == "sync":
			change = fmt.Sprintf("added %s", e.NewValue)
		case e.FieldName != "":
			change = fmt.Sprintf("%s: %s → %s", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(a.out, "%-20s %-10s %-7s %-30s %s\n", e.Timestamp, e.Actor, e.Action, e.EntityType+"/"+e.EntityID, change)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Prune deletes activity older than days.
func (a *OpsAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.activity.PruneActivity(ctx, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d activity entries older than %d days\n", n, days)
	return nil
}

func statusColor(active bool) *color.Color {
	if active {
		return activeColor
	}
	return inactiveColor
}
