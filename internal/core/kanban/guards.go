package kanban

import (
	"errors"
	"fmt"

	"github.com/example/commandcenter/internal/models"
)

// ErrInvalidMutation marks a mutation request that can never succeed.
var ErrInvalidMutation = errors.New("invalid kanban mutation")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidMutation, r.Reason)
}

// DeleteTaskContext provides context for task deletion guards.
type DeleteTaskContext struct {
	TaskID string
	Source models.Source
}

// CanDeleteTask evaluates whether a task may be removed.
// Rules:
// - Only manual tasks are removable; synced data is owned by its source
func CanDeleteTask(ctx DeleteTaskContext) GuardResult {
	if ctx.Source != models.SourceManual {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("task %s comes from %s and cannot be deleted", ctx.TaskID, ctx.Source),
		}
	}
	return GuardResult{Allowed: true}
}

// StatusChangeContext provides context for move guards.
type StatusChangeContext struct {
	TaskID    string
	NewStatus models.Status
}

// CanMoveTask evaluates whether a task can move to a column.
// Rules:
// - Target must be one of the board columns
func CanMoveTask(ctx StatusChangeContext) GuardResult {
	if !ctx.NewStatus.Valid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown status %q for task %s", ctx.NewStatus, ctx.TaskID),
		}
	}
	return GuardResult{Allowed: true}
}
