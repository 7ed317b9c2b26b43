package kanban

import (
	"errors"
	"testing"

	"github.com/example/commandcenter/internal/models"
)

func TestCanDeleteTask(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DeleteTaskContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "manual task can be deleted",
			ctx:         DeleteTaskContext{TaskID: "manual-1", Source: models.SourceManual},
			wantAllowed: true,
		},
		{
			name:        "todo task cannot be deleted",
			ctx:         DeleteTaskContext{TaskID: "todo-1", Source: models.SourceTodo},
			wantAllowed: false,
			wantReason:  "task todo-1 comes from todo and cannot be deleted",
		},
		{
			name:        "subagent task cannot be deleted",
			ctx:         DeleteTaskContext{TaskID: "subagent-1", Source: models.SourceSubagent},
			wantAllowed: false,
			wantReason:  "task subagent-1 comes from subagent and cannot be deleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeleteTask(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanMoveTask(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StatusChangeContext
		wantAllowed bool
	}{
		{name: "backlog", ctx: StatusChangeContext{TaskID: "x", NewStatus: models.StatusBacklog}, wantAllowed: true},
		{name: "inprogress", ctx: StatusChangeContext{TaskID: "x", NewStatus: models.StatusInProgress}, wantAllowed: true},
		{name: "done", ctx: StatusChangeContext{TaskID: "x", NewStatus: models.StatusDone}, wantAllowed: true},
		{name: "unknown column", ctx: StatusChangeContext{TaskID: "x", NewStatus: "review"}, wantAllowed: false},
		{name: "empty", ctx: StatusChangeContext{TaskID: "x"}, wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanMoveTask(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestGuardResult_Error(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("allowed result should have nil error, got %v", err)
	}

	err := GuardResult{Allowed: false, Reason: "nope"}.Error()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidMutation) {
		t.Errorf("expected ErrInvalidMutation, got %v", err)
	}
	if err.Error() != "invalid kanban mutation: nope" {
		t.Errorf("Error() = %q", err.Error())
	}
}
