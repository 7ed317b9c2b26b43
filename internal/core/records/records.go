// Package records holds the rules for the small JSON-backed collections:
// chairman directives, feature requests and recovered tasks.
package records

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
)

// ErrNotFound is returned when an update names a record that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidStatus is returned when a status is outside a collection's closed set.
var ErrInvalidStatus = errors.New("invalid status")

// ConvertedTaskOwner owns kanban tasks created from feature requests.
const ConvertedTaskOwner = "Jackbot"

// NewID returns "<prefix>-<unix millis>-<6 char random suffix>".
func NewID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

// DirectiveStatuses lists directive states in workflow order.
var DirectiveStatuses = []string{
	models.DirectiveStatusNew,
	models.DirectiveStatusAcknowledged,
	models.DirectiveStatusInProgress,
	models.DirectiveStatusDone,
}

// FeatureStatuses lists feature request states.
var FeatureStatuses = []string{
	models.FeatureStatusPending,
	models.FeatureStatusApproved,
	models.FeatureStatusRejected,
	models.FeatureStatusConverted,
}

// RecoveredStatuses lists recovered task states.
var RecoveredStatuses = []string{
	models.RecoveredStatusPending,
	models.RecoveredStatusInProgress,
	models.RecoveredStatusDone,
}

// CheckStatus returns ErrInvalidStatus unless status is one of allowed.
func CheckStatus(status string, allowed []string) error {
	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return fmt.Errorf("%w %q (want one of %s)", ErrInvalidStatus, status, strings.Join(allowed, ", "))
}

// TaskPriority maps a P1-P4 request priority onto the board's three levels.
// Unknown values map to medium.
func TaskPriority(requestPriority string) models.Priority {
	switch strings.ToUpper(strings.TrimSpace(requestPriority)) {
	case "P1", "P2":
		return models.PriorityHigh
	case "P4":
		return models.PriorityLow
	}
	if p, ok := kanban.ParsePriority(requestPriority); ok {
		return p
	}
	return models.PriorityMedium
}

// FeatureTask builds the manual kanban task a converted feature request becomes.
func FeatureTask(f *models.FeatureRequest, now time.Time, newID kanban.IDFunc) *models.KanbanTask {
	if newID == nil {
		newID = kanban.NewTaskID
	}
	project, ok := kanban.ParseProject(f.Project)
	if !ok {
		project = models.ProjectOther
	}
	description := f.Description
	if description != "" {
		description += "\n\n"
	}
	description += "Converted from feature request " + f.ID

	return &models.KanbanTask{
		ID:          newID(models.SourceManual, now),
		Title:       f.Title,
		Status:      models.StatusBacklog,
		Priority:    TaskPriority(f.Priority),
		Project:     project,
		Owner:       ConvertedTaskOwner,
		Source:      models.SourceManual,
		CreatedAt:   now,
		UpdatedAt:   now,
		Description: description,
		Tags:        []string{"feature-request"},
	}
}
