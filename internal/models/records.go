package models

import "time"

// Directive is a standing instruction from the chairman, tracked to completion.
type Directive struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Project     string    `json:"project,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Directive status constants
const (
	DirectiveStatusNew          = "New"
	DirectiveStatusAcknowledged = "Acknowledged"
	DirectiveStatusInProgress   = "In Progress"
	DirectiveStatusDone         = "Done"
)

// FeatureRequest is a proposed change to one of the projects.
type FeatureRequest struct {
	ID          string    `json:"id"`
	Project     string    `json:"project,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Requester   string    `json:"requester,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Feature request status constants
const (
	FeatureStatusPending   = "pending"
	FeatureStatusApproved  = "approved"
	FeatureStatusRejected  = "rejected"
	FeatureStatusConverted = "converted"
)

// RecoveredTask is a task recovered from an older system, awaiting triage.
type RecoveredTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Project       string `json:"project,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Status        string `json:"status"`
	RecoveredFrom string `json:"recoveredFrom,omitempty"`
	RecoveredAt   string `json:"recoveredAt,omitempty"`
}

// Recovered task status constants
const (
	RecoveredStatusPending    = "pending"
	RecoveredStatusInProgress = "inprogress"
	RecoveredStatusDone       = "done"
)
