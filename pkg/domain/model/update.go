package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// Project is the project an updated issue belongs to
type Project struct {
	Name         string `json:"name,omitempty"`
	ShortName    string `json:"shortName,omitempty"`
	Presentation string `json:"presentation,omitempty"`
}

// Issue holds identifying metadata of an updated issue
type Issue struct {
	ID         string `json:"id,omitempty"`
	IDReadable string `json:"idReadable,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// Comment is a comment added during an update
type Comment struct {
	ID      string `json:"id,omitempty"`
	Text    string `json:"text,omitempty"`
	Created int64  `json:"created,omitempty"` // epoch milliseconds
	URL     string `json:"url,omitempty"`
	Author  *User  `json:"author,omitempty"`
}

// FieldValues holds the watched field values at one point in time
type FieldValues struct {
	State    *FieldSnapshot `json:"State"`
	Priority *FieldSnapshot `json:"Priority"`
	Assignee *User          `json:"Assignee"`
}

// IssueUpdate is the snapshot of a committed issue change as reported by the
// host. It carries current values, prior values and dirty flags of the
// watched fields.
type IssueUpdate struct {
	BaseURL       string      `json:"baseUrl,omitempty"`
	Permalink     string      `json:"permalink,omitempty"`
	Project       Project     `json:"project"`
	Issue         Issue       `json:"issue"`
	Fields        FieldValues `json:"fields"`
	OldFields     FieldValues `json:"oldFields"`
	ChangedFields []FieldName `json:"changedFields"`
	AddedComments []Comment   `json:"addedComments"`
	Updater       *User       `json:"updater"`
}

// Validate checks that the update identifies an issue. Changed fields outside
// WatchedFields are allowed and ignored by detection.
func (u *IssueUpdate) Validate() error {
	if u == nil {
		return goerr.New("issue update is nil")
	}
	if u.Issue.ID == "" && u.Issue.IDReadable == "" {
		return goerr.New("issue update has no issue id")
	}
	return nil
}

// IsDirty reports whether the host flagged the field as modified
func (u *IssueUpdate) IsDirty(field FieldName) bool {
	return slices.Contains(u.ChangedFields, field)
}

// PriorSnapshot returns the pre-update value of an enumerated field
func (u *IssueUpdate) PriorSnapshot(field FieldName) *FieldSnapshot {
	return u.OldFields.snapshot(field)
}

// PriorUser returns the pre-update value of a user field
func (u *IssueUpdate) PriorUser(field FieldName) *User {
	return u.OldFields.user(field)
}

// CurrentSnapshot returns the current value of an enumerated field
func (u *IssueUpdate) CurrentSnapshot(field FieldName) *FieldSnapshot {
	return u.Fields.snapshot(field)
}

// CurrentUser returns the current value of a user field
func (u *IssueUpdate) CurrentUser(field FieldName) *User {
	return u.Fields.user(field)
}

// LastAddedComment returns the most recently added comment, if any
func (u *IssueUpdate) LastAddedComment() *Comment {
	if len(u.AddedComments) == 0 {
		return nil
	}
	return &u.AddedComments[len(u.AddedComments)-1]
}

func (v FieldValues) snapshot(field FieldName) *FieldSnapshot {
	switch field {
	case FieldState:
		return v.State
	case FieldPriority:
		return v.Priority
	default:
		return nil
	}
}

func (v FieldValues) user(field FieldName) *User {
	if field == FieldAssignee {
		return v.Assignee
	}
	return nil
}
