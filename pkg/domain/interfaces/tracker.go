package interfaces

import "github.com/m-mizutani/herald/pkg/domain/model"

// FieldTracker exposes the host's knowledge about one update: which watched
// fields were touched and what they held before. model.IssueUpdate
// implements it.
type FieldTracker interface {
	IsDirty(field model.FieldName) bool
	PriorSnapshot(field model.FieldName) *model.FieldSnapshot
	PriorUser(field model.FieldName) *model.User
}
