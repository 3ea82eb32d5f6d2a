package model

// CommentValue is the new value of a Comment change
type CommentValue struct {
	Text           string    `json:"text"`
	MentionedUsers []UserRef `json:"mentionedUsers"` // nil when nobody is mentioned, never empty
	Timestamp      *int64    `json:"timestamp"`
	CommentURL     *string   `json:"commentUrl"`
}

// ChangeRecord describes a single field-level change.
//
// OldValue and NewValue hold *FieldSnapshot for State and Priority, *UserRef
// for Assignee and *CommentValue (new side only) for Comment. A nil pointer is
// encoded as JSON null.
type ChangeRecord struct {
	Field    FieldName `json:"field"`
	OldValue any       `json:"oldValue"`
	NewValue any       `json:"newValue"`
}

// NewSnapshotChange builds a change record for an enumerated field
func NewSnapshotChange(field FieldName, oldValue, newValue *FieldSnapshot) ChangeRecord {
	return ChangeRecord{
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
}

// NewAssigneeChange builds a change record for the Assignee field
func NewAssigneeChange(oldValue, newValue *UserRef) ChangeRecord {
	return ChangeRecord{
		Field:    FieldAssignee,
		OldValue: oldValue,
		NewValue: newValue,
	}
}

// NewCommentChange builds a change record for an added comment. Comments are
// always additions, so the old value is nil.
func NewCommentChange(value *CommentValue) ChangeRecord {
	return ChangeRecord{
		Field:    FieldComment,
		OldValue: nil,
		NewValue: value,
	}
}

// EmissionMode controls how many change records a detection run reports
type EmissionMode string

const (
	// EmitAccumulateAll reports every detected change
	EmitAccumulateAll EmissionMode = "accumulate-all"
	// EmitFirstMatch reports only the first detected change in field order
	EmitFirstMatch EmissionMode = "first-match"
)

// IsValid reports whether the mode is known
func (m EmissionMode) IsValid() bool {
	switch m {
	case EmitAccumulateAll, EmitFirstMatch:
		return true
	default:
		return false
	}
}
