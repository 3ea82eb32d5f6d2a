package model

// FieldName identifies a tracked issue field
type FieldName string

const (
	FieldState    FieldName = "State"
	FieldPriority FieldName = "Priority"
	FieldAssignee FieldName = "Assignee"
	FieldComment  FieldName = "Comment"
)

// WatchedFields are the fields the host must track for modification
var WatchedFields = []FieldName{FieldState, FieldPriority, FieldAssignee}

// FieldSnapshot is the value of an enumerated field at one point in time
type FieldSnapshot struct {
	Name         *string `json:"name"`
	Presentation *string `json:"presentation"`
}

// NewFieldSnapshot builds a snapshot; empty strings become nil
func NewFieldSnapshot(name, presentation string) *FieldSnapshot {
	return &FieldSnapshot{
		Name:         optional(name),
		Presentation: optional(presentation),
	}
}

// NameOrEmpty returns the snapshot name or an empty string if unknown
func (s *FieldSnapshot) NameOrEmpty() string {
	if s == nil || s.Name == nil {
		return ""
	}
	return *s.Name
}

// Clone returns an independent copy of the snapshot
func (s *FieldSnapshot) Clone() *FieldSnapshot {
	if s == nil {
		return nil
	}
	return &FieldSnapshot{
		Name:         cloneString(s.Name),
		Presentation: cloneString(s.Presentation),
	}
}

// FieldType is the host-side type of a required field
type FieldType string

const (
	FieldTypeEnum FieldType = "EnumField"
	FieldTypeUser FieldType = "User"
)

// FieldRequirement declares read access the host must grant for a field
type FieldRequirement struct {
	Type FieldType `json:"type"`
}

// Requirements lists the fields the host has to enable change tracking for
var Requirements = map[FieldName]FieldRequirement{
	FieldState:    {Type: FieldTypeEnum},
	FieldPriority: {Type: FieldTypeEnum},
	FieldAssignee: {Type: FieldTypeUser},
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
