package model

// ProjectRef identifies the project of the updated issue
type ProjectRef struct {
	Name         *string `json:"name"`
	Presentation *string `json:"presentation"`
}

// IssueRef describes the current state of the updated issue. Every field is
// always encoded, with null standing in for unknown values.
type IssueRef struct {
	IDReadable *string        `json:"idReadable"`
	Summary    string         `json:"summary"`
	URL        *string        `json:"url"`
	State      *FieldSnapshot `json:"state"`
	Priority   *FieldSnapshot `json:"priority"`
	Assignee   *UserRef       `json:"assignee"`
}

// EventPayload is the JSON document delivered to the webhook endpoint
type EventPayload struct {
	Project ProjectRef     `json:"project"`
	Issue   IssueRef       `json:"issue"`
	Updater *UserRef       `json:"updater"`
	Changes []ChangeRecord `json:"changes"`
}

// HasChanges reports whether the payload is worth dispatching
func (p *EventPayload) HasChanges() bool {
	return p != nil && len(p.Changes) > 0
}

// ChangedFields returns the fields of all change records in order
func (p *EventPayload) ChangedFields() []FieldName {
	if p == nil {
		return nil
	}
	fields := make([]FieldName, 0, len(p.Changes))
	for _, c := range p.Changes {
		fields = append(fields, c.Field)
	}
	return fields
}
