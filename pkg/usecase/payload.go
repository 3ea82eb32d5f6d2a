package usecase

import (
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// PayloadBuilder assembles the event payload for an update
type PayloadBuilder struct {
	linker *linker
}

// NewPayloadBuilder creates a PayloadBuilder
func NewPayloadBuilder(opts ...Option) *PayloadBuilder {
	cfg := newOptions(opts...)
	return &PayloadBuilder{
		linker: newLinker(cfg.baseURL),
	}
}

// Build creates the payload for update with the given changes. It does not
// suppress payloads without changes; callers decide whether to dispatch.
func (b *PayloadBuilder) Build(update *model.IssueUpdate, changes []model.ChangeRecord) *model.EventPayload {
	if changes == nil {
		changes = []model.ChangeRecord{}
	}

	return &model.EventPayload{
		Project: buildProject(update.Project),
		Issue: model.IssueRef{
			IDReadable: optionalString(update.Issue.IDReadable),
			Summary:    update.Issue.Summary,
			URL:        b.linker.issueURL(update),
			State:      update.Fields.State.Clone(),
			Priority:   update.Fields.Priority.Clone(),
			Assignee:   model.Sanitize(update.Fields.Assignee),
		},
		Updater: model.Sanitize(update.Updater),
		Changes: changes,
	}
}

func buildProject(p model.Project) model.ProjectRef {
	name := p.Name
	if name == "" {
		name = p.ShortName
	}
	presentation := p.Presentation
	if presentation == "" {
		presentation = name
	}
	return model.ProjectRef{
		Name:         optionalString(name),
		Presentation: optionalString(presentation),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return ptr(s)
}
