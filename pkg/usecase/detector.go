package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// Detector compares prior and current values of the watched fields and
// produces change records in fixed order: State, Priority, Assignee, Comment.
type Detector struct {
	mode      model.EmissionMode
	directory interfaces.UserDirectory
	linker    *linker
}

type fieldDetector func(ctx context.Context, update *model.IssueUpdate, tracker interfaces.FieldTracker) (model.ChangeRecord, bool)

// NewDetector creates a Detector. directory resolves bare mentions in
// comments and may be nil.
func NewDetector(directory interfaces.UserDirectory, opts ...Option) *Detector {
	cfg := newOptions(opts...)
	return &Detector{
		mode:      cfg.mode,
		directory: directory,
		linker:    newLinker(cfg.baseURL),
	}
}

// Mode returns the emission mode of the detector
func (d *Detector) Mode() model.EmissionMode {
	return d.mode
}

// Detect returns the change records of an update. Current values are taken
// from update; dirty flags and prior values from tracker. In first-match
// mode detection stops at the first change.
func (d *Detector) Detect(ctx context.Context, update *model.IssueUpdate, tracker interfaces.FieldTracker) []model.ChangeRecord {
	detectors := []fieldDetector{
		d.detectSnapshot(model.FieldState),
		d.detectSnapshot(model.FieldPriority),
		d.detectAssignee,
		d.detectComment,
	}

	var changes []model.ChangeRecord
	for _, detect := range detectors {
		change, ok := detect(ctx, update, tracker)
		if !ok {
			continue
		}
		changes = append(changes, change)
		if d.mode == model.EmitFirstMatch {
			break
		}
	}

	ctxlog.From(ctx).Debug("Detected changes",
		"mode", d.mode,
		"count", len(changes),
	)
	return changes
}

// detectSnapshot reports an enumerated field only when it is dirty, its
// prior name is known and the name actually differs.
func (d *Detector) detectSnapshot(field model.FieldName) fieldDetector {
	return func(ctx context.Context, update *model.IssueUpdate, tracker interfaces.FieldTracker) (model.ChangeRecord, bool) {
		if !tracker.IsDirty(field) {
			return model.ChangeRecord{}, false
		}

		prior := tracker.PriorSnapshot(field)
		if prior == nil || prior.Name == nil {
			ctxlog.From(ctx).Debug("Ignoring change from unknown value", "field", field)
			return model.ChangeRecord{}, false
		}

		current := update.CurrentSnapshot(field)
		if current != nil && current.Name != nil && *current.Name == *prior.Name {
			return model.ChangeRecord{}, false
		}

		return model.NewSnapshotChange(field, prior.Clone(), current.Clone()), true
	}
}

// detectAssignee trusts the dirty flag
func (d *Detector) detectAssignee(_ context.Context, update *model.IssueUpdate, tracker interfaces.FieldTracker) (model.ChangeRecord, bool) {
	if !tracker.IsDirty(model.FieldAssignee) {
		return model.ChangeRecord{}, false
	}

	return model.NewAssigneeChange(
		model.Sanitize(tracker.PriorUser(model.FieldAssignee)),
		model.Sanitize(update.CurrentUser(model.FieldAssignee)),
	), true
}

func (d *Detector) detectComment(ctx context.Context, update *model.IssueUpdate, _ interfaces.FieldTracker) (model.ChangeRecord, bool) {
	comment := update.LastAddedComment()
	if comment == nil || comment.Text == "" {
		return model.ChangeRecord{}, false
	}

	value := &model.CommentValue{
		Text:       comment.Text,
		CommentURL: d.linker.commentURL(d.linker.issueURL(update), comment),
	}
	if mentions := ExtractMentions(ctx, comment.Text, d.directory); len(mentions) > 0 {
		value.MentionedUsers = mentions
	}
	if comment.Created != 0 {
		value.Timestamp = ptr(comment.Created)
	}

	return model.NewCommentChange(value), true
}
