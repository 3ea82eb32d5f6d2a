package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// NotifyUseCase runs the change notification pipeline for one issue update
type NotifyUseCase interface {
	// ProcessUpdate detects changes, builds the event payload and dispatches it
	// when there is at least one change. Only invalid input is reported as an
	// error; delivery failures are absorbed.
	ProcessUpdate(ctx context.Context, update *model.IssueUpdate) (*model.EventPayload, *model.Delivery, error)
}
