package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/safe"
)

type notifyUseCase struct {
	detector   *Detector
	builder    *PayloadBuilder
	dispatcher interfaces.Dispatcher
}

// NewNotify creates a new instance of NotifyUseCase
func NewNotify(dispatcher interfaces.Dispatcher, directory interfaces.UserDirectory, opts ...Option) interfaces.NotifyUseCase {
	return &notifyUseCase{
		detector:   NewDetector(directory, opts...),
		builder:    NewPayloadBuilder(opts...),
		dispatcher: dispatcher,
	}
}

// ProcessUpdate runs detection, builds the payload and dispatches it when it
// carries at least one change
func (uc *notifyUseCase) ProcessUpdate(ctx context.Context, update *model.IssueUpdate) (*model.EventPayload, *model.Delivery, error) {
	if err := update.Validate(); err != nil {
		return nil, nil, goerr.Wrap(err, "invalid issue update")
	}

	logger := ctxlog.From(ctx).With(
		"issue", update.Issue.IDReadable,
		"project", update.Project.ShortName,
	)
	ctx = ctxlog.With(ctx, logger)

	changes := uc.detector.Detect(ctx, update, update)
	payload := uc.builder.Build(update, changes)

	if !payload.HasChanges() {
		logger.Debug("No reportable changes, skip dispatch")
		return payload, &model.Delivery{Outcome: model.DeliverySkipped}, nil
	}

	var delivery *model.Delivery
	safe.Run(ctx, func(ctx context.Context) error {
		delivery = uc.dispatcher.Dispatch(ctx, payload)
		return nil
	})
	if delivery == nil {
		delivery = &model.Delivery{Outcome: model.DeliveryFailed}
	}

	logger.Info("Processed issue update",
		"changes", payload.ChangedFields(),
		"delivery_id", delivery.ID,
		"outcome", delivery.Outcome,
	)

	return payload, delivery, nil
}
