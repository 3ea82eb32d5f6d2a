package webhook

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/errutil"
)

type writer struct {
	w io.Writer
}

// NewWriter creates a Dispatcher printing indented payloads to w instead of
// posting them. Used for dry runs.
func NewWriter(w io.Writer) interfaces.Dispatcher {
	return &writer{w: w}
}

func (x *writer) Dispatch(ctx context.Context, payload *model.EventPayload) *model.Delivery {
	delivery := &model.Delivery{
		ID:      uuid.NewString(),
		Outcome: model.DeliveryFailed,
	}
	start := time.Now()
	defer func() {
		delivery.Duration = time.Since(start)
	}()

	enc := json.NewEncoder(x.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to write payload"), "Webhook delivery failed",
			"delivery_id", delivery.ID,
		)
		return delivery
	}

	delivery.Outcome = model.DeliveryDelivered
	return delivery
}
