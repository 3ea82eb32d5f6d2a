package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// Dispatcher delivers an event payload to the webhook endpoint. It makes a
// single attempt and absorbs every failure; the returned Delivery is for
// observability only.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload *model.EventPayload) *model.Delivery
}
