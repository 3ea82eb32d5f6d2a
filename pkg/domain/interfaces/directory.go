package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// UserDirectory resolves a login to a user record.
//
// The second return value is false when the user cannot be resolved for any
// reason, including backend errors; implementations never surface errors to
// the caller.
type UserDirectory interface {
	FindByLogin(ctx context.Context, login string) (*model.User, bool)
}
