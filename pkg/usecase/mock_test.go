package usecase_test

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// MockDirectory is a mock implementation of UserDirectory
type MockDirectory struct {
	users       map[string]*model.User
	lookupCalls []string
}

func newMockDirectory(users ...*model.User) *MockDirectory {
	d := &MockDirectory{users: make(map[string]*model.User)}
	for _, u := range users {
		d.users[u.Login] = u
	}
	return d
}

func (m *MockDirectory) FindByLogin(ctx context.Context, login string) (*model.User, bool) {
	m.lookupCalls = append(m.lookupCalls, login)
	u, ok := m.users[login]
	return u, ok
}

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	dispatchFunc  func(ctx context.Context, payload *model.EventPayload) *model.Delivery
	dispatchCalls []*model.EventPayload
}

func (m *MockDispatcher) Dispatch(ctx context.Context, payload *model.EventPayload) *model.Delivery {
	m.dispatchCalls = append(m.dispatchCalls, payload)
	if m.dispatchFunc != nil {
		return m.dispatchFunc(ctx, payload)
	}
	return &model.Delivery{ID: "mock", Outcome: model.DeliveryDelivered, StatusCode: 200}
}
