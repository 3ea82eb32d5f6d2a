package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/infra/webhook"
)

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	dispatcher := webhook.NewWriter(&buf)

	payload := &model.EventPayload{
		Project: model.ProjectRef{Name: strPtr("Demo")},
		Issue:   model.IssueRef{Summary: "Crash on save"},
		Changes: []model.ChangeRecord{
			model.NewSnapshotChange(model.FieldState, nil, model.NewFieldSnapshot("Open", "Open")),
		},
	}

	delivery := dispatcher.Dispatch(context.Background(), payload)
	gt.True(t, delivery.IsSuccess())
	gt.Value(t, delivery.ID).NotEqual("")

	var decoded map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	changes, ok := decoded["changes"].([]any)
	gt.True(t, ok)
	gt.Value(t, len(changes)).Equal(1)
}

func TestWriter_DispatchWriteError(t *testing.T) {
	dispatcher := webhook.NewWriter(brokenWriter{})
	delivery := dispatcher.Dispatch(context.Background(), &model.EventPayload{Changes: []model.ChangeRecord{}})
	gt.False(t, delivery.IsSuccess())
	gt.Value(t, delivery.Outcome).Equal(model.DeliveryFailed)
}
