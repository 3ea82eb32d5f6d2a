package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/infra/webhook"
)

func newPayload() *model.EventPayload {
	return &model.EventPayload{
		Project: model.ProjectRef{Name: strPtr("Demo")},
		Issue:   model.IssueRef{IDReadable: strPtr("DEMO-1"), Summary: "Test"},
		Changes: []model.ChangeRecord{
			model.NewSnapshotChange(model.FieldState, model.NewFieldSnapshot("Open", "Open"), model.NewFieldSnapshot("Closed", "Closed")),
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func newLogContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.With(context.Background(), logger)
}

func TestClient_Dispatch_Success(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotDelivery    string
		gotBody        []byte
		calls          int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotDelivery = r.Header.Get(webhook.HeaderDelivery)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := webhook.NewClient(server.URL)
	gt.NoError(t, err)

	delivery := client.Dispatch(context.Background(), newPayload())

	gt.True(t, delivery.IsSuccess())
	gt.Number(t, delivery.StatusCode).Equal(http.StatusOK)
	gt.Number(t, calls).Equal(1)
	gt.Value(t, gotMethod).Equal(http.MethodPost)
	gt.Value(t, gotContentType).Equal("application/json")
	gt.Value(t, gotDelivery).Equal(delivery.ID)

	var decoded model.EventPayload
	gt.NoError(t, json.Unmarshal(gotBody, &decoded))
	gt.Value(t, *decoded.Issue.IDReadable).Equal("DEMO-1")
	gt.Number(t, len(decoded.Changes)).Equal(1)
}

func TestClient_Dispatch_NonSuccessStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var buf bytes.Buffer
	ctx := newLogContext(&buf)

	client, err := webhook.NewClient(server.URL)
	gt.NoError(t, err)

	delivery := client.Dispatch(ctx, newPayload())

	gt.Value(t, delivery.Outcome).Equal(model.DeliveryRejected)
	gt.Number(t, delivery.StatusCode).Equal(http.StatusServiceUnavailable)
	// no retry
	gt.Number(t, calls).Equal(1)
	gt.True(t, strings.Contains(buf.String(), "level=WARN"))
	gt.True(t, strings.Contains(buf.String(), "status=503"))
	gt.True(t, strings.Contains(buf.String(), "DEMO-1"))
}

func TestClient_Dispatch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf bytes.Buffer
	ctx := newLogContext(&buf)

	client, err := webhook.NewClient(url)
	gt.NoError(t, err)

	delivery := client.Dispatch(ctx, newPayload())

	gt.Value(t, delivery.Outcome).Equal(model.DeliveryFailed)
	gt.Number(t, delivery.StatusCode).Equal(0)
	gt.True(t, strings.Contains(buf.String(), "level=ERROR"))
	gt.True(t, strings.Contains(buf.String(), "Webhook delivery failed"))
}

func TestClient_Dispatch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := webhook.NewClient(server.URL, webhook.WithTimeout(50*time.Millisecond))
	gt.NoError(t, err)

	start := time.Now()
	delivery := client.Dispatch(context.Background(), newPayload())

	gt.Value(t, delivery.Outcome).Equal(model.DeliveryFailed)
	gt.True(t, time.Since(start) < time.Second)
}

func TestClient_Dispatch_OutlivesCallerContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := webhook.NewClient(server.URL)
	gt.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	delivery := client.Dispatch(ctx, newPayload())
	gt.Value(t, delivery.Outcome).Equal(model.DeliveryDelivered)
	gt.Number(t, delivery.StatusCode).Equal(http.StatusOK)
}

func TestClient_Dispatch_SerializationError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client, err := webhook.NewClient(server.URL)
	gt.NoError(t, err)

	payload := newPayload()
	payload.Changes[0].NewValue = func() {}

	delivery := client.Dispatch(context.Background(), payload)

	gt.Value(t, delivery.Outcome).Equal(model.DeliveryFailed)
	gt.Number(t, calls).Equal(0)
}

func TestClient_Dispatch_Signature(t *testing.T) {
	secret := "test-secret"
	verified := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		verified = webhook.VerifySignature(secret, body, r.Header.Get(webhook.HeaderSignature))
	}))
	defer server.Close()

	client, err := webhook.NewClient(server.URL, webhook.WithSecret(secret))
	gt.NoError(t, err)

	delivery := client.Dispatch(context.Background(), newPayload())

	gt.True(t, delivery.IsSuccess())
	gt.True(t, verified)
}

func TestNewClient_EmptyURL(t *testing.T) {
	_, err := webhook.NewClient("")
	gt.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"changes":[]}`)
	secret := "s3cr3t"

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{name: "with prefix", signature: "sha256=" + webhook.Sign(secret, payload), want: true},
		{name: "without prefix", signature: webhook.Sign(secret, payload), want: true},
		{name: "wrong secret", signature: "sha256=" + webhook.Sign("other", payload), want: false},
		{name: "empty", signature: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, webhook.VerifySignature(secret, payload, tt.signature)).Equal(tt.want)
		})
	}
}
