package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/errutil"
)

const (
	// DefaultTimeout bounds connect and response time of a delivery
	DefaultTimeout = 2000 * time.Millisecond

	HeaderDelivery  = "X-Herald-Delivery"
	HeaderSignature = "X-Herald-Signature-256"
)

// HTTPClient is the subset of *http.Client used for delivery
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type config struct {
	timeout    time.Duration
	secret     string
	httpClient HTTPClient
}

// Option is a functional option for the webhook client
type Option func(*config)

// WithTimeout sets the delivery timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithSecret enables HMAC-SHA256 signing of the request body
func WithSecret(secret string) Option {
	return func(c *config) {
		c.secret = secret
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client HTTPClient) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

type client struct {
	url        string
	secret     string
	httpClient HTTPClient
}

// NewClient creates a Dispatcher posting payloads to url
func NewClient(url string, opts ...Option) (interfaces.Dispatcher, error) {
	if url == "" {
		return nil, goerr.New("webhook url is required")
	}

	cfg := &config{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &client{
		url:        url,
		secret:     cfg.secret,
		httpClient: cfg.httpClient,
	}, nil
}

// Dispatch posts payload to the endpoint exactly once. Every failure is
// logged here and reported in the returned Delivery.
func (c *client) Dispatch(ctx context.Context, payload *model.EventPayload) *model.Delivery {
	logger := ctxlog.From(ctx)
	delivery := &model.Delivery{
		ID:      uuid.NewString(),
		Outcome: model.DeliveryFailed,
	}
	start := time.Now()
	defer func() {
		delivery.Duration = time.Since(start)
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to marshal webhook payload"), "Webhook delivery failed",
			"delivery_id", delivery.ID,
		)
		return delivery
	}

	// Only the client timeout bounds delivery; cancellation of the trigger
	// must not abort it.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to create webhook request", goerr.V("url", c.url)), "Webhook delivery failed",
			"delivery_id", delivery.ID,
			"payload", string(body),
		)
		return delivery
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderDelivery, delivery.ID)
	if c.secret != "" {
		req.Header.Set(HeaderSignature, "sha256="+Sign(c.secret, body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to send webhook", goerr.V("url", c.url)), "Webhook delivery failed",
			"delivery_id", delivery.ID,
			"payload", string(body),
		)
		return delivery
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	delivery.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		delivery.Outcome = model.DeliveryRejected
		logger.Warn("Webhook failed",
			"delivery_id", delivery.ID,
			"status", resp.StatusCode,
			"payload", string(body),
		)
		return delivery
	}

	delivery.Outcome = model.DeliveryDelivered
	logger.Debug("Webhook delivered",
		"delivery_id", delivery.ID,
		"status", resp.StatusCode,
	)
	return delivery
}

// Sign returns the hex encoded HMAC-SHA256 of payload
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a "sha256=<hex>" signature header against payload
func VerifySignature(secret string, payload []byte, signature string) bool {
	if signature == "" {
		return false
	}
	signature = strings.TrimPrefix(signature, "sha256=")
	return hmac.Equal([]byte(signature), []byte(Sign(secret, payload)))
}
