package config

import (
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/infra/webhook"
	"github.com/urfave/cli/v3"
)

// Webhook holds outbound webhook configuration
type Webhook struct {
	URL     string
	Timeout time.Duration
	Secret  string
	Mode    string
	BaseURL string
}

// Flags returns CLI flags for webhook configuration
func (c *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Endpoint receiving change notifications",
			Destination: &c.URL,
			Sources:     cli.EnvVars("HERALD_WEBHOOK_URL"),
		},
		&cli.DurationFlag{
			Name:        "webhook-timeout",
			Usage:       "Connect and response timeout of a delivery",
			Value:       webhook.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("HERALD_WEBHOOK_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "Secret to sign deliveries with X-Herald-Signature-256 (disabled if empty)",
			Destination: &c.Secret,
			Sources:     cli.EnvVars("HERALD_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "emission-mode",
			Usage:       "Changes reported per update (accumulate-all, first-match)",
			Value:       string(model.EmitAccumulateAll),
			Destination: &c.Mode,
			Sources:     cli.EnvVars("HERALD_EMISSION_MODE"),
		},
		&cli.StringFlag{
			Name:        "issue-base-url",
			Usage:       "Base URL for issue links when the update carries none",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("HERALD_ISSUE_BASE_URL"),
		},
	}
}

// EmissionMode returns the configured emission mode
func (c *Webhook) EmissionMode() model.EmissionMode {
	return model.EmissionMode(c.Mode)
}

// Validate checks the webhook configuration
func (c *Webhook) Validate() error {
	if c.URL == "" {
		return goerr.New("webhook url is required")
	}
	if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return goerr.New("invalid webhook url", goerr.V("url", c.URL))
	}
	if c.Timeout <= 0 {
		return goerr.New("webhook timeout must be positive", goerr.V("timeout", c.Timeout))
	}
	if !c.EmissionMode().IsValid() {
		return goerr.New("invalid emission mode", goerr.V("mode", c.Mode))
	}
	return nil
}

// NewDispatcher creates the webhook dispatcher
func (c *Webhook) NewDispatcher() (interfaces.Dispatcher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return webhook.NewClient(c.URL,
		webhook.WithTimeout(c.Timeout),
		webhook.WithSecret(c.Secret),
	)
}
