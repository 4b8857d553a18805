package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/platform/httpclient"
	"medication-adherence/internal/ports/notify"
)

// SecretHeader lleva el secreto compartido con el receptor.
const SecretHeader = "X-Webhook-Secret"

type Config struct {
	URL     string
	Secret  string
	Timeout time.Duration // <= 0 usa 5s

	// Transport solo para tests.
	Transport http.RoundTripper
}

// Dispatcher publica cada evento como un POST JSON a URL.
// Un breaker evita seguir golpeando a un receptor caído.
type Dispatcher struct {
	client *httpclient.Client
	url    string
	secret string
}

var _ notify.Dispatcher = (*Dispatcher)(nil)

func New(cfg Config) (*Dispatcher, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("webhook url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c, err := httpclient.New(httpclient.Options{
		Timeout:     timeout,
		Transport:   cfg.Transport,
		BreakerName: "notify-webhook",
	})
	if err != nil {
		return nil, err
	}
	return &Dispatcher{client: c, url: url, secret: cfg.Secret}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, e notify.Event) error {
	headers := map[string]string{"X-Event-Type": string(e.Type)}
	if d.secret != "" {
		headers[SecretHeader] = d.secret
	}
	if err := d.client.DoJSON(ctx, http.MethodPost, d.url, headers, e, nil); err != nil {
		return fmt.Errorf("webhook %s: %w", e.Type, err)
	}
	return nil
}

// State expone el estado del breaker (closed, half-open, open).
func (d *Dispatcher) State() string {
	return d.client.BreakerState()
}
