package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout = 10 * time.Second

	// límite de body leído en respuestas
	maxBody = 1 << 20
)

// ErrCircuitOpen se devuelve sin llamar upstream mientras el breaker está abierto.
var ErrCircuitOpen = errors.New("httpclient: circuit open")

// Client envuelve *http.Client con helpers JSON y un circuit breaker opcional.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos

	breaker *gobreaker.CircuitBreaker[struct{}]
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper

	// Breaker: nombre vacío = sin breaker.
	BreakerName string
	// Fallos consecutivos para abrir (default 5).
	BreakerFailures uint32
	// Tiempo abierto antes de pasar a half-open (default 30s).
	BreakerCooldown time.Duration
}

// New crea un Client; BaseURL se valida si viene.
func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := opts.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	c := &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(base, "/")
	}

	if name := strings.TrimSpace(opts.BreakerName); name != "" {
		failures := opts.BreakerFailures
		if failures == 0 {
			failures = 5
		}
		cooldown := opts.BreakerCooldown
		if cooldown <= 0 {
			cooldown = 30 * time.Second
		}
		c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			// 4xx es culpa nuestra, no del upstream: no cuenta como fallo.
			IsSuccessful: func(err error) bool {
				var he *HTTPError
				if errors.As(err, &he) {
					return he.StatusCode < 500
				}
				return err == nil
			},
		})
	}

	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON hace un request JSON.
// - pathOrURL: URL absoluta o path relativo si BaseURL está seteado
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna error si status no es 2xx, o ErrCircuitOpen si el breaker cortó.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}
	if c.breaker == nil {
		return c.do(ctx, method, pathOrURL, headers, in, out)
	}

	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.do(ctx, method, pathOrURL, headers, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

// BreakerState devuelve "closed", "open", "half-open" o "" sin breaker.
func (c *Client) BreakerState() string {
	if c == nil || c.breaker == nil {
		return ""
	}
	return c.breaker.State().String()
}

func (c *Client) do(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		if c.BaseURL != "" {
			return c.BaseURL, nil
		}
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}
