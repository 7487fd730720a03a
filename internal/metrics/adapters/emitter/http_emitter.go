package emitter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
)

type HTTPConfig struct {
	Endpoint      string
	AuthToken     string
	Timeout       time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
}

// HTTPEmitter PUTs points to the collector as [[name, value, hint]].
// Transport errors and 5xx answers are retried with a constant backoff;
// other 4xx answers fail at once.
type HTTPEmitter struct {
	cfg    HTTPConfig
	client *http.Client
}

var _ ports.EmitterPort = (*HTTPEmitter)(nil)

func NewHTTPEmitter(cfg HTTPConfig, client *http.Client) *HTTPEmitter {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 200 * time.Millisecond
	}
	return &HTTPEmitter{cfg: cfg, client: client}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status code error: %d %s", e.code, e.body)
}

func (e *HTTPEmitter) Emit(ctx context.Context, name string, value domain.Value, hint domain.AggregationHint) domain.Delivery {
	d := domain.Delivery{Name: name, Value: value, Hint: hint}

	payload, err := sonic.Marshal([][]any{{name, value, hint}})
	if err != nil {
		d.Error = fmt.Sprintf("encode metric: %v", err)
		return d
	}

	err = backoff.Retry(
		func() error {
			code, err := e.put(ctx, payload)
			d.StatusCode = code
			if err == nil {
				return nil
			}

			var se *statusError
			if errors.As(err, &se) && se.code < http.StatusInternalServerError && se.code != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(e.cfg.RetryInterval), e.cfg.MaxRetries),
			ctx,
		),
	)
	if err != nil {
		d.Error = err.Error()
		return d
	}

	d.Delivered = true
	return d
}

func (e *HTTPEmitter) put(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.AuthToken)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, &statusError{code: resp.StatusCode, body: string(bytes.TrimSpace(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
