package tinxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
)

// Default transport parameters, used when the config supplies zero values.
const (
	defaultMinInterval = 500 * time.Millisecond
	defaultTimeout     = 15 * time.Second

	// maxResponseBody caps how much of a vendor response is read into
	// memory. Vendor payloads are small JSON documents; anything larger
	// is treated as malformed.
	maxResponseBody = 1 << 20 // 1 MiB
)

// Response is the outcome of a successful (2xx) vendor call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport issues HTTP calls to the Tinxy cloud with enforced minimum
// spacing between calls.
//
// The throttle is a single-slot gate, not a token bucket: all calls
// serialise through one mutex, and each call waits until the configured
// interval has elapsed since the previous call completed. The effective
// rate is therefore at most one call per interval globally, across all
// devices and channels. There are no automatic retries at this layer.
//
// Thread Safety: Do is safe for concurrent use; concurrent callers are
// serialised through the throttle.
type Transport struct {
	httpClient  *http.Client
	minInterval time.Duration
	timeout     time.Duration
	logger      *logging.Logger

	mu   sync.Mutex
	last time.Time // completion time of the previous call
}

// NewTransport creates a rate-limited transport.
//
// Parameters:
//   - minInterval: minimum spacing between calls (0 applies the 500ms default)
//   - timeout: per-request timeout (0 applies the 15s default)
//   - logger: structured logger for call diagnostics
//
// Returns:
//   - *Transport: ready for use
func NewTransport(minInterval, timeout time.Duration, logger *logging.Logger) *Transport {
	if minInterval <= 0 {
		minInterval = defaultMinInterval
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{
		httpClient:  &http.Client{Timeout: timeout},
		minInterval: minInterval,
		timeout:     timeout,
		logger:      logger,
	}
}

// Do executes a single HTTP call against the vendor API.
//
// The caller blocks until the throttle slot is free, then for the
// duration of the network call. Failures are classified into the
// package error taxonomy:
//   - timeout → ErrTimeout
//   - network-level failure → ErrConnectionFailed
//   - non-2xx response → *HTTPError (not retried)
//
// Parameters:
//   - ctx: Context for cancellation; the per-request timeout is applied on top
//   - method: HTTP method
//   - url: absolute request URL
//   - headers: extra headers (may be nil)
//   - body: request body (may be nil)
//
// Returns:
//   - *Response: status code and body for 2xx responses
//   - error: classified failure otherwise
func (t *Transport) Do(ctx context.Context, method, url string, headers http.Header, body []byte) (*Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.waitForSlot(ctx); err != nil {
		return nil, err
	}

	resp, err := t.execute(ctx, method, url, headers, body)

	// The spacing clock starts when the call completes, success or not.
	t.last = time.Now()

	return resp, err
}

// waitForSlot blocks until minInterval has elapsed since the previous
// call completed. Must be called with t.mu held.
func (t *Transport) waitForSlot(ctx context.Context) error {
	if t.last.IsZero() {
		return nil
	}

	wait := t.minInterval - time.Since(t.last)
	if wait <= 0 {
		return nil
	}

	t.logger.Debug("throttling vendor call", "wait_ms", wait.Milliseconds())

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrConnectionFailed, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// execute performs one HTTP round trip and classifies the outcome.
func (t *Transport) execute(ctx context.Context, method, url string, headers http.Header, body []byte) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, classifyNetworkError(err)
	}

	t.logger.Debug("vendor call completed",
		"method", method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// classifyNetworkError maps a transport failure onto the package error
// taxonomy: timeouts become ErrTimeout, everything else at the network
// level becomes ErrConnectionFailed.
func classifyNetworkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
}
