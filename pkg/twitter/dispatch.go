package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/NethermindEth/twitterbot/pkg/debug"
	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/metrics"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// payload is the request body of a multipart upload. Other requests carry
// everything in the query string.
type payload struct {
	body        io.Reader
	contentType string
}

// call is the single entry point of every operation: credential check,
// URL building, signing and dispatch, in that order.
func (c *Client) call(ctx context.Context, operation string, method Method, base, path string, params url.Values, buildBody func() (*payload, error), out any) (err error) {
	start := time.Now()
	defer func() {
		c.observe(operation, start, err)
	}()

	token, err := c.credentials.ready()
	if err != nil {
		return err
	}

	rawURL, err := buildURL(base, path, params)
	if err != nil {
		return err
	}

	var body *payload
	if buildBody != nil {
		if body, err = buildBody(); err != nil {
			return err
		}
	}

	req, err := c.sign(method, rawURL, token)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return c.dispatch(ctx, operation, req, body, out)
}

func (c *Client) dispatch(ctx context.Context, operation string, sr *signedRequest, body *payload, out any) error {
	var reader io.Reader
	if body != nil {
		reader = body.body
	}

	req, err := http.NewRequestWithContext(ctx, sr.method.mustVerb(), sr.url, reader)
	if err != nil {
		return errors.Wrap(err, errors.TypeURL, "create request")
	}
	req.Header.Set("Authorization", sr.authorization)
	if body != nil && body.contentType != "" {
		req.Header.Set("Content-Type", body.contentType)
	}

	dumpRequest(req)

	slog.Debug("sending twitter request", "operation", operation, "method", sr.method.String(), "url", sr.url)
	resp, err := c.doer.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.TypeTransport, "send request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.TypeTransport, "read response body")
	}
	slog.Debug("received twitter response", "operation", operation, "status", resp.StatusCode, "bytes", len(data))
	if debug.IsDebugDumpRequests() {
		slog.Debug("response dump", "operation", operation, "body", string(data))
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := decode(data, &errResp); err != nil {
			return errors.Wrap(err, errors.TypeDecode, fmt.Sprintf("decode error response (status %d)", resp.StatusCode))
		}
		return newAPIError(resp.StatusCode, &errResp)
	}

	if err := decode(data, out); err != nil {
		return errors.Wrap(err, errors.TypeDecode, "decode response")
	}
	return nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	if val, ok := v.(interface{ validate() error }); ok {
		return val.validate()
	}
	return nil
}

func dumpRequest(req *http.Request) {
	if !debug.IsDebugDumpRequests() {
		return
	}

	r := req.Clone(req.Context())
	if !debug.IsDebugShowCredentials() {
		r.Header.Set("Authorization", "OAuth [redacted]")
	}
	dump, err := httputil.DumpRequest(r, false)
	if err != nil {
		slog.Debug("failed to dump request", "error", err)
		return
	}
	slog.Debug("request dump", "request", string(dump))
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	c.metrics.RecordLatency(operation, time.Since(start))
	c.metrics.IncrementCounter(metrics.MetricTwitterRequests)
	if err == nil {
		return
	}

	errType, ok := errors.TypeOf(err)
	if !ok {
		errType = "unknown"
	}
	c.metrics.IncrementCounter(metrics.MetricTwitterErrors + "_" + string(errType))
}
