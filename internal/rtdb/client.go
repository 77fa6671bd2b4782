// Package rtdb streams review snapshots from a Firebase-style hosted
// realtime database over its REST event-stream protocol.
//
// The database pushes the entire collection on every change - there is
// no incremental payload. Subscribe delivers each full snapshot to a
// callback; the caller replaces its in-memory state wholesale.
package rtdb

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielschneider22/bookreports/internal/logging"
	"github.com/danielschneider22/bookreports/internal/review"
)

// Subscriber is the push-based data source the application consumes.
// Implementations invoke fn with the full collection value on every
// change, blocking until ctx is cancelled. The core pipeline only ever
// sees this interface, so tests substitute an in-memory fake.
type Subscriber interface {
	Subscribe(ctx context.Context, path string, fn func(review.Collection)) error
}

// maxSnapshotBytes caps a single event-stream frame. Snapshots are a
// whole community's reviews, so the default scanner buffer is too small.
const maxSnapshotBytes = 8 << 20

// Client reads from a realtime database over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the database at baseURL
// (e.g. "https://bookreports-default-rtdb.firebaseio.com").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client timeout: the streaming connection is long-lived.
		// Connects are bounded by the request context instead.
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Get reads the current value at path once.
// A null payload decodes to an empty collection.
func (c *Client) Get(ctx context.Context, path string) (review.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("read %s: unexpected status %s", path, resp.Status)
	}

	var col review.Collection
	if err := json.NewDecoder(resp.Body).Decode(&col); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return col, nil
}

// Subscribe opens a long-lived event stream on path and invokes fn
// with the full collection on every remote change. It reconnects on
// stream errors (rate limited) and returns only when ctx is cancelled.
func (c *Client) Subscribe(ctx context.Context, path string, fn func(review.Collection)) error {
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		err := c.stream(ctx, path, fn)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn("stream disconnected, reconnecting", "path", path, "error", err)
	}
}

// stream runs one streaming connection until it fails or ctx ends.
func (c *Client) stream(ctx context.Context, path string, fn func(review.Collection)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connect %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connect %s: unexpected status %s", path, resp.Status)
	}

	return readEvents(resp.Body, func(event, data string) error {
		return c.handleEvent(ctx, path, event, data, fn)
	})
}

// handleEvent dispatches one server event. A put at the subscription
// root carries the full collection and is delivered directly; a patch
// or a nested put means the server sent a partial update, so the full
// value is re-read to preserve full-replace semantics.
func (c *Client) handleEvent(ctx context.Context, path, event, data string, fn func(review.Collection)) error {
	switch event {
	case "put", "patch":
		var payload struct {
			Path string          `json:"path"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return fmt.Errorf("decode %s event: %w", event, err)
		}

		if event == "put" && payload.Path == "/" {
			var col review.Collection
			if err := json.Unmarshal(payload.Data, &col); err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}
			fn(col)
			return nil
		}

		col, err := c.Get(ctx, path)
		if err != nil {
			return fmt.Errorf("re-read after %s: %w", event, err)
		}
		fn(col)
		return nil

	case "keep-alive":
		return nil

	case "cancel", "auth_revoked":
		return fmt.Errorf("server closed stream: %s", event)
	}

	logging.Debug("ignoring unknown stream event", "event", event)
	return nil
}

// readEvents parses text/event-stream frames and calls handle for each
// complete event. It returns when the stream ends or handle fails.
func readEvents(r io.Reader, handle func(event, data string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxSnapshotBytes)

	var event string
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Blank line terminates a frame.
			if event != "" || data.Len() > 0 {
				if err := handle(event, data.String()); err != nil {
					return err
				}
			}
			event = ""
			data.Reset()

		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))

		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
		// Comment lines and unknown fields are ignored.
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return io.EOF
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path + ".json"
}
