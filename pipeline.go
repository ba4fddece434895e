package igclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hexathral/igclient/internal/wire"
)

// Page is one fetched slice of a paginated resource. NextCursor is an
// opaque continuation marker owned by the service; an empty NextCursor
// means the sequence is exhausted. The client never auto-paginates:
// composing pages across calls belongs to the caller.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// Every retrieval operation is the same three-stage composition: bind a
// request to the current session, execute it, hydrate the raw payload
// into a typed model. The stages below are shared by all ~25 endpoints;
// each concrete resource contributes only a request and a hydrator.

type hydrator[T any] func(body []byte) (T, error)

// fetchOne runs the pipeline for a single-object resource.
func fetchOne[T any](ctx context.Context, c *Client, req wire.Request, hydrate hydrator[T]) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrClientNotReady
	}

	token, err := c.ensureSession(ctx)
	if err != nil {
		return zero, err
	}

	httpReq, err := c.builder.Build(ctx, req, token)
	if err != nil {
		return zero, err
	}

	resp, err := c.transport.Do(ctx, httpReq)
	if err != nil {
		c.metricInc(MetricFetchFailure)
		return zero, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := classifyStatus(resp); err != nil {
		c.metricInc(MetricFetchFailure)
		return zero, err
	}

	out, err := hydrate(resp.Body)
	if err != nil {
		c.metricInc(MetricFetchFailure)
		return zero, err
	}
	c.metricInc(MetricFetchSuccess)
	return out, nil
}

// fetchPage runs the pipeline for a paginated resource.
func fetchPage[T any](ctx context.Context, c *Client, req wire.Request, hydrate hydrator[Page[T]]) (Page[T], error) {
	return fetchOne(ctx, c, req, hydrate)
}

// classifyStatus maps a completed exchange onto the error taxonomy. 404 is
// the one status carrying resource-level meaning; everything else outside
// 2xx is a transport-level failure.
func classifyStatus(resp *wire.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.OK():
		return nil
	default:
		return fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}
}
