package categorizer

import (
	"context"
	"time"

	"fjacquet/xact-rollup/internal/models"
)

// TimeoutClient wraps an AIClient with a per-request deadline so a slow
// suggestion service cannot stall batch processing. A zero or negative
// timeout disables the deadline.
type TimeoutClient struct {
	client  AIClient
	timeout time.Duration
}

// NewTimeoutClient creates a TimeoutClient around the given client.
func NewTimeoutClient(client AIClient, timeout time.Duration) *TimeoutClient {
	return &TimeoutClient{
		client:  client,
		timeout: timeout,
	}
}

// SuggestCategory implements AIClient with a bounded request duration.
func (t *TimeoutClient) SuggestCategory(ctx context.Context, item models.LineItem) (string, error) {
	if t.timeout <= 0 {
		return t.client.SuggestCategory(ctx, item)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.client.SuggestCategory(ctx, item)
}
