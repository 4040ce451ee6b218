package categorizer

import (
	"context"
	"testing"
	"time"

	"fjacquet/xact-rollup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineProbe records whether the context it received carried a deadline.
type deadlineProbe struct {
	hadDeadline bool
	suggestion  string
}

func (p *deadlineProbe) SuggestCategory(ctx context.Context, item models.LineItem) (string, error) {
	_, p.hadDeadline = ctx.Deadline()
	return p.suggestion, nil
}

// blockingClient waits for its context to be cancelled.
type blockingClient struct{}

func (b *blockingClient) SuggestCategory(ctx context.Context, item models.LineItem) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestTimeoutClientAddsDeadline(t *testing.T) {
	probe := &deadlineProbe{suggestion: models.CategoryPainting}
	client := NewTimeoutClient(probe, 30*time.Second)

	suggestion, err := client.SuggestCategory(context.Background(), models.LineItem{Description: "Paint walls"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPainting, suggestion)
	assert.True(t, probe.hadDeadline)
}

func TestTimeoutClientZeroTimeoutPassesThrough(t *testing.T) {
	probe := &deadlineProbe{suggestion: models.CategoryCleaning}
	client := NewTimeoutClient(probe, 0)

	suggestion, err := client.SuggestCategory(context.Background(), models.LineItem{Description: "Clean carpet"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCleaning, suggestion)
	assert.False(t, probe.hadDeadline)
}

func TestTimeoutClientCancelsSlowRequests(t *testing.T) {
	client := NewTimeoutClient(&blockingClient{}, 10*time.Millisecond)

	start := time.Now()
	_, err := client.SuggestCategory(context.Background(), models.LineItem{Description: "Hang drywall"})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 5*time.Second)
}
