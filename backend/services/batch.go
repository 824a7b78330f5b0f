// ABOUTME: Concurrent evaluation of independent sizing requests
// ABOUTME: Fans out with a bounded errgroup and keeps results in request order

package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// ErrBatchTooLarge is returned when a batch exceeds the configured item limit
var ErrBatchTooLarge = fmt.Errorf("%w: batch too large", models.ErrInvalidInput)

// BatchSizer evaluates many sizing requests concurrently
type BatchSizer struct {
	service     *SizingService
	maxItems    int
	concurrency int
}

// NewBatchSizer creates a batch sizer. Non-positive limits fall back to 100 items
// and 4 workers.
func NewBatchSizer(service *SizingService, maxItems, concurrency int) *BatchSizer {
	if maxItems <= 0 {
		maxItems = 100
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchSizer{service: service, maxItems: maxItems, concurrency: concurrency}
}

// Size computes every item. Per-item failures are reported in the item's result and
// do not stop the batch; only cancellation of ctx aborts it.
func (b *BatchSizer) Size(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	if len(req.Items) > b.maxItems {
		return models.BatchResponse{}, fmt.Errorf("%w: %d items exceeds limit of %d", ErrBatchTooLarge, len(req.Items), b.maxItems)
	}

	results := make([]models.BatchItemResult, len(req.Items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, item := range req.Items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := models.BatchItemResult{Index: i}
			resp, err := b.service.Size(item)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Response = &resp
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.BatchResponse{}, err
	}

	out := models.BatchResponse{Results: results}
	for _, r := range results {
		if r.Error != "" {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	return out, nil
}
