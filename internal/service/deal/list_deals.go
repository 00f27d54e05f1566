package deal

import (
	"context"
	"fmt"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// ListDeals returns the visible subset of the pipeline: the full collection
// run through the filter, preserving the store's updated_at ordering.
// A zero-value filter returns everything.
func (s *Service) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	deals, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	return filter.Apply(deals), nil
}

// PipelineSummary computes metrics over the filtered pipeline. The same
// filter applied to ListDeals yields the subset the metrics describe.
func (s *Service) PipelineSummary(ctx context.Context, filter domain.DealFilter) (domain.PipelineMetrics, error) {
	deals, err := s.ListDeals(ctx, filter)
	if err != nil {
		return domain.PipelineMetrics{}, err
	}

	return domain.Summarize(deals), nil
}
