package deal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// UpdateDeal validates the patch and merges it over the stored record.
// Returns domain.ErrNotFound when the id does not match an existing deal.
// Stage transitions are unrestricted: any stage may move to any other.
func (s *Service) UpdateDeal(ctx context.Context, input UpdateDealInput) (*domain.Deal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, input.DealID, input.Patch)
	if err != nil {
		return nil, fmt.Errorf("update deal: %w", err)
	}

	s.log.InfoContext(ctx, "deal updated",
		slog.String("deal_id", updated.ID.String()),
		slog.String("stage", updated.Stage.String()),
	)

	return updated, nil
}
