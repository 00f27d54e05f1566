package deal

import (
	"context"
	"fmt"
	"log/slog"
)

// DeleteDeal removes a deal permanently. There is no soft delete; the id is
// never reused. Returns domain.ErrNotFound when the id does not match.
func (s *Service) DeleteDeal(ctx context.Context, input DeleteDealInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, input.DealID); err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}

	s.log.InfoContext(ctx, "deal deleted",
		slog.String("deal_id", input.DealID.String()),
	)

	return nil
}
