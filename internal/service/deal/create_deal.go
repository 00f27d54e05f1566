package deal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// CreateDeal validates the input and persists a new deal. The store assigns
// the id and stamps createdAt/updatedAt.
func (s *Service) CreateDeal(ctx context.Context, input CreateDealInput) (*domain.Deal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, input.toDeal())
	if err != nil {
		return nil, fmt.Errorf("create deal: %w", err)
	}

	s.log.InfoContext(ctx, "deal created",
		slog.String("deal_id", created.ID.String()),
		slog.String("stage", created.Stage.String()),
		slog.Float64("expected_value", created.ExpectedValue),
	)

	return created, nil
}
