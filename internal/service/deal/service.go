// Package deal implements the deal pipeline service: validation and
// orchestration over a pluggable record store.
package deal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// Store is the deal persistence contract. Both the PostgreSQL repository and
// the local file store implement it; the service is agnostic to which is
// active.
type Store interface {
	// List returns every deal ordered by updated_at descending.
	List(ctx context.Context) ([]domain.Deal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	// Create persists a new deal. The store generates the id and stamps both
	// timestamps; any caller-supplied values for them are ignored.
	Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	// Update merges the patch over the stored record and re-stamps
	// updated_at. Returns domain.ErrNotFound for an unknown id.
	Update(ctx context.Context, id uuid.UUID, patch domain.DealPatch) (*domain.Deal, error)
	// Delete removes the record permanently. Returns domain.ErrNotFound for
	// an unknown id.
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// Service provides deal management operations.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a new deal service.
func NewService(log *slog.Logger, store Store) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "deal"),
	}
}
