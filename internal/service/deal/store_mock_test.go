package deal

import (
	"context"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// storeMock is a func-field test double for the Store interface.
type storeMock struct {
	ListFunc    func(ctx context.Context) ([]domain.Deal, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	CreateFunc  func(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, patch domain.DealPatch) (*domain.Deal, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *storeMock) List(ctx context.Context) ([]domain.Deal, error) {
	return m.ListFunc(ctx)
}

func (m *storeMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *storeMock) Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	m.createCalls++
	return m.CreateFunc(ctx, d)
}

func (m *storeMock) Update(ctx context.Context, id uuid.UUID, patch domain.DealPatch) (*domain.Deal, error) {
	m.updateCalls++
	return m.UpdateFunc(ctx, id, patch)
}

func (m *storeMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, id)
}

func (m *storeMock) Ping(ctx context.Context) error { return nil }
