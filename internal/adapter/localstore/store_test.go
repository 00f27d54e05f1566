package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismcrm/prism-backend/internal/adapter/localstore"
	"github.com/prismcrm/prism-backend/internal/domain"
)

func newStore(t *testing.T) (*localstore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deals.json")
	s, err := localstore.New(path)
	require.NoError(t, err)
	return s, path
}

func strptr(s string) *string { return &s }

func TestNew_SeedsMissingFile(t *testing.T) {
	s, path := newStore(t)

	deals, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, deals, 4)

	_, err = os.Stat(path)
	require.NoError(t, err, "seed must be persisted immediately")
}

func TestNew_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	s, err := localstore.New(path)
	require.NoError(t, err)

	deals, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deals, "an existing file must not be re-seeded")
}

func TestNew_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := localstore.New(path)
	require.Error(t, err)
}

func TestStore_CreateRoundTrip(t *testing.T) {
	s, path := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Deal{
		Title:            "Platform Migration",
		CompanyName:      strptr("Omega GmbH"),
		Stage:            domain.StageContacted,
		Tags:             []string{"migration"},
		Priority:         domain.PriorityMedium,
		ExpectedValue:    18000,
		CloseProbability: 35,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// A fresh store over the same file must see the record.
	reopened, err := localstore.New(path)
	require.NoError(t, err)
	got, err := reopened.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform Migration", got.Title)
	assert.Equal(t, []string{"migration"}, got.Tags)
	require.NotNil(t, got.CompanyName)
	assert.Equal(t, "Omega GmbH", *got.CompanyName)
}

func TestStore_ListOrdersByUpdatedAtDesc(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Deal{
		Title:    "Freshest",
		Stage:    domain.StageLead,
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	deals, err := s.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, deals)
	assert.Equal(t, created.ID, deals[0].ID)
	for i := 1; i < len(deals); i++ {
		assert.False(t, deals[i].UpdatedAt.After(deals[i-1].UpdatedAt))
	}
}

func TestStore_UpdateMergesAndRestamps(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Deal{
		Title:            "Renewal - Zeta",
		PersonName:       strptr("Zoe Park"),
		Notes:            strptr("initial call done"),
		Stage:            domain.StageActiveConvo,
		Priority:         domain.PriorityHigh,
		ExpectedValue:    9000,
		CloseProbability: 50,
	})
	require.NoError(t, err)

	newStage := domain.StageProposalSent
	updated, err := s.Update(ctx, created.ID, domain.DealPatch{
		Stage: &newStage,
		Notes: strptr(""), // clear
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StageProposalSent, updated.Stage)
	assert.Nil(t, updated.Notes)
	require.NotNil(t, updated.PersonName)
	assert.Equal(t, "Zoe Park", *updated.PersonName, "absent fields keep prior values")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestStore_UpdateNotFound(t *testing.T) {
	s, _ := newStore(t)

	title := "ghost"
	_, err := s.Update(context.Background(), uuid.New(), domain.DealPatch{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Deal{
		Title:    "Short-lived",
		Stage:    domain.StageLead,
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Delete(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Ping(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestStore_ReturnsCopies(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Deal{
		Title:    "Immutable",
		Stage:    domain.StageLead,
		Tags:     []string{"a"},
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	created.Title = "mutated"
	created.Tags[0] = "mutated"

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Immutable", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
}
