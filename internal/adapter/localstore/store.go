// Package localstore implements the deal store on a single local JSON file.
// It is the no-infrastructure alternative to the PostgreSQL repository:
// every mutation rewrites the whole collection, so a successful call is
// always fully persisted before it returns.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// Store holds the canonical deal collection in memory and mirrors it to disk.
// Safe for concurrent use.
type Store struct {
	path string

	mu    sync.Mutex
	deals []domain.Deal
}

// New opens (or creates) the store at path. A missing file starts the store
// with the sample pipeline, mirroring the reference demo behavior; a present
// file is loaded as-is.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.deals = SampleDeals(time.Now())
		if err := s.persist(); err != nil {
			return nil, fmt.Errorf("localstore: seed %s: %w", path, err)
		}
	case err != nil:
		return nil, fmt.Errorf("localstore: read %s: %w", path, err)
	default:
		records := []dealRecord{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &records); err != nil {
				return nil, fmt.Errorf("localstore: parse %s: %w", path, err)
			}
		}
		s.deals = make([]domain.Deal, len(records))
		for i, rec := range records {
			s.deals[i] = rec.toDomain()
		}
	}

	return s, nil
}

// Ping reports whether the backing directory is still accessible.
func (s *Store) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("localstore: %w", err)
	}
	return nil
}

// List returns a snapshot of every deal ordered by UpdatedAt descending.
func (s *Store) List(_ context.Context) ([]domain.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Deal, len(s.deals))
	copy(out, s.deals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

// GetByID returns a copy of the deal with the given id.
// Returns domain.ErrNotFound when no record matches.
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("deal %s: %w", id, domain.ErrNotFound)
	}

	d := cloneDeal(s.deals[idx])
	return &d, nil
}

// Create assigns a fresh id, stamps both timestamps, persists the whole
// collection, and returns the stored record. Caller-supplied id and
// timestamps are ignored.
func (s *Store) Create(_ context.Context, d *domain.Deal) (*domain.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDeal(*d)
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.deals = append([]domain.Deal{stored}, s.deals...)
	if err := s.persist(); err != nil {
		s.deals = s.deals[1:]
		return nil, err
	}

	out := cloneDeal(stored)
	return &out, nil
}

// Update merges the patch over the stored record, re-stamps UpdatedAt
// strictly after its prior value, and persists the whole collection.
// Returns domain.ErrNotFound when the id does not match.
func (s *Store) Update(_ context.Context, id uuid.UUID, patch domain.DealPatch) (*domain.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("deal %s: %w", id, domain.ErrNotFound)
	}

	prior := s.deals[idx]
	merged := cloneDeal(prior)
	patch.Apply(&merged)

	now := time.Now().UTC()
	if !now.After(prior.UpdatedAt) {
		now = prior.UpdatedAt.Add(time.Nanosecond)
	}
	merged.UpdatedAt = now

	s.deals[idx] = merged
	if err := s.persist(); err != nil {
		s.deals[idx] = prior
		return nil, err
	}

	out := cloneDeal(merged)
	return &out, nil
}

// Delete removes the record permanently and persists the whole collection.
// Returns domain.ErrNotFound when the id does not match.
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("deal %s: %w", id, domain.ErrNotFound)
	}

	removed := s.deals[idx]
	s.deals = append(s.deals[:idx:idx], s.deals[idx+1:]...)
	if err := s.persist(); err != nil {
		s.deals = append(s.deals[:idx:idx], append([]domain.Deal{removed}, s.deals[idx:]...)...)
		return err
	}

	return nil
}

// indexOf returns the position of id in the collection, or -1.
// Caller must hold the lock.
func (s *Store) indexOf(id uuid.UUID) int {
	for i := range s.deals {
		if s.deals[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection to disk atomically (temp file + rename)
// so a crash never leaves a half-written store. Caller must hold the lock.
func (s *Store) persist() error {
	records := make([]dealRecord, len(s.deals))
	for i := range s.deals {
		records[i] = toRecord(&s.deals[i])
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: marshal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("localstore: rename: %w", err)
	}

	return nil
}

func cloneDeal(d domain.Deal) domain.Deal {
	out := d
	out.Tags = append([]string(nil), d.Tags...)
	out.PersonName = clonePtr(d.PersonName)
	out.CompanyName = clonePtr(d.CompanyName)
	out.NextAction = clonePtr(d.NextAction)
	out.Notes = clonePtr(d.Notes)
	out.ExpectedCloseDate = cloneTimePtr(d.ExpectedCloseDate)
	out.LastContactDate = cloneTimePtr(d.LastContactDate)
	out.NextActionDate = cloneTimePtr(d.NextActionDate)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
