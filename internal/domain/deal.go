package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deal is a tracked sales opportunity moving through the pipeline stages.
type Deal struct {
	ID          uuid.UUID
	Title       string
	PersonName  *string
	CompanyName *string
	Stage       Stage

	// Tags is an ordered sequence; de-duplication is by convention, not enforced.
	Tags []string

	Priority         Priority
	ExpectedValue    float64
	CloseProbability float64 // 0-100

	ExpectedCloseDate *time.Time
	LastContactDate   *time.Time
	NextActionDate    *time.Time
	NextAction        *string
	Notes             *string

	// CreatedAt and UpdatedAt are stamped by the store, never by the caller.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the deal still counts toward the open pipeline.
func (d *Deal) IsActive() bool {
	return !d.Stage.IsClosed()
}

// SearchText returns the case-folded haystack used by free-text search:
// title, person, company and notes concatenated, followed by the tags
// joined with spaces.
func (d *Deal) SearchText() string {
	var b strings.Builder
	b.WriteString(d.Title)
	if d.PersonName != nil {
		b.WriteString(*d.PersonName)
	}
	if d.CompanyName != nil {
		b.WriteString(*d.CompanyName)
	}
	if d.Notes != nil {
		b.WriteString(*d.Notes)
	}
	b.WriteString(strings.Join(d.Tags, " "))
	return strings.ToLower(b.String())
}

// DealPatch holds a partial update: nil fields keep their prior value.
// For optional text fields a pointer to "" clears the value; for optional
// date fields a pointer to the zero time clears it. Tags replaces the whole
// sequence when present.
type DealPatch struct {
	Title       *string
	PersonName  *string
	CompanyName *string
	Stage       *Stage
	Tags        *[]string

	Priority         *Priority
	ExpectedValue    *float64
	CloseProbability *float64

	ExpectedCloseDate *time.Time
	LastContactDate   *time.Time
	NextActionDate    *time.Time
	NextAction        *string
	Notes             *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p DealPatch) IsEmpty() bool {
	return p.Title == nil && p.PersonName == nil && p.CompanyName == nil &&
		p.Stage == nil && p.Tags == nil && p.Priority == nil &&
		p.ExpectedValue == nil && p.CloseProbability == nil &&
		p.ExpectedCloseDate == nil && p.LastContactDate == nil &&
		p.NextActionDate == nil && p.NextAction == nil && p.Notes == nil
}

// Apply merges the patch over the deal, field by field. Fields absent from
// the patch retain their prior values. Timestamps are not touched; the store
// re-stamps UpdatedAt when it persists the merged record.
func (p DealPatch) Apply(d *Deal) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	d.PersonName = mergeText(d.PersonName, p.PersonName)
	d.CompanyName = mergeText(d.CompanyName, p.CompanyName)
	if p.Stage != nil {
		d.Stage = *p.Stage
	}
	if p.Tags != nil {
		d.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.ExpectedValue != nil {
		d.ExpectedValue = *p.ExpectedValue
	}
	if p.CloseProbability != nil {
		d.CloseProbability = *p.CloseProbability
	}
	d.ExpectedCloseDate = mergeDate(d.ExpectedCloseDate, p.ExpectedCloseDate)
	d.LastContactDate = mergeDate(d.LastContactDate, p.LastContactDate)
	d.NextActionDate = mergeDate(d.NextActionDate, p.NextActionDate)
	d.NextAction = mergeText(d.NextAction, p.NextAction)
	d.Notes = mergeText(d.Notes, p.Notes)
}

// mergeText applies optional-text patch semantics: nil keeps the current
// value, ptr("") clears it, anything else replaces it.
func mergeText(current, patch *string) *string {
	if patch == nil {
		return current
	}
	if *patch == "" {
		return nil
	}
	v := *patch
	return &v
}

// mergeDate applies optional-date patch semantics: nil keeps the current
// value, a zero time clears it, anything else replaces it.
func mergeDate(current, patch *time.Time) *time.Time {
	if patch == nil {
		return current
	}
	if patch.IsZero() {
		return nil
	}
	v := *patch
	return &v
}
