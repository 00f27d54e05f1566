package deal

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

const maxTitleLength = 200

// CreateDealInput holds the parameters for creating a deal.
type CreateDealInput struct {
	Title       string
	PersonName  *string
	CompanyName *string
	Stage       domain.Stage
	Tags        []string

	Priority         domain.Priority
	ExpectedValue    float64
	CloseProbability float64

	ExpectedCloseDate *time.Time
	LastContactDate   *time.Time
	NextActionDate    *time.Time
	NextAction        *string
	Notes             *string
}

// Validate checks all fields and collects all errors.
func (i CreateDealInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if !i.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "unknown stage"})
	}
	if !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	if i.ExpectedValue < 0 {
		errs = append(errs, domain.FieldError{Field: "expectedValue", Message: "must be >= 0"})
	}
	if i.CloseProbability < 0 || i.CloseProbability > 100 {
		errs = append(errs, domain.FieldError{Field: "closeProbability", Message: "must be in 0..100"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// toDeal builds the domain record the store will persist. The store owns the
// id and timestamps.
func (i CreateDealInput) toDeal() *domain.Deal {
	return &domain.Deal{
		Title:             strings.TrimSpace(i.Title),
		PersonName:        trimOrNil(i.PersonName),
		CompanyName:       trimOrNil(i.CompanyName),
		Stage:             i.Stage,
		Tags:              append([]string(nil), i.Tags...),
		Priority:          i.Priority,
		ExpectedValue:     i.ExpectedValue,
		CloseProbability:  i.CloseProbability,
		ExpectedCloseDate: i.ExpectedCloseDate,
		LastContactDate:   i.LastContactDate,
		NextActionDate:    i.NextActionDate,
		NextAction:        trimOrNil(i.NextAction),
		Notes:             trimOrNil(i.Notes),
	}
}

// UpdateDealInput holds the parameters for a partial update.
type UpdateDealInput struct {
	DealID uuid.UUID
	Patch  domain.DealPatch
}

// Validate checks all fields and collects all errors.
func (i UpdateDealInput) Validate() error {
	var errs []domain.FieldError

	if i.DealID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "deal_id", Message: "required"})
	}
	if i.Patch.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}

	if i.Patch.Title != nil && strings.TrimSpace(*i.Patch.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.Patch.Title != nil && len(strings.TrimSpace(*i.Patch.Title)) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if i.Patch.Stage != nil && !i.Patch.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "unknown stage"})
	}
	if i.Patch.Priority != nil && !i.Patch.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	if i.Patch.ExpectedValue != nil && *i.Patch.ExpectedValue < 0 {
		errs = append(errs, domain.FieldError{Field: "expectedValue", Message: "must be >= 0"})
	}
	if i.Patch.CloseProbability != nil && (*i.Patch.CloseProbability < 0 || *i.Patch.CloseProbability > 100) {
		errs = append(errs, domain.FieldError{Field: "closeProbability", Message: "must be in 0..100"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteDealInput holds the parameters for deleting a deal.
type DeleteDealInput struct {
	DealID uuid.UUID
}

// Validate checks all fields.
func (i DeleteDealInput) Validate() error {
	if i.DealID == uuid.Nil {
		return domain.NewValidationError("deal_id", "required")
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
