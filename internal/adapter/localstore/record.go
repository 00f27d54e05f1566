package localstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// dealRecord is the on-disk shape of a deal. Field names mirror the wire
// format so the store file stays readable and diffable.
type dealRecord struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	PersonName  *string   `json:"personName,omitempty"`
	CompanyName *string   `json:"companyName,omitempty"`
	Stage       string    `json:"stage"`
	Tags        []string  `json:"tags"`

	Priority         string  `json:"priority"`
	ExpectedValue    float64 `json:"expectedValue"`
	CloseProbability float64 `json:"closeProbability"`

	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	LastContactDate   *time.Time `json:"lastContactDate,omitempty"`
	NextActionDate    *time.Time `json:"nextActionDate,omitempty"`
	NextAction        *string    `json:"nextAction,omitempty"`
	Notes             *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRecord(d *domain.Deal) dealRecord {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return dealRecord{
		ID:                d.ID,
		Title:             d.Title,
		PersonName:        d.PersonName,
		CompanyName:       d.CompanyName,
		Stage:             string(d.Stage),
		Tags:              tags,
		Priority:          string(d.Priority),
		ExpectedValue:     d.ExpectedValue,
		CloseProbability:  d.CloseProbability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		LastContactDate:   d.LastContactDate,
		NextActionDate:    d.NextActionDate,
		NextAction:        d.NextAction,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r dealRecord) toDomain() domain.Deal {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Deal{
		ID:                r.ID,
		Title:             r.Title,
		PersonName:        r.PersonName,
		CompanyName:       r.CompanyName,
		Stage:             domain.Stage(r.Stage),
		Tags:              tags,
		Priority:          domain.Priority(r.Priority),
		ExpectedValue:     r.ExpectedValue,
		CloseProbability:  r.CloseProbability,
		ExpectedCloseDate: r.ExpectedCloseDate,
		LastContactDate:   r.LastContactDate,
		NextActionDate:    r.NextActionDate,
		NextAction:        r.NextAction,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
