package localstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// SampleDeals returns the demo pipeline used to seed an empty store: one
// deal in the middle of the funnel, one near close, one fresh lead, and one
// already won. Dates are anchored to now so the data always looks current.
func SampleDeals(now time.Time) []domain.Deal {
	now = now.UTC()
	day := 24 * time.Hour

	return []domain.Deal{
		{
			ID:                uuid.New(),
			Title:             "Enterprise License - Acme Corp",
			PersonName:        ptr("Alice Johnson"),
			CompanyName:       ptr("Acme Corp"),
			Stage:             domain.StageActiveConvo,
			Tags:              []string{"enterprise", "q3"},
			Priority:          domain.PriorityHigh,
			ExpectedValue:     50000,
			CloseProbability:  60,
			ExpectedCloseDate: timePtr(now.Add(30 * day)),
			LastContactDate:   timePtr(now.Add(-2 * day)),
			NextActionDate:    timePtr(now.Add(3 * day)),
			NextAction:        ptr("Send pricing breakdown"),
			Notes:             ptr("Security review passed. Waiting on legal."),
			CreatedAt:         now.Add(-21 * day),
			UpdatedAt:         now.Add(-2 * day),
		},
		{
			ID:                uuid.New(),
			Title:             "Startup Plan - Beta Inc",
			PersonName:        ptr("Bob Smith"),
			CompanyName:       ptr("Beta Inc"),
			Stage:             domain.StageProposalSent,
			Tags:              []string{"startup"},
			Priority:          domain.PriorityMedium,
			ExpectedValue:     5000,
			CloseProbability:  80,
			ExpectedCloseDate: timePtr(now.Add(10 * day)),
			LastContactDate:   timePtr(now.Add(-1 * day)),
			NextActionDate:    timePtr(now.Add(2 * day)),
			NextAction:        ptr("Follow up on proposal"),
			CreatedAt:         now.Add(-14 * day),
			UpdatedAt:         now.Add(-1 * day),
		},
		{
			ID:               uuid.New(),
			Title:            "Consulting Project - Gamma",
			CompanyName:      ptr("Gamma LLC"),
			Stage:            domain.StageLead,
			Tags:             []string{},
			Priority:         domain.PriorityLow,
			ExpectedValue:    12000,
			CloseProbability: 20,
			Notes:            ptr("Inbound from the webinar. Qualify budget first."),
			CreatedAt:        now.Add(-3 * day),
			UpdatedAt:        now.Add(-3 * day),
		},
		{
			ID:               uuid.New(),
			Title:            "Legacy Contract Renewal",
			PersonName:       ptr("Dana Lee"),
			CompanyName:      ptr("Delta Holdings"),
			Stage:            domain.StageClosedWon,
			Tags:             []string{"renewal"},
			Priority:         domain.PriorityHigh,
			ExpectedValue:    25000,
			CloseProbability: 100,
			LastContactDate:  timePtr(now.Add(-7 * day)),
			CreatedAt:        now.Add(-60 * day),
			UpdatedAt:        now.Add(-7 * day),
		},
	}
}

func ptr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
