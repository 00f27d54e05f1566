package domain

import "time"

// ChatRole tags a coach transcript turn with its author.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }

func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleUser, ChatRoleAssistant:
		return true
	}
	return false
}

// ChatTurn is one role-tagged message in the coach transcript.
type ChatTurn struct {
	Role ChatRole
	Text string
}

// DealBrief is the simplified deal summary serialized into the coach's
// context payload. Field names are part of the payload contract.
type DealBrief struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     *string    `json:"company"`
	Stage       Stage      `json:"stage"`
	Value       float64    `json:"value"`
	Prob        float64    `json:"prob"`
	NextStep    *string    `json:"nextStep"`
	LastContact *time.Time `json:"lastContact"`
	Notes       *string    `json:"notes"`
}

// BriefFromDeal projects a deal into its coach-context summary.
func BriefFromDeal(d *Deal) DealBrief {
	return DealBrief{
		ID:          d.ID.String(),
		Title:       d.Title,
		Company:     d.CompanyName,
		Stage:       d.Stage,
		Value:       d.ExpectedValue,
		Prob:        d.CloseProbability,
		NextStep:    d.NextAction,
		LastContact: d.LastContactDate,
		Notes:       d.Notes,
	}
}
