package domain

import (
	"testing"

	"github.com/google/uuid"
)

// testPipeline builds four deals mirroring a small real pipeline: three open,
// one closed won.
func testPipeline() []Deal {
	return []Deal{
		{
			ID:               uuid.New(),
			Title:            "Enterprise License - Acme Corp",
			PersonName:       strptr("Alice Johnson"),
			CompanyName:      strptr("Acme Corp"),
			Stage:            StageActiveConvo,
			Tags:             []string{"enterprise", "saas", "Q3"},
			Priority:         PriorityHigh,
			ExpectedValue:    50000,
			CloseProbability: 60,
		},
		{
			ID:               uuid.New(),
			Title:            "Startup Plan - Beta Inc",
			PersonName:       strptr("Bob Smith"),
			CompanyName:      strptr("Beta Inc"),
			Stage:            StageProposalSent,
			Tags:             []string{"inbound", "startup"},
			Priority:         PriorityMedium,
			ExpectedValue:    5000,
			CloseProbability: 80,
		},
		{
			ID:               uuid.New(),
			Title:            "Consulting Project - Gamma",
			CompanyName:      strptr("Gamma Group"),
			Stage:            StageLead,
			Tags:             []string{"consulting"},
			Priority:         PriorityLow,
			ExpectedValue:    12000,
			CloseProbability: 20,
		},
		{
			ID:               uuid.New(),
			Title:            "Legacy Contract Renewal",
			Stage:            StageClosedWon,
			Tags:             []string{"renewal"},
			Priority:         PriorityHigh,
			ExpectedValue:    25000,
			CloseProbability: 100,
		},
	}
}

func TestFilterEmptyMatchesEverything(t *testing.T) {
	deals := testPipeline()
	got := DealFilter{}.Apply(deals)
	if len(got) != len(deals) {
		t.Fatalf("empty filter: got %d deals, want %d", len(got), len(deals))
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	deals := testPipeline()

	for _, query := range []string{"acme", "ACME", "Acme"} {
		got := DealFilter{Search: query}.Apply(deals)
		if len(got) != 1 {
			t.Fatalf("search %q: got %d deals, want 1", query, len(got))
		}
		if got[0].Title != "Enterprise License - Acme Corp" {
			t.Errorf("search %q matched %q", query, got[0].Title)
		}
	}
}

func TestFilterSearchCoversTagsAndNotes(t *testing.T) {
	deals := testPipeline()
	deals[2].Notes = strptr("Referred by the Delta account")

	if got := DealFilter{Search: "startup"}.Apply(deals); len(got) != 1 {
		t.Errorf("tag search: got %d deals, want 1", len(got))
	}
	if got := DealFilter{Search: "delta account"}.Apply(deals); len(got) != 1 {
		t.Errorf("notes search: got %d deals, want 1", len(got))
	}
	if got := DealFilter{Search: "no such deal"}.Apply(deals); len(got) != 0 {
		t.Errorf("miss search: got %d deals, want 0", len(got))
	}
}

func TestFilterStages(t *testing.T) {
	deals := testPipeline()

	got := DealFilter{Stages: []Stage{StageLead, StageProposalSent}}.Apply(deals)
	if len(got) != 2 {
		t.Fatalf("stage filter: got %d deals, want 2", len(got))
	}

	// Order preserved: proposal_sent deal appears before lead deal in input.
	if got[0].Stage != StageProposalSent || got[1].Stage != StageLead {
		t.Errorf("order not preserved: %q, %q", got[0].Stage, got[1].Stage)
	}
}

func TestFilterHideClosedOverridesStages(t *testing.T) {
	deals := testPipeline()

	// closed_won explicitly selected, hideClosed still wins.
	got := DealFilter{Stages: []Stage{StageClosedWon}, HideClosed: true}.Apply(deals)
	if len(got) != 0 {
		t.Errorf("got %d deals, want 0", len(got))
	}
}

func TestFilterPriorities(t *testing.T) {
	deals := testPipeline()
	got := DealFilter{Priorities: []Priority{PriorityHigh}}.Apply(deals)
	if len(got) != 2 {
		t.Fatalf("priority filter: got %d deals, want 2", len(got))
	}
}

func TestFilterTagsAnyOverlapCaseInsensitive(t *testing.T) {
	deals := testPipeline()

	got := DealFilter{Tags: []string{"q3", "CONSULTING"}}.Apply(deals)
	if len(got) != 2 {
		t.Fatalf("tag filter: got %d deals, want 2", len(got))
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	deals := testPipeline()

	got := DealFilter{
		Search:     "beta",
		Stages:     []Stage{StageProposalSent},
		Priorities: []Priority{PriorityMedium},
		HideClosed: true,
	}.Apply(deals)
	if len(got) != 1 || got[0].Title != "Startup Plan - Beta Inc" {
		t.Fatalf("combined filter: got %v", got)
	}

	// Same search with a non-matching stage must be empty.
	got = DealFilter{Search: "beta", Stages: []Stage{StageLead}}.Apply(deals)
	if len(got) != 0 {
		t.Errorf("conflicting predicates: got %d deals, want 0", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	deals := testPipeline()
	f := DealFilter{Search: "a", HideClosed: true, Priorities: []Priority{PriorityHigh, PriorityLow}}

	once := f.Apply(deals)
	twice := f.Apply(once)

	if len(once) != len(twice) {
		t.Fatalf("idempotence: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("idempotence: deal %d differs", i)
		}
	}
}

func TestFilterMonotonicity(t *testing.T) {
	deals := testPipeline()

	// Adding a stage to a non-empty stage set never shrinks the result.
	narrow := DealFilter{Stages: []Stage{StageLead}}.Apply(deals)
	wide := DealFilter{Stages: []Stage{StageLead, StageActiveConvo}}.Apply(deals)
	if len(wide) < len(narrow) {
		t.Errorf("adding a stage shrank results: %d < %d", len(wide), len(narrow))
	}

	// hideClosed=true never grows the result.
	open := DealFilter{HideClosed: true}.Apply(deals)
	all := DealFilter{}.Apply(deals)
	if len(open) > len(all) {
		t.Errorf("hideClosed grew results: %d > %d", len(open), len(all))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	deals := testPipeline()
	titles := make([]string, len(deals))
	for i, d := range deals {
		titles[i] = d.Title
	}

	DealFilter{Search: "acme"}.Apply(deals)

	for i, d := range deals {
		if d.Title != titles[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
