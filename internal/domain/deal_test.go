package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func sampleDeal() Deal {
	contact := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return Deal{
		ID:               uuid.New(),
		Title:            "Enterprise License - Acme Corp",
		PersonName:       strptr("Alice Johnson"),
		CompanyName:      strptr("Acme Corp"),
		Stage:            StageActiveConvo,
		Tags:             []string{"enterprise", "saas", "Q3"},
		Priority:         PriorityHigh,
		ExpectedValue:    50000,
		CloseProbability: 60,
		LastContactDate:  &contact,
		NextAction:       strptr("Send technical specs"),
		Notes:            strptr("Interested in SSO features."),
	}
}

func TestDealPatchApplyChangesOnlyPresentFields(t *testing.T) {
	d := sampleDeal()
	before := d

	stage := StageProposalSent
	value := 55000.0
	DealPatch{Stage: &stage, ExpectedValue: &value}.Apply(&d)

	if d.Stage != StageProposalSent {
		t.Errorf("stage: got %q, want %q", d.Stage, StageProposalSent)
	}
	if d.ExpectedValue != 55000 {
		t.Errorf("expectedValue: got %v, want 55000", d.ExpectedValue)
	}

	// Everything else must be untouched.
	if d.Title != before.Title {
		t.Errorf("title changed: %q", d.Title)
	}
	if d.PersonName == nil || *d.PersonName != *before.PersonName {
		t.Error("personName changed")
	}
	if d.CloseProbability != before.CloseProbability {
		t.Errorf("closeProbability changed: %v", d.CloseProbability)
	}
	if len(d.Tags) != 3 {
		t.Errorf("tags changed: %v", d.Tags)
	}
	if d.LastContactDate == nil || !d.LastContactDate.Equal(*before.LastContactDate) {
		t.Error("lastContactDate changed")
	}
}

func TestDealPatchClearSemantics(t *testing.T) {
	d := sampleDeal()

	zero := time.Time{}
	DealPatch{
		Notes:           strptr(""),
		LastContactDate: &zero,
	}.Apply(&d)

	if d.Notes != nil {
		t.Errorf("notes: got %q, want cleared", *d.Notes)
	}
	if d.LastContactDate != nil {
		t.Errorf("lastContactDate: got %v, want cleared", d.LastContactDate)
	}
	// Untouched optional fields stay set.
	if d.PersonName == nil {
		t.Error("personName should be untouched")
	}
}

func TestDealPatchTagsReplacedWholesale(t *testing.T) {
	d := sampleDeal()

	tags := []string{"renewal"}
	DealPatch{Tags: &tags}.Apply(&d)

	if len(d.Tags) != 1 || d.Tags[0] != "renewal" {
		t.Errorf("tags: got %v, want [renewal]", d.Tags)
	}

	// The patch keeps its own copy.
	tags[0] = "mutated"
	if d.Tags[0] != "renewal" {
		t.Error("deal tags alias the patch slice")
	}
}

func TestDealPatchIsEmpty(t *testing.T) {
	if !(DealPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (DealPatch{Title: strptr("x")}).IsEmpty() {
		t.Error("patch with title should not be empty")
	}
}

func TestSearchTextIncludesAllSearchableFields(t *testing.T) {
	d := sampleDeal()
	text := d.SearchText()

	for _, want := range []string{"enterprise license", "alice johnson", "acme corp", "sso features", "q3"} {
		if !strings.Contains(text, want) {
			t.Errorf("search text %q missing %q", text, want)
		}
	}
}

func TestSearchTextHandlesMissingOptionals(t *testing.T) {
	d := Deal{Title: "Bare", Stage: StageLead, Priority: PriorityLow}
	if got := d.SearchText(); got != "bare" {
		t.Errorf("search text: got %q, want %q", got, "bare")
	}
}
