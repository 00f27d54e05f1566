package domain

import "strings"

// DealFilter selects the visible subset of the pipeline. All predicates are
// AND-combined; a zero-value filter matches everything.
type DealFilter struct {
	// Search is a case-insensitive substring match over title, person,
	// company, notes and tags. Empty matches everything.
	Search string

	// Stages restricts to deals in any of the given stages. Empty means no
	// stage restriction.
	Stages []Stage

	// Priorities restricts to deals with any of the given priorities. Empty
	// means no priority restriction.
	Priorities []Priority

	// Tags restricts to deals carrying at least one of the given tags
	// (case-insensitive). Empty means no tag restriction.
	Tags []string

	// HideClosed excludes closed_won and closed_lost deals regardless of the
	// Stages predicate.
	HideClosed bool
}

// Matches reports whether a single deal passes every predicate.
func (f DealFilter) Matches(d *Deal) bool {
	if f.Search != "" && !strings.Contains(d.SearchText(), strings.ToLower(f.Search)) {
		return false
	}

	if len(f.Stages) > 0 && !containsStage(f.Stages, d.Stage) {
		return false
	}

	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, d.Priority) {
		return false
	}

	if len(f.Tags) > 0 && !hasAnyTag(d.Tags, f.Tags) {
		return false
	}

	if f.HideClosed && d.Stage.IsClosed() {
		return false
	}

	return true
}

// Apply returns the deals matching the filter, preserving input order.
// The input slice is never mutated.
func (f DealFilter) Apply(deals []Deal) []Deal {
	result := make([]Deal, 0, len(deals))
	for i := range deals {
		if f.Matches(&deals[i]) {
			result = append(result, deals[i])
		}
	}
	return result
}

func containsStage(stages []Stage, s Stage) bool {
	for _, v := range stages {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(priorities []Priority, p Priority) bool {
	for _, v := range priorities {
		if v == p {
			return true
		}
	}
	return false
}

// hasAnyTag reports whether the deal carries at least one of the wanted tags,
// compared case-insensitively.
func hasAnyTag(dealTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range dealTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
