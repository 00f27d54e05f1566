package domain

// Stage represents a deal's position in the sales process.
type Stage string

const (
	StageLead         Stage = "lead"
	StageContacted    Stage = "contacted"
	StageActiveConvo  Stage = "active_convo"
	StageProposalSent Stage = "proposal_sent"
	StageVerbalYes    Stage = "verbal_yes"
	StageClosedWon    Stage = "closed_won"
	StageClosedLost   Stage = "closed_lost"
)

// AllStages lists every stage in pipeline order.
var AllStages = []Stage{
	StageLead,
	StageContacted,
	StageActiveConvo,
	StageProposalSent,
	StageVerbalYes,
	StageClosedWon,
	StageClosedLost,
}

func (s Stage) String() string { return string(s) }

func (s Stage) IsValid() bool {
	switch s {
	case StageLead, StageContacted, StageActiveConvo, StageProposalSent,
		StageVerbalYes, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// IsClosed reports whether the stage is terminal (won or lost).
// Closed deals are excluded from pipeline metrics.
func (s Stage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// stageLabels maps every stage to its human-readable display label.
var stageLabels = map[Stage]string{
	StageLead:         "Lead",
	StageContacted:    "Contacted",
	StageActiveConvo:  "Active Conversation",
	StageProposalSent: "Proposal Sent",
	StageVerbalYes:    "Verbal Yes",
	StageClosedWon:    "Closed Won",
	StageClosedLost:   "Closed Lost",
}

// stageColors maps every stage to its display color classes.
var stageColors = map[Stage]string{
	StageLead:         "bg-slate-100 text-slate-700 border-slate-200",
	StageContacted:    "bg-blue-50 text-blue-700 border-blue-200",
	StageActiveConvo:  "bg-cyan-50 text-cyan-700 border-cyan-200",
	StageProposalSent: "bg-purple-50 text-purple-700 border-purple-200",
	StageVerbalYes:    "bg-lime-50 text-lime-700 border-lime-200",
	StageClosedWon:    "bg-emerald-100 text-emerald-800 border-emerald-300",
	StageClosedLost:   "bg-rose-50 text-rose-700 border-rose-200",
}

// Label returns the display label for the stage.
func (s Stage) Label() string { return stageLabels[s] }

// Color returns the display color classes for the stage.
func (s Stage) Color() string { return stageColors[s] }

// Priority represents how urgent a deal is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities lists every priority from least to most urgent.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// priorityColors maps every priority to its display color classes.
var priorityColors = map[Priority]string{
	PriorityLow:    "text-slate-500 bg-slate-100",
	PriorityMedium: "text-amber-600 bg-amber-50",
	PriorityHigh:   "text-rose-600 bg-rose-50 font-bold",
}

// Color returns the display color classes for the priority.
func (p Priority) Color() string { return priorityColors[p] }
