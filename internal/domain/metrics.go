package domain

// PipelineMetrics summarizes the open pipeline. Closed deals contribute to
// no field.
type PipelineMetrics struct {
	// ActiveCount is the number of deals not in a closed stage.
	ActiveCount int

	// TotalValue is the nominal sum of expected values over active deals.
	TotalValue float64

	// WeightedValue is the risk-adjusted forecast: expected value scaled by
	// close probability, summed over active deals.
	WeightedValue float64

	// AvgProbability is the arithmetic mean close probability over active
	// deals; 0 when there are none.
	AvgProbability float64

	// StageCounts holds the number of active deals per stage. Closed stages
	// are present with a zero count so consumers can range over AllStages.
	StageCounts map[Stage]int
}

// Summarize computes pipeline metrics over the given deals. Pure: the input
// is read once and never mutated.
func Summarize(deals []Deal) PipelineMetrics {
	m := PipelineMetrics{
		StageCounts: make(map[Stage]int, len(AllStages)),
	}
	for _, s := range AllStages {
		m.StageCounts[s] = 0
	}

	var probSum float64
	for i := range deals {
		d := &deals[i]
		if d.Stage.IsClosed() {
			continue
		}
		m.ActiveCount++
		m.TotalValue += d.ExpectedValue
		m.WeightedValue += d.ExpectedValue * d.CloseProbability / 100
		probSum += d.CloseProbability
		m.StageCounts[d.Stage]++
	}

	if m.ActiveCount > 0 {
		m.AvgProbability = probSum / float64(m.ActiveCount)
	}

	return m
}
