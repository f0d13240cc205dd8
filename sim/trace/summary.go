package trace

// SweepSummary aggregates statistics from a SweepTrace.
type SweepSummary struct {
	Steps          int
	TotalExpanded  int
	TotalDiscarded int
	TotalMerged    int
	DiscardedMass  float64
	MaxResidual    float64 // worst per-step conservation error
	MaxResidualAt  int     // step index of MaxResidual (0 if no steps)
	PeakNextSize   int
}

// Summarize computes aggregate statistics from a SweepTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SweepTrace) *SweepSummary {
	summary := &SweepSummary{}
	if st == nil {
		return summary
	}

	summary.Steps = len(st.Steps)
	for _, r := range st.Steps {
		summary.TotalExpanded += r.Expanded
		summary.TotalDiscarded += r.Discarded
		summary.TotalMerged += r.Merged
		summary.DiscardedMass += r.DiscardedMass
		if res := r.Residual(); res > summary.MaxResidual {
			summary.MaxResidual = res
			summary.MaxResidualAt = r.Step
		}
		if r.NextSize > summary.PeakNextSize {
			summary.PeakNextSize = r.NextSize
		}
	}

	return summary
}
