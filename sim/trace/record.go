// Package trace provides per-step sweep recording for proxel solver runs.
// It does not import sim/; it stores pure data types.
package trace

import "math"

// StepRecord captures the mass balance and tree sizes of one generation sweep.
type StepRecord struct {
	Step          int     // time step index k (1-based)
	Time          float64 // model time (k-1)*dt of the drained generation
	MassIn        float64 // total mass extracted from the drained generation
	MassOut       float64 // total mass inserted into the next generation
	DiscardedMass float64 // mass dropped below the truncation threshold in this step
	Discarded     int     // number of proxels dropped
	Expanded      int     // number of proxels expanded
	Merged        int     // insertions that merged into an existing proxel
	NextSize      int     // proxels in the next generation after the sweep
	LiveProxels   int     // proxels alive in the node pool after the sweep
}

// Residual returns |MassIn - MassOut - DiscardedMass|, the per-step conservation error.
func (r StepRecord) Residual() float64 {
	return math.Abs(r.MassIn - r.MassOut - r.DiscardedMass)
}
