// Aggregates per-step state occupancy and the truncation error of a solver run.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// Solution is the result of a solver run: the probability of each state at each
// time step, the mass lost to truncation, and the resource counters.
type Solution struct {
	Model    string
	States   []string
	StepSize float64

	// Occupancy[state][k] is the probability of state at time k*StepSize, k = 0 .. Steps.
	Occupancy [][]float64
	// CumulativeError[k] is the discarded mass up to and including the drain of generation k.
	CumulativeError []float64

	Error          float64 // total discarded mass
	Processed      int     // proxels ever extracted
	DiscardedCount int     // proxels dropped below the threshold
	PeakProxels    int     // maximum concurrently live proxels
	Allocated      int     // nodes ever created by the pool
	Steps          int     // k_max
}

func newSolution(m *Model, stepSize float64, kmax int) *Solution {
	occ := make([][]float64, m.NumStates())
	for i := range occ {
		occ[i] = make([]float64, kmax+1)
	}
	return &Solution{
		Model:           m.Name,
		States:          m.States(),
		StepSize:        stepSize,
		Occupancy:       occ,
		CumulativeError: make([]float64, kmax+1),
		Steps:           kmax,
	}
}

// At returns the occupancy of state at step k.
func (s *Solution) At(state, k int) float64 {
	return s.Occupancy[state][k]
}

// Row returns the occupancy of every state at step k.
func (s *Solution) Row(k int) []float64 {
	row := make([]float64, len(s.Occupancy))
	for i := range s.Occupancy {
		row[i] = s.Occupancy[i][k]
	}
	return row
}

// RowSum returns the total recorded mass at step k.
func (s *Solution) RowSum(k int) float64 {
	return floats.Sum(s.Row(k))
}

// StateSeries returns a copy of the occupancy time series of state.
func (s *Solution) StateSeries(state int) []float64 {
	return append([]float64(nil), s.Occupancy[state]...)
}

// Times returns the model time of every step.
func (s *Solution) Times() []float64 {
	times := make([]float64, s.Steps+1)
	for k := range times {
		times[k] = float64(k) * s.StepSize
	}
	return times
}

// Print writes the occupancy table followed by the error and resource summary.
func (s *Solution) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Proxel Solution: %s ===\n", s.Model)
	fmt.Fprintf(w, "%8s", "Time")
	for _, name := range s.States {
		fmt.Fprintf(w, "  %13s", name)
	}
	fmt.Fprintln(w)
	times := s.Times()
	for k := 0; k <= s.Steps; k++ {
		fmt.Fprintf(w, "%8.2f", times[k])
		for i := range s.States {
			fmt.Fprintf(w, "  %13.5e", s.Occupancy[i][k])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Discarded Error      : %.5e\n", s.Error)
	fmt.Fprintf(w, "Discarded Proxels    : %d\n", s.DiscardedCount)
	fmt.Fprintf(w, "Processed Proxels    : %d\n", s.Processed)
	fmt.Fprintf(w, "Peak Live Proxels    : %d\n", s.PeakProxels)
	fmt.Fprintf(w, "Allocated Nodes      : %d\n", s.Allocated)
}
