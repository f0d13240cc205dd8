package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	sim "github.com/inference-sim/proxel-sim/sim"
	"github.com/inference-sim/proxel-sim/sim/trace"
)

// solutionExport is the JSON form of a solution.
type solutionExport struct {
	Model          string               `json:"model"`
	StepSize       float64              `json:"step_size"`
	Times          []float64            `json:"times"`
	Occupancy      map[string][]float64 `json:"occupancy"`
	Error          float64              `json:"error"`
	Processed      int                  `json:"processed"`
	DiscardedCount int                  `json:"discarded"`
	PeakProxels    int                  `json:"peak_proxels"`
	Allocated      int                  `json:"allocated_nodes"`
}

func isValidFormat(format string) bool {
	return format == "csv" || format == "json"
}

// saveSolution writes sol to path in the given format.
func saveSolution(path, format string, sol *sim.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeSolution(f, format, sol); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeSolution encodes sol as csv (one row per step) or json.
func writeSolution(w io.Writer, format string, sol *sim.Solution) error {
	switch format {
	case "csv":
		return writeSolutionCSV(w, sol)
	case "json":
		return writeSolutionJSON(w, sol)
	default:
		return fmt.Errorf("unknown output format %q; valid formats: csv, json", format)
	}
}

func writeSolutionCSV(w io.Writer, sol *sim.Solution) error {
	cw := csv.NewWriter(w)
	header := append([]string{"time"}, sol.States...)
	header = append(header, "cumulative_error")
	if err := cw.Write(header); err != nil {
		return err
	}
	times := sol.Times()
	for k := 0; k <= sol.Steps; k++ {
		record := make([]string, 0, len(header))
		record = append(record, strconv.FormatFloat(times[k], 'g', -1, 64))
		for _, p := range sol.Row(k) {
			record = append(record, strconv.FormatFloat(p, 'g', -1, 64))
		}
		record = append(record, strconv.FormatFloat(sol.CumulativeError[k], 'g', -1, 64))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSolutionJSON(w io.Writer, sol *sim.Solution) error {
	out := solutionExport{
		Model:          sol.Model,
		StepSize:       sol.StepSize,
		Times:          sol.Times(),
		Occupancy:      make(map[string][]float64, len(sol.States)),
		Error:          sol.Error,
		Processed:      sol.Processed,
		DiscardedCount: sol.DiscardedCount,
		PeakProxels:    sol.PeakProxels,
		Allocated:      sol.Allocated,
	}
	for i, name := range sol.States {
		out.Occupancy[name] = sol.StateSeries(i)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderPlot draws every state's occupancy series on one ascii chart.
func renderPlot(sol *sim.Solution) string {
	series := make([][]float64, len(sol.States))
	for i := range sol.States {
		series[i] = sol.StateSeries(i)
	}
	caption := fmt.Sprintf("occupancy of %s over %d steps of %g", strings.Join(sol.States, ", "), sol.Steps, sol.StepSize)
	return asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

func printTraceSummary(w io.Writer, summary *trace.SweepSummary) {
	fmt.Fprintln(w, "=== Sweep Trace Summary ===")
	fmt.Fprintf(w, "Steps                : %d\n", summary.Steps)
	fmt.Fprintf(w, "Expanded Proxels     : %d\n", summary.TotalExpanded)
	fmt.Fprintf(w, "Discarded Proxels    : %d\n", summary.TotalDiscarded)
	fmt.Fprintf(w, "Merged Insertions    : %d\n", summary.TotalMerged)
	fmt.Fprintf(w, "Peak Generation Size : %d\n", summary.PeakNextSize)
	fmt.Fprintf(w, "Max Mass Residual    : %.3e (step %d)\n", summary.MaxResidual, summary.MaxResidualAt)
}
