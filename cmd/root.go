package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/inference-sim/proxel-sim/sim"
	"github.com/inference-sim/proxel-sim/sim/trace"
)

var (
	// CLI flags selecting the model
	modelPath  string // YAML model file
	presetName string // built-in model, used when no model file is given

	// CLI flags for run parameters; each overrides the model file only when set
	totalTime     float64 // Total simulated time
	stepSize      float64 // Discretization step
	minProb       float64 // Truncation threshold
	horizon       int     // Age bound (0 = derived)
	seed          int64   // Seed for extraction order
	progressEvery int     // Steps between progress logs

	// CLI flags for output
	logLevel    string // Log verbosity level
	outPath     string // Occupancy table export path
	outFormat   string // csv or json
	metricsFile string // Prometheus textfile export path
	plotSeries  bool   // Print an ascii occupancy chart
	traceLevel  string // Sweep trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "proxel-sim",
	Short: "Proxel-based solver for non-Markovian discrete-state models",
}

// runCmd solves a model using parameters from the model file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the proxel sweep and print state occupancy over time",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid levels: none, steps", traceLevel)
		}
		if outPath != "" && !isValidFormat(outFormat) {
			logrus.Fatalf("Invalid output format %q; valid formats: csv, json", outFormat)
		}

		mf, err := resolveModelFile(modelPath, presetName)
		if err != nil {
			logrus.Fatalf("Failed to load model: %v", err)
		}
		cfg := applyRunFlags(cmd.Flags(), mf.RunConfig())
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		model, err := mf.Build(cfg.StepSize)
		if err != nil {
			logrus.Fatalf("Failed to build model %q: %v", mf.Name, err)
		}

		reg := prometheus.NewRegistry()
		st := trace.NewSweepTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		s, err := sim.NewSimulator(model, cfg, sim.WithTrace(st), sim.WithMetrics(sim.NewRunMetrics(reg)))
		if err != nil {
			logrus.Fatalf("Failed to create simulator: %v", err)
		}

		startTime := time.Now()
		sol := s.Run()
		sol.Print(cmd.OutOrStdout())

		if st.Enabled() {
			printTraceSummary(cmd.OutOrStdout(), trace.Summarize(st))
		}
		if plotSeries {
			fmt.Fprintln(cmd.OutOrStdout(), renderPlot(sol))
		}
		if outPath != "" {
			if err := saveSolution(outPath, outFormat, sol); err != nil {
				logrus.Fatalf("Failed to write solution: %v", err)
			}
			logrus.Infof("Solution written to %s", outPath)
		}
		if metricsFile != "" {
			if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
				logrus.Fatalf("Failed to write metrics file: %v", err)
			}
			logrus.Infof("Metrics written to %s", metricsFile)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// setLogLevel parses and applies the --log flag.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// registerModelFlags binds the model selection flags to fs.
func registerModelFlags(fs *pflag.FlagSet) {
	fs.StringVar(&modelPath, "model", "", "Path to a YAML model file (overrides --preset)")
	fs.StringVar(&presetName, "preset", "overheat", "Built-in model to solve when --model is not given")
}

// registerRunFlags binds the run parameter flags to fs.
func registerRunFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&totalTime, "time", 0, "Total simulated time (default from the model)")
	fs.Float64Var(&stepSize, "dt", 0, "Discretization step size (default from the model)")
	fs.Float64Var(&minProb, "min-prob", sim.DefaultMinProb, "Truncation threshold below which proxels are discarded")
	fs.IntVar(&horizon, "horizon", 0, "Age discretization bound (0 = total time / step size)")
	fs.Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for the proxel extraction order")
	fs.IntVar(&progressEvery, "progress-every", sim.DefaultProgressEvery, "Steps between progress log lines (0 disables)")
}

// applyRunFlags overrides cfg with every run flag the user set explicitly.
// Unset flags keep the model file's values.
func applyRunFlags(fs *pflag.FlagSet, cfg sim.RunConfig) sim.RunConfig {
	if fs.Changed("time") {
		cfg.TotalTime = totalTime
	}
	if fs.Changed("dt") {
		cfg.StepSize = stepSize
	}
	if fs.Changed("min-prob") {
		cfg.MinProb = minProb
	}
	if fs.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if fs.Changed("seed") {
		cfg.Seed = seed
	}
	if fs.Changed("progress-every") {
		cfg.ProgressEvery = progressEvery
	}
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerModelFlags(runCmd.Flags())
	registerRunFlags(runCmd.Flags())

	// Output
	runCmd.Flags().StringVar(&outPath, "out", "", "Write the occupancy table to this file")
	runCmd.Flags().StringVar(&outFormat, "format", "csv", "Format of --out (csv, json)")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write solver counters in Prometheus text format to this file")
	runCmd.Flags().BoolVar(&plotSeries, "plot", false, "Print an ascii chart of state occupancy")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Sweep trace level (none, steps)")

	rootCmd.AddCommand(runCmd)
}
