package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/proxel-sim/sim"
)

var showTree bool // run the sweep and dump the final generation

// presetsCmd lists the built-in models
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.ListPresets() {
			mf, err := sim.Preset(name)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s states=%v transitions=%d T=%g dt=%g\n",
				name, mf.States, len(mf.Transitions), mf.Run.TotalTime, mf.Run.StepSize)
		}
	},
}

// describeCmd prints a model's transition table and, with --tree, its final generation
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a model's states, transitions and run parameters",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

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
		describeModel(cmd.OutOrStdout(), model, cfg)

		if showTree {
			s, err := sim.NewSimulator(model, cfg)
			if err != nil {
				logrus.Fatalf("Failed to create simulator: %v", err)
			}
			s.Run()
			printGeneration(cmd.OutOrStdout(), model, s.FinalGeneration())
		}
	},
}

// describeModel writes the transition table and run parameters of m.
func describeModel(w io.Writer, m *sim.Model, cfg sim.RunConfig) {
	fmt.Fprintf(w, "=== Model: %s ===\n", m.Name)
	fmt.Fprintf(w, "States   : %v (initial %s)\n", m.States(), m.StateName(m.InitialState()))
	fmt.Fprintf(w, "Run      : T=%g dt=%g steps=%d horizon=%d min-prob=%g seed=%d\n",
		cfg.TotalTime, cfg.StepSize, cfg.Steps()+1, cfg.EffectiveHorizon(), cfg.MinProb, cfg.Seed)
	for state := 0; state < m.NumStates(); state++ {
		trs := m.Transitions(state)
		if len(trs) == 0 {
			fmt.Fprintf(w, "  %s is absorbing\n", m.StateName(state))
			continue
		}
		for _, tr := range trs {
			reset := ""
			if tr.ResetMemory {
				reset = " reset-memory"
			}
			fmt.Fprintf(w, "  %-12s %s -> %s  %v  clock=%s%s\n",
				tr.Name, m.StateName(tr.From), m.StateName(tr.To), tr.Hazard, tr.Clock, reset)
		}
	}
}

// printGeneration dumps a generation in id order followed by its size and leaf count.
func printGeneration(w io.Writer, m *sim.Model, gen *sim.Store) {
	fmt.Fprintln(w, "=== Final Generation ===")
	gen.Walk(func(p sim.Proxel) bool {
		fmt.Fprintf(w, "%s  %s\n", p, m.StateName(p.State))
		return true
	})
	fmt.Fprintf(w, "Proxels      : %d\n", gen.Len())
	fmt.Fprintf(w, "Leaf-Counter : %d\n", gen.Leaves())
	fmt.Fprintf(w, "Total Mass   : %.10f\n", gen.TotalMass())
}

func init() {
	registerModelFlags(describeCmd.Flags())
	registerRunFlags(describeCmd.Flags())
	describeCmd.Flags().BoolVar(&showTree, "tree", false, "Run the sweep and print the final generation")

	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(describeCmd)
}
