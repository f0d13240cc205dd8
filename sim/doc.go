// Package sim provides the proxel solver: a discrete-time engine that evolves the
// probability mass of a non-Markovian model over (state, age) pairs.
//
// # Reading Guide
//
// Start with these three files to understand the solver kernel:
//   - proxel.go: the Proxel record and its composite id encoding
//   - store.go: one generation of proxels as an id-ordered tree on a shared node pool
//   - simulator.go: the two-generation sweep, truncation and expansion
//
// # Architecture
//
// The sim package owns the model, the run configuration and the sweep; leaf
// functionality lives in sub-packages:
//   - sim/hazard/: age-dependent rate functions and the incomplete gamma evaluator
//   - sim/trace/: per-step sweep recording and summaries
//
// A Model is the transition table: for every state, the competing transitions
// leaving it, each with a hazard.Hazard and the clock it reads. Models come from
// YAML files (model_spec.go) or built-in presets (presets.go).
//
// # Accuracy
//
// Proxels below RunConfig.MinProb are dropped and their mass added to
// Solution.Error, except the last proxel of a generation, which is always
// expanded. Ages are clamped to horizon-1. Both are approximations; the
// error accumulator bounds the first, a larger horizon removes the second.
package sim
