package trace

// TraceLevel controls the verbosity of sweep tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures one record per generation sweep.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SweepTrace collects per-step records during a solver run.
type SweepTrace struct {
	Config TraceConfig
	Steps  []StepRecord
}

// NewSweepTrace creates a SweepTrace ready for recording.
func NewSweepTrace(config TraceConfig) *SweepTrace {
	return &SweepTrace{
		Config: config,
		Steps:  make([]StepRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *SweepTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelSteps
}

// RecordStep appends a step record.
func (st *SweepTrace) RecordStep(record StepRecord) {
	st.Steps = append(st.Steps, record)
}
