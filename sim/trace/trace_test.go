package trace

import (
	"testing"
)

func TestSweepTrace_RecordStep_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for steps
	st := NewSweepTrace(TraceConfig{Level: TraceLevelSteps})

	// WHEN a step record is recorded
	st.RecordStep(StepRecord{Step: 1, MassIn: 1, MassOut: 1, Expanded: 1, NextSize: 2})

	// THEN the trace contains one record with correct data
	if len(st.Steps) != 1 {
		t.Fatalf("expected 1 step record, got %d", len(st.Steps))
	}
	if st.Steps[0].NextSize != 2 {
		t.Errorf("expected next size 2, got %d", st.Steps[0].NextSize)
	}
}

func TestSweepTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSweepTrace(TraceConfig{Level: TraceLevelSteps})
	for k := 1; k <= 3; k++ {
		st.RecordStep(StepRecord{Step: k})
	}
	for i, r := range st.Steps {
		if r.Step != i+1 {
			t.Errorf("record %d: step %d, want %d", i, r.Step, i+1)
		}
	}
}

func TestSweepTrace_Enabled(t *testing.T) {
	var nilTrace *SweepTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must not be enabled")
	}
	if NewSweepTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("level none must not be enabled")
	}
	if !NewSweepTrace(TraceConfig{Level: TraceLevelSteps}).Enabled() {
		t.Error("level steps must be enabled")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"steps", true},
		{"", true},
		{"decisions", false},
		{"STEPS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestStepRecord_Residual(t *testing.T) {
	r := StepRecord{MassIn: 1.0, MassOut: 0.75, DiscardedMass: 0.25}
	if r.Residual() != 0 {
		t.Errorf("balanced record residual = %v, want 0", r.Residual())
	}
	r.MassOut = 0.5
	if r.Residual() != 0.25 {
		t.Errorf("unbalanced record residual = %v, want 0.25", r.Residual())
	}
}
