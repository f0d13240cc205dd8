package sim

import "fmt"

// Proxel is one element of discretized probability mass: the probability that the
// system is in State with supplementary age counters (Age, Memory) at the current
// time step.
//
// Age counts steps spent in the current state and is reset by every transition.
// Memory is the second supplementary variable; it keeps counting across transitions
// unless a transition resets it. Models that never read Memory keep it at zero.
type Proxel struct {
	ID     int64
	State  int
	Age    int
	Memory int
	Mass   float64
}

func (p Proxel) String() string {
	return fmt.Sprintf("ID: %6d - state %d - tau: (%3d,%3d) - prob: %7.5e", p.ID, p.State, p.Age, p.Memory, p.Mass)
}

// Encode maps (state, age, memory) to the composite key
// horizon*(horizon*state + age) + memory. It is a bijection for
// 0 <= age, memory < horizon.
func Encode(horizon int, state, age, memory int) int64 {
	h := int64(horizon)
	return h*(h*int64(state)+int64(age)) + int64(memory)
}

// Decode inverts Encode.
func Decode(horizon int, id int64) (state, age, memory int) {
	h := int64(horizon)
	memory = int(id % h)
	age = int((id / h) % h)
	state = int(id / (h * h))
	return state, age, memory
}

// clampAge caps an age counter at horizon-1.
func clampAge(age, horizon int) int {
	if age >= horizon {
		return horizon - 1
	}
	return age
}
