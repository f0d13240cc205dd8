// Package hazard implements the age-dependent transition rate functions that drive
// the proxel solver.
//
// A Hazard maps the time already spent in a sojourn (its age) to an instantaneous
// transition rate. The solver multiplies that rate by the step size to obtain the
// probability of leaving the sojourn during the next step.
//
// Parameter preconditions (positive scales, standard deviations and step sizes) are
// the caller's responsibility and are not checked at evaluation time.
package hazard
