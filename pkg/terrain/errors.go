package terrain

import "fmt"

// InvalidParameterError reports a configuration value outside its
// documented domain. It is returned before any stage does real work.
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// InsufficientDataError reports a grid that cannot be repaired because an
// entire row or column has no valid samples.
type InsufficientDataError struct {
	Axis  string // "row" or "column"
	Index int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("cannot repair grid: %s %d has no valid elevation samples", e.Axis, e.Index)
}
