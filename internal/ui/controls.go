package ui

import (
	"math"
	"strconv"

	"torus-ca/internal/core"
)

const (
	defaultIntStep   = 1
	defaultFloatStep = 0.05
)

// stepTarget returns the value one control step from current in direction
// dir, clamped to the control bounds. ok is false when the value would not
// move.
func stepTarget(ctrl core.ParameterControl, current float64, dir int) (float64, bool) {
	if dir == 0 {
		return current, false
	}
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		step = math.Round(step)
		if step <= 0 {
			step = defaultIntStep
		}
	case core.ParamTypeFloat:
		if step <= 0 {
			step = defaultFloatStep
		}
	default:
		return current, false
	}
	target := current + float64(dir)*step
	if ctrl.Min < ctrl.Max {
		target = math.Min(math.Max(target, ctrl.Min), ctrl.Max)
	}
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// formatValue renders v with a precision matching the control step.
func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// statusLines flattens the read-only parameters of a snapshot into
// "Label: value" rows, skipping keys that have a control.
func statusLines(snap core.ParameterSnapshot, controls []core.ParameterControl) []string {
	skip := make(map[string]bool, len(controls))
	for _, c := range controls {
		skip[c.Key] = true
	}
	var lines []string
	for _, group := range snap.Groups {
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}

// parseValue reads a parameter value as a float, whatever its numeric type.
func parseValue(p core.Parameter) (float64, bool) {
	switch p.Type {
	case core.ParamTypeInt, core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		return v, err == nil
	default:
		return 0, false
	}
}
