package ui

import (
	"fmt"
	"math"
	"strconv"

	"connex/internal/board"
	"connex/internal/core"
)

const defaultFloatStep = 0.05

// controlStep returns the increment applied by one button press.
func controlStep(ctrl core.ParameterControl) float64 {
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	default:
		if step <= 0 {
			step = defaultFloatStep
		}
	}
	return step
}

// stepTarget returns the value one step from current in direction, clamped to
// the control range. ok is false when the step would not change the value.
func stepTarget(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 || (ctrl.Type != core.ParamTypeInt && ctrl.Type != core.ParamTypeFloat) {
		return current, false
	}
	target := ctrl.Clamp(current + float64(direction)*controlStep(ctrl))
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// parseValue reads a snapshot value for a control.
func parseValue(ctrl core.ParameterControl, raw string) (float64, bool) {
	switch ctrl.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(raw)
		return float64(v), err == nil
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err == nil
	}
	return 0, false
}

// formatValue renders a control value with a precision matching its step.
func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch step := controlStep(ctrl); {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// TileLines describes one cell for the inspector panel.
func TileLines(t board.TileInfo) []string {
	c := t.Class()
	classes := ""
	for _, m := range []struct {
		on   bool
		name string
	}{{c.A, "A"}, {c.B, "B"}, {c.C, "C"}, {c.D, "D"}, {c.E, "E"}} {
		if m.on {
			classes += m.name
		}
	}
	if classes == "" {
		classes = "-"
	}
	lines := []string{
		fmt.Sprintf("tile %d,%d", t.Pos.X, t.Pos.Y),
		fmt.Sprintf("connex %d [%s]", t.ConnexNumber, classes),
		fmt.Sprintf("stab %.2f  react %.2f", t.Stability, t.Reactivity),
		fmt.Sprintf("energy %.2f", t.Energy),
		fmt.Sprintf("alpha %d/%d %.1f %.1f %.1f", t.Alpha.ID, t.Alpha.Sub, t.Alpha.F1, t.Alpha.F2, t.Alpha.F3),
	}
	var flags []string
	for _, f := range []struct {
		flag board.Flag
		name string
	}{
		{board.FlagSolid, "solid"},
		{board.FlagRegion, "region"},
		{board.FlagMazeFill, "fill"},
		{board.FlagForge, "forge"},
	} {
		if t.Delta.Has(f.flag) {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		lines = append(lines, fmt.Sprintf("flags %v", flags))
	}
	return lines
}
