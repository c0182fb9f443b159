package ui

import (
	"reflect"
	"testing"

	"torus-ca/internal/core"
)

func TestStepTargetClampsInt(t *testing.T) {
	ctrl := core.ParameterControl{Key: "tps", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 3}

	if v, ok := stepTarget(ctrl, 2, 1); !ok || v != 3 {
		t.Fatalf("expected 3, got %v (%v)", v, ok)
	}
	if _, ok := stepTarget(ctrl, 3, 1); ok {
		t.Fatalf("expected no movement at the upper bound")
	}
	if _, ok := stepTarget(ctrl, 1, -1); ok {
		t.Fatalf("expected no movement at the lower bound")
	}
	if _, ok := stepTarget(ctrl, 2, 0); ok {
		t.Fatalf("zero direction must not move")
	}
}

func TestStepTargetFloatDefaultsStep(t *testing.T) {
	ctrl := core.ParameterControl{Key: "fill", Type: core.ParamTypeFloat, Min: 0, Max: 1}
	v, ok := stepTarget(ctrl, 0.5, -1)
	if !ok || v < 0.449 || v > 0.451 {
		t.Fatalf("expected 0.45, got %v (%v)", v, ok)
	}
	v, ok = stepTarget(ctrl, 0.98, 1)
	if !ok || v != 1 {
		t.Fatalf("expected clamp to 1, got %v (%v)", v, ok)
	}
}

func TestStepTargetIgnoresStrings(t *testing.T) {
	ctrl := core.ParameterControl{Key: "rule", Type: core.ParamTypeString}
	if _, ok := stepTarget(ctrl, 0, 1); ok {
		t.Fatalf("string controls are not adjustable")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		ctrl core.ParameterControl
		v    float64
		want string
	}{
		{core.ParameterControl{Type: core.ParamTypeInt}, 12, "12"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.05}, 0.25, "0.25"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.5}, 0.34, "0.3"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.005}, 0.125, "0.125"},
	}
	for _, c := range cases {
		if got := formatValue(c.ctrl, c.v); got != c.want {
			t.Fatalf("formatValue(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestStatusLinesSkipsControls(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "A", Params: []core.Parameter{
			core.StringParam("rule", "Rule", "HighLife"),
			core.IntParam("tps", "Generations/s", 10),
		}},
		{Name: "B", Params: []core.Parameter{core.IntParam("w", "Width", 8)}},
	}}
	controls := []core.ParameterControl{{Key: "tps"}}
	got := statusLines(snap, controls)
	want := []string{"Rule: HighLife", "Width: 8"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseValue(t *testing.T) {
	if v, ok := parseValue(core.FloatParam("fill", "Fill", 0.3)); !ok || v != 0.3 {
		t.Fatalf("expected 0.3, got %v (%v)", v, ok)
	}
	if _, ok := parseValue(core.StringParam("rule", "Rule", "life")); ok {
		t.Fatalf("string parameters are not numeric")
	}
}
