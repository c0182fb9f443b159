package engine

import (
	"strconv"

	"torus-ca/internal/core"
)

const (
	paramTPS  = "tps"
	paramFill = "fill"

	maxTPS = 240
)

// Parameters reports the driver state for HUDs and the CLI.
func (d *Driver) Parameters() core.ParameterSnapshot {
	size := d.Size()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Automaton",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", d.rule.Name()),
				core.StringParam("state", "State", d.state.String()),
				core.StringParam("generation", "Generation", strconv.FormatUint(d.gen, 10)),
				core.IntParam("population", "Population", d.Population()),
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", size.W),
				core.IntParam("h", "Height", size.H),
			},
		},
		{
			Name: "Controls",
			Params: []core.Parameter{
				core.IntParam(paramTPS, "Generations/s", d.TPS()),
				core.FloatParam(paramFill, "Fill chance", d.fill),
			},
		},
	}}
}

// ParameterControls lists the values adjustable from the HUD.
func (d *Driver) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramTPS, Label: "Generations/s", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxTPS},
		{Key: paramFill, Label: "Fill chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1},
	}
}

// SetIntParameter updates an integer control. It reports false for unknown keys.
func (d *Driver) SetIntParameter(key string, value int) bool {
	if key != paramTPS {
		return false
	}
	d.SetTPS(min(max(value, 1), maxTPS))
	return true
}

// SetFloatParameter updates a float control. It reports false for unknown keys.
func (d *Driver) SetFloatParameter(key string, value float64) bool {
	if key != paramFill {
		return false
	}
	d.SetFill(value)
	return true
}
