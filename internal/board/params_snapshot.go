package board

import (
	"strconv"

	"connex/internal/core"
)

// Parameters reports the board settings and live tick statistics.
func (b *Board) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				intParam("w", "Width", b.w),
				intParam("h", "Height", b.h),
				int64Param("seed", "Seed", b.cfg.Seed),
				int64Param("maze_seed", "Maze seed", b.cfg.MazeSeed),
			},
		},
		{
			Name: "Simulation",
			Params: []core.Parameter{
				floatParam("tick_dt", "Tick dt", b.cfg.TickSeconds),
				intParam("workers", "Workers", b.cfg.Workers),
				floatParam("total_energy", "Total energy", float64(b.totalEnergy)),
				floatParam("tick_avg_ms", "Tick avg (ms)", float64(b.AvgTick().Microseconds())/1000),
			},
		},
	}
	if m, ok := b.Maze(); ok {
		groups = append(groups, core.ParameterGroup{
			Name: "Maze",
			Params: []core.Parameter{
				intParam("maze_nodes", "Lattice nodes", len(m.Visited)),
				intParam("maze_doors", "Outside doors", len(m.OutsideDoors)),
				boolParam("maze_connected", "Room connected", m.RoomConnected),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable settings.
func (b *Board) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "tick_dt", Label: "Tick dt", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 256, HasMin: true, HasMax: true},
	}
}

// SetParameter applies a HUD adjustment.
func (b *Board) SetParameter(key string, value float64) bool {
	switch key {
	case "tick_dt":
		if value < 0 || value > 1 {
			return false
		}
		b.cfg.TickSeconds = value
		return true
	case "workers":
		if value < 0 {
			return false
		}
		b.cfg.Workers = int(value)
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}
