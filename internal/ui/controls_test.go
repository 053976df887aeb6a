package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"connex/internal/board"
	"connex/internal/core"
)

func TestStepTarget(t *testing.T) {
	Convey("Given a bounded float control", t, func() {
		ctrl := core.ParameterControl{Key: "tick_dt", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true}

		Convey("A step moves by the configured increment", func() {
			v, ok := stepTarget(ctrl, 0.1, 1)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 0.15, 1e-9)
		})

		Convey("Steps clamp to the range", func() {
			v, ok := stepTarget(ctrl, 0.98, 1)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1.0)
			_, ok = stepTarget(ctrl, 1, 1)
			So(ok, ShouldBeFalse)
			_, ok = stepTarget(ctrl, 0, -1)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an int control without a step", t, func() {
		ctrl := core.ParameterControl{Key: "workers", Type: core.ParamTypeInt, Min: 0, HasMin: true}

		Convey("It steps by one and rounds", func() {
			v, ok := stepTarget(ctrl, 4, -1)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 3.0)
			So(formatValue(ctrl, v), ShouldEqual, "3")
		})
	})

	Convey("Bool controls are not steppable", t, func() {
		_, ok := stepTarget(core.ParameterControl{Type: core.ParamTypeBool}, 0, 1)
		So(ok, ShouldBeFalse)
	})
}

func TestParseAndFormat(t *testing.T) {
	Convey("Snapshot values parse by control type", t, func() {
		f := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.005}
		v, ok := parseValue(f, "0.125")
		So(ok, ShouldBeTrue)
		So(formatValue(f, v), ShouldEqual, "0.125")

		i := core.ParameterControl{Type: core.ParamTypeInt}
		_, ok = parseValue(i, "x")
		So(ok, ShouldBeFalse)
	})
}

func TestTileLines(t *testing.T) {
	Convey("A forge tile lists its flags and classes", t, func() {
		info := board.TileInfo{
			Pos:          core.Point{X: 3, Y: 4},
			ConnexNumber: 20,
			Delta:        board.Flags(0).With(board.FlagForge).With(board.FlagRegion),
		}
		lines := TileLines(info)
		So(lines[0], ShouldEqual, "tile 3,4")
		So(lines[1], ShouldEqual, "connex 20 [DE]")
		So(lines[len(lines)-1], ShouldEqual, "flags [region forge]")
	})

	Convey("An unclassified tile shows a dash", t, func() {
		lines := TileLines(board.TileInfo{})
		So(lines[1], ShouldEqual, "connex 0 [-]")
		So(len(lines), ShouldEqual, 5)
	})
}
