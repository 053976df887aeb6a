package app

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"connex/internal/board"
	"connex/pkg/logger"
)

func TestBuildBoard(t *testing.T) {
	log := logger.Discard()

	Convey("Given command-line overrides only", t, func() {
		cfg := NewConfig()
		cfg.Width, cfg.Height, cfg.Workers = 40, 30, 2

		Convey("A maze that does not fit is dropped", func() {
			b, err := BuildBoard(cfg, log)
			So(err, ShouldBeNil)
			So(b.Width(), ShouldEqual, 40)
			So(b.Config().Workers, ShouldEqual, 2)
			So(b.Config().Seed, ShouldEqual, 42)
			_, ok := b.Maze()
			So(ok, ShouldBeFalse)
		})

		Convey("A large enough board gets its maze", func() {
			cfg.Width, cfg.Height = 112, 112
			b, err := BuildBoard(cfg, log)
			So(err, ShouldBeNil)
			_, ok := b.Maze()
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a yaml file", t, func() {
		path := filepath.Join(t.TempDir(), "board.yaml")
		So(os.WriteFile(path, []byte("board:\n  w: 20\n  h: 10\n  seed: 3\n  maze: false\n"), 0o644), ShouldBeNil)
		cfg := NewConfig()
		cfg.ConfigPath = path

		Convey("The file wins over the flag seed", func() {
			bc, err := cfg.BoardConfig()
			So(err, ShouldBeNil)
			So(bc.Seed, ShouldEqual, 3)
			So(bc.Width, ShouldEqual, 20)
		})

		Convey("Explicit size flags still override", func() {
			cfg.Width = 24
			bc, err := cfg.BoardConfig()
			So(err, ShouldBeNil)
			So(bc.Width, ShouldEqual, 24)
			So(bc.Height, ShouldEqual, 10)
		})

		Convey("A missing file is reported", func() {
			cfg.ConfigPath = path + ".missing"
			_, err := BuildBoard(cfg, log)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSaveAndLoadBoard(t *testing.T) {
	Convey("Given a saved board", t, func() {
		cfg := NewConfig()
		cfg.Width, cfg.Height, cfg.NoMaze = 12, 9, true
		b, err := BuildBoard(cfg, nil)
		So(err, ShouldBeNil)
		path := filepath.Join(t.TempDir(), "b.snap")
		So(SaveBoard(b, path), ShouldBeNil)

		Convey("The load flag restores it", func() {
			cfg.LoadPath = path
			cfg.Width, cfg.Height = 0, 0
			got, err := BuildBoard(cfg, nil)
			So(err, ShouldBeNil)
			So(got.Size(), ShouldResemble, b.Size())
			So(got.Attrs().Energy.Read(), ShouldResemble, b.Attrs().Energy.Read())
		})

		Convey("A missing snapshot is an error", func() {
			cfg.LoadPath = path + ".missing"
			_, err := BuildBoard(cfg, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewSim(t *testing.T) {
	Convey("The board is built by name", t, func() {
		cfg := NewConfig()
		cfg.Width, cfg.Height, cfg.NoMaze = 16, 16, true
		sim, err := NewSim(cfg, logger.Discard())
		So(err, ShouldBeNil)
		_, ok := sim.(*board.Board)
		So(ok, ShouldBeTrue)
	})

	Convey("Unknown names are an error", t, func() {
		cfg := NewConfig()
		cfg.Sim = "nope"
		_, err := NewSim(cfg, logger.Discard())
		So(err, ShouldNotBeNil)
	})
}
