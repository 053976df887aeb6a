package app

import (
	"flag"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigBind(t *testing.T) {
	Convey("Given a bound flag set", t, func() {
		cfg := NewConfig()
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		cfg.Bind(fs)

		Convey("Defaults survive an empty command line", func() {
			So(fs.Parse(nil), ShouldBeNil)
			So(cfg.Sim, ShouldEqual, "board")
			So(cfg.Options(), ShouldResemble, map[string]string{"seed": "42"})
		})

		Convey("Overrides reach the factory options", func() {
			So(fs.Parse([]string{"-w", "64", "-h", "32", "-workers", "2", "-no-maze", "-seed", "7", "-config", "b.yaml"}), ShouldBeNil)
			So(cfg.ConfigPath, ShouldEqual, "b.yaml")
			So(cfg.Options(), ShouldResemble, map[string]string{
				"seed": "7", "w": "64", "h": "32", "workers": "2", "maze": "false",
			})
		})
	})
}
