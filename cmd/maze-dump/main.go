package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"connex/internal/board"
	"connex/internal/core"
	"connex/pkg/logger"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	configPath := flag.String("config", "", "yaml file with a board section")
	seed := flag.Int64("maze-seed", 0, "maze seed, 0 uses the configured one")
	full := flag.Bool("full", false, "print the whole board instead of the maze region")
	var overrides kvList
	flag.Var(&overrides, "set", "board option in key=value form (repeatable), e.g. w=128")
	flag.Parse()

	log := logger.FromEnv()
	cfg, err := loadConfig(*configPath, overrides)
	if err != nil {
		log.WithError(err).Fatal("bad configuration")
	}
	cfg.Maze = false
	if *seed != 0 {
		cfg.MazeSeed = *seed
	}

	b, err := board.NewWithLogger(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("cannot build board")
	}
	res, err := b.GenerateMaze(cfg.MazeParams, cfg.MazeSeed)
	if err != nil {
		log.WithError(err).Fatal("maze generation failed")
	}
	log.WithFields(logrus.Fields{
		"region":    fmt.Sprintf("%v..%v", res.Region.Min, res.Region.Max),
		"nodes":     len(res.Visited),
		"doors":     len(res.OutsideDoors),
		"connected": res.RoomConnected,
	}).Info("maze generated")

	area := res.Region
	if *full {
		area = core.Rect{Max: core.Point{X: b.Width(), Y: b.Height()}}
	}
	for _, line := range renderASCII(b, res, area) {
		fmt.Fprintln(os.Stdout, line)
	}
}

// loadConfig reads the yaml file when given, then applies key=value
// overrides through the same keys the registry factory accepts.
func loadConfig(path string, overrides kvList) (board.Config, error) {
	opts := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return board.Config{}, fmt.Errorf("override %q: want key=value", kv)
		}
		opts[key] = value
	}
	if path == "" {
		return board.FromMap(opts), nil
	}
	cfg, err := board.FromYaml(path)
	if err != nil {
		return board.Config{}, err
	}
	if len(opts) > 0 {
		base := board.FromMap(opts)
		for key := range opts {
			switch key {
			case "w":
				cfg.Width = base.Width
			case "h":
				cfg.Height = base.Height
			case "seed":
				cfg.Seed = base.Seed
			case "workers":
				cfg.Workers = base.Workers
			case "maze_seed":
				cfg.MazeSeed = base.MazeSeed
			case "pos_x":
				cfg.PosX = base.PosX
			case "pos_y":
				cfg.PosY = base.PosY
			case "energy_min":
				cfg.Fill.EnergyMin = base.Fill.EnergyMin
			case "energy_max":
				cfg.Fill.EnergyMax = base.Fill.EnergyMax
			case "stability_min":
				cfg.Fill.StabilityMin = base.Fill.StabilityMin
			case "stability_max":
				cfg.Fill.StabilityMax = base.Fill.StabilityMax
			case "reactivity_min":
				cfg.Fill.ReactivityMin = base.Fill.ReactivityMin
			case "reactivity_max":
				cfg.Fill.ReactivityMax = base.Fill.ReactivityMax
			case "connex_min":
				cfg.Fill.ConnexMin = base.Fill.ConnexMin
			case "connex_max":
				cfg.Fill.ConnexMax = base.Fill.ConnexMax
			case "tick_dt", "maze":
			default:
				cfg.MazeParams = base.MazeParams
			}
		}
		cfg.Fill = cfg.Fill.Ordered()
	}
	return cfg, nil
}

// renderASCII draws area with one rune per cell:
//
//	#  wall      +  charged wall   (space) passage
//	F  forge     D  door           .  outside the maze region
func renderASCII(b *board.Board, res board.MazeResult, area core.Rect) []string {
	doors := make(map[int]bool)
	for _, d := range res.OutsideDoors {
		doors[d] = true
	}
	for _, d := range res.RoomDoors {
		doors[d] = true
	}
	a := b.Attrs()
	st, en := a.Stability.Read(), a.Energy.Read()
	lines := make([]string, 0, area.Dy())
	var sb strings.Builder
	for y := area.Min.Y; y < area.Max.Y; y++ {
		sb.Reset()
		for x := area.Min.X; x < area.Max.X; x++ {
			p := core.Point{X: x, Y: y}
			i := p.Index(b.Width())
			switch {
			case !res.Region.Contains(p):
				sb.WriteByte('.')
			case i == res.Forge:
				sb.WriteByte('F')
			case doors[i]:
				sb.WriteByte('D')
			case st[i] != 0 && en[i] > 0:
				sb.WriteByte('+')
			case st[i] != 0:
				sb.WriteByte('#')
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}
