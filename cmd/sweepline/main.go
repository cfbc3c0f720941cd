package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/sweepline"
	"github.com/tdewolff/sweepline/render"
)

type Check struct {
	Format  string  `short:"f" default:"" desc:"Input format, dump or geojson (default from extension)"`
	Epsilon float64 `short:"e" default:"1e-7" desc:"Tolerance for coordinate equality"`
	Workers int     `short:"w" default:"1" desc:"Number of group pairs checked concurrently"`
	All     bool    `short:"a" desc:"Collect and print all intersections"`
	Plot    string  `short:"p" desc:"Plot connected fraction per timestep to file"`
	Render  string  `short:"r" desc:"Render every timestep to file, %d is replaced by the timestep"`
	Verbose bool    `short:"v" desc:"Verbose"`
	Input   string  `index:"0" desc:"Input file"`
}

func main() {
	root := argp.NewCmd(&Check{}, "Connectivity of segment groups by sweep-line intersection detection")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Check) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	level := slog.LevelInfo
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	steps, err := cmd.read()
	if err != nil {
		return err
	}
	log.Debug("read input", "file", cmd.Input, "timesteps", len(steps))

	opts := sweepline.DefaultOptions
	opts.Epsilon = cmd.Epsilon
	opts.CollectAll = cmd.All
	opts.Workers = cmd.Workers
	checker := sweepline.NewChecker(opts)

	reports := make([]sweepline.Report, 0, len(steps))
	for i, groups := range steps {
		runs := checker.Runs()
		r, err := checker.Check(groups)
		if err != nil {
			return fmt.Errorf("timestep %d: %w", i, err)
		}
		reports = append(reports, r)
		log.Debug("checked timestep", "timestep", i, "groups", len(groups), "pairs", len(r.Pairs), "skipped", r.Skipped, "runs", checker.Runs()-runs)

		fmt.Printf("%d %d %d %.4f\n", i, r.Count(), r.Total, r.Fraction())
		zs := []sweepline.Intersection{}
		for _, pair := range r.Pairs {
			zs = append(zs, pair.Intersections...)
		}
		if cmd.All {
			for _, z := range zs {
				fmt.Println("  ", z)
			}
		}

		if cmd.Render != "" {
			filename := cmd.Render
			if strings.Contains(filename, "%d") {
				filename = fmt.Sprintf(filename, i)
			}
			p, err := render.Snapshot(fmt.Sprintf("Timestep %d", i), groups, zs)
			if err != nil {
				return err
			} else if err := render.Write(filename, p, 160.0, 160.0); err != nil {
				return err
			}
			log.Info("rendered timestep", "timestep", i, "file", filename)
		}
	}

	if cmd.Plot != "" {
		p, err := render.Fractions(filepath.Base(cmd.Input), reports)
		if err != nil {
			return err
		} else if err := render.Write(cmd.Plot, p, 160.0, 100.0); err != nil {
			return err
		}
		log.Info("plotted connected fraction", "file", cmd.Plot)
	}
	return nil
}

func (cmd *Check) read() ([][]sweepline.Group, error) {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return nil, err
	}

	format := cmd.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(cmd.Input)) {
		case ".json", ".geojson":
			format = "geojson"
		default:
			format = "dump"
		}
	}

	switch format {
	case "dump":
		return sweepline.ParseDump(bytes.NewReader(b))
	case "geojson":
		groups, err := sweepline.ParseGeoJSON(b)
		if err != nil {
			return nil, err
		}
		return [][]sweepline.Group{groups}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}
