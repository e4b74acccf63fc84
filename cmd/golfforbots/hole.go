package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/fileutil"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/lox/golfforbots/internal/tui"
	"github.com/muesli/termenv"
)

// HoleCmd generates one hole and prints it
type HoleCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	JSON    bool   `help:"Print the layout description as JSON"`
	Cell    int    `default:"20" help:"Yards per character cell"`
	NoColor bool   `help:"Draw plain ASCII glyphs"`
	Out     string `type:"path" help:"Also write the layout description to this JSON file"`
}

func (c *HoleCmd) Run() error {
	settings, logger, err := shared.Load(context.Background(), c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}

	seed := settings.ResolveSeed()
	layout, err := course.Build(settings.Par, settings.Difficulty, randutil.New(seed),
		course.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Generated hole",
		"seed", seed,
		"par", layout.Par,
		"bunkers", len(layout.Bunkers),
		"water", len(layout.Water),
		"attempts", layout.Attempts)

	if c.Out != "" {
		if err := fileutil.WriteJSON(c.Out, layout.Description()); err != nil {
			return err
		}
		logger.Info("Wrote hole description", "path", c.Out)
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(layout.Description())
	}

	r := lipgloss.NewRenderer(os.Stdout)
	if c.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	styles := tui.NewStyles(r)
	fmt.Print(tui.Preview(layout, r, c.Cell,
		tui.BallMarker(styles, layout.TeeAnchor()),
		tui.CupMarker(styles, layout.Cup()),
	))
	fmt.Printf("Par %d, %.0f yds, seed %d\n", layout.Par, layout.TeeAnchor().Distance(layout.Cup()), seed)
	fmt.Println(terrainSummary(layout.Raster(c.Cell)))
	return nil
}

// terrainSummary lists the share of the play area each terrain covers.
func terrainSummary(r *course.Raster) string {
	total := len(r.Cells)
	if total == 0 {
		return ""
	}
	terrains := []course.Terrain{course.Fairway, course.Rough, course.Green, course.Teebox, course.Bunker, course.WaterHazard}
	parts := make([]string, 0, len(terrains))
	for _, t := range terrains {
		if n := r.Count(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", t, 100*float64(n)/float64(total)))
		}
	}
	return strings.Join(parts, "  ")
}
