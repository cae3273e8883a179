// Frame tool - runs a flock for a number of ticks and renders the final state
// to a PNG file.
//
// Usage: go run ./cmd/frame -ticks 600 -out frame.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boids/config"
	"github.com/pthm-cable/boids/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Flock preset (wrapped, euclidean)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	seed := flag.Int64("seed", 1, "RNG seed")
	ticks := flag.Int("ticks", 600, "Ticks to simulate before rendering")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *preset != "" {
		cfg.Flock.Preset = *preset
		if err := cfg.Recompute(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid preset: %v\n", err)
			os.Exit(1)
		}
	}

	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Boids Frame")
	defer rl.CloseWindow()

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           *seed,
		Config:         cfg,
		StepsPerUpdate: 1,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create flock: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	for i := 0; i < *ticks; i++ {
		g.UpdateHeadless()
	}

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	g.DrawWorld()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Tick %d rendered to: %s (%dx%d, polarization %.3f)\n",
			g.Tick(), *outPath, width, height, g.Polarization())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
