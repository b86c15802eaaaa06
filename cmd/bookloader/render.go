package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/export"
	"github.com/san-kum/bookloader/internal/render"
	"github.com/san-kum/bookloader/internal/scene"
	"github.com/san-kum/bookloader/internal/sim"
	"github.com/san-kum/bookloader/internal/viz"
)

func renderOptions() render.Options {
	opts := cfg.Render
	opts.Extent = scene.Extent
	return opts
}

// sampleScenes runs the sampler at the frame rate and keeps every frame's
// scene.
func sampleScenes(cmd *cobra.Command, fps int) ([]scene.Scene, error) {
	sc := samplerConfig()
	sc.Dt = 1 / float64(fps)

	var scenes []scene.Scene
	sc.Observers = []sim.Observer{sim.ObserverFunc(func(snap book.Snapshot) {
		scenes = append(scenes, scene.Build(snap))
	})}
	if _, err := sim.Run(cmd.Context(), sc); err != nil {
		return nil, err
	}
	return scenes, nil
}

func renderFrames(cmd *cobra.Command, args []string) error {
	fps := cfg.FPS

	scenes, err := sampleScenes(cmd, fps)
	if err != nil {
		return err
	}
	opts := renderOptions()
	logger.Info("rendering", "frames", len(scenes), "out", outPath, "width", opts.Width, "height", opts.Height)

	if strings.EqualFold(filepath.Ext(outPath), ".gif") {
		if err := render.SaveGIF(cmd.Context(), outPath, scenes, opts, fps); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", len(scenes), outPath)
		return nil
	}

	paths, err := render.WritePNGs(cmd.Context(), outPath, scenes, opts, workers)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", len(paths), outPath)
	return nil
}

// sceneAt returns the scene t seconds after mounting.
func sceneAt(cmd *cobra.Command, t float64) (scene.Scene, error) {
	sc := samplerConfig()
	sc.Duration = t
	sc.Dt = t
	if t <= 0 {
		sc.Duration, sc.Dt = 1, 1
	}

	var last scene.Scene
	sc.Observers = []sim.Observer{sim.ObserverFunc(func(snap book.Snapshot) {
		if snap.At.Seconds() <= t+1e-9 {
			last = scene.Build(snap)
		}
	})}
	if _, err := sim.Run(cmd.Context(), sc); err != nil {
		return scene.Scene{}, err
	}
	return last, nil
}

func writeSVG(cmd *cobra.Command, args []string) error {
	sc, err := sceneAt(cmd, at)
	if err != nil {
		return err
	}
	opts := renderOptions()

	var svg string
	if braille {
		canvas := viz.NewCanvas(opts.Width/8, opts.Height/16)
		canvas.DrawScene(sc, scene.Extent)
		svg = export.CanvasToSVG(canvas, 4, opts.Color, opts.Background)
	} else {
		svg = export.SceneToSVG(sc, opts.Width, opts.Height, opts.Color, opts.Background)
	}

	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
