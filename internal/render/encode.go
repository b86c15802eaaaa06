package render

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/bookloader/internal/scene"
)

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteGIF encodes frames as a looping GIF. delay is in hundredths of a
// second per frame.
func WriteGIF(w io.Writer, frames []*image.RGBA, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if delay < 1 {
		delay = 1
	}

	anim := gif.GIF{LoopCount: 0}
	for _, src := range frames {
		pal := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.Draw(pal, pal.Bounds(), src, src.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// SaveGIF renders scenes and writes them to path at fps frames per second.
func SaveGIF(ctx context.Context, path string, scenes []scene.Scene, opts Options, fps int) error {
	if len(scenes) == 0 {
		return ErrNoFrames
	}
	if fps <= 0 {
		fps = 30
	}
	frames, err := RenderFrames(ctx, scenes, opts, 0)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteGIF(f, frames, 100/fps); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
