// Package render rasterizes scenes with gg and encodes them as PNG or GIF.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/bookloader/internal/scene"
)

var ErrNoFrames = errors.New("no frames to encode")

// Options control how a scene is rasterized.
type Options struct {
	Width      int     `yaml:"width" mapstructure:"width"`
	Height     int     `yaml:"height" mapstructure:"height"`
	Color      string  `yaml:"color" mapstructure:"color"`
	Background string  `yaml:"background" mapstructure:"background"`
	Caption    bool    `yaml:"caption" mapstructure:"caption"`
	Extent     float64 `yaml:"-" mapstructure:"-"`
}

func DefaultOptions() Options {
	return Options{
		Width:      320,
		Height:     320,
		Color:      "#FFD60A",
		Background: "#000000",
		Extent:     scene.Extent,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Color == "" {
		o.Color = d.Color
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Extent <= 0 {
		o.Extent = d.Extent
	}
	return o
}

// Frame draws sc centered in a Width x Height image. The square of half-size
// Extent model units around the origin fills the shorter side.
func Frame(sc scene.Scene, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(opts.Background))
	dc.SetHexColor(opts.Color)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	w, h := float64(opts.Width), float64(opts.Height)
	s := min(w, h) / (2 * opts.Extent)
	ox, oy := w/2, h/2

	for _, st := range sc.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		dc.SetLineWidth(st.Width * s)
		dc.MoveTo(ox+st.Points[0].X*s, oy+st.Points[0].Y*s)
		for _, p := range st.Points[1:] {
			dc.LineTo(ox+p.X*s, oy+p.Y*s)
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke %s: %w", st.Name, err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	img := toRGBA(dc.Image())
	if opts.Caption {
		drawCaption(img, fmt.Sprintf("t=%.2fs", sc.At), gg.Hex(opts.Color).Color())
	}
	return img, nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func drawCaption(img *image.RGBA, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(6, img.Bounds().Dy()-6),
	}
	d.DrawString(text)
}

// RenderFrames rasterizes scenes concurrently, preserving their order.
func RenderFrames(ctx context.Context, scenes []scene.Scene, opts Options, workers int) ([]*image.RGBA, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]*image.RGBA, len(scenes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Frame(sc, opts)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WritePNGs renders scenes into dir as frame_00000.png, frame_00001.png, ...
func WritePNGs(ctx context.Context, dir string, scenes []scene.Scene, opts Options, workers int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	frames, err := RenderFrames(ctx, scenes, opts, workers)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(frames))
	for i, img := range frames {
		paths[i] = filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
		if err := WritePNG(paths[i], img); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
