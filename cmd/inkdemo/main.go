// Command inkdemo runs a synthetic jittery stroke through the ink
// pipeline and renders the raw and corrected polylines side by side.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/ink"
)

func main() {
	var (
		width  = flag.Int("width", 1024, "image width")
		height = flag.Int("height", 512, "image height")
		output = flag.String("output", "inkdemo.png", "output file")
		seed   = flag.Int64("seed", 42, "jitter random seed")
		jitter = flag.Float64("jitter", 6.0, "positional jitter amplitude")
	)
	flag.Parse()

	raw := synthesizeStroke(*seed, *jitter)

	var corrected []ink.Sample
	cfg := ink.DefaultConfig()
	cfg.Correction.Smoothing.Method = ink.MethodCatmullRom
	cfg.Correction.Smoothing.Strength = 0.6

	p, err := ink.NewPipeline(ink.DisplayMetrics{Width: 1024, Height: 1024},
		ink.WithConfig(cfg),
		ink.WithEmit(func(ev ink.Event) {
			corrected = append(corrected, ev.Sample)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	defer p.Destroy()

	for _, ev := range raw {
		p.HandleRaw(ev)
	}

	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	fill(img, color.RGBA{245, 246, 248, 255})

	// Raw polyline on the left half, corrected stroke on the right.
	rawPts := make([]ink.Point, len(raw))
	for i, ev := range raw {
		rawPts[i] = ink.Pt(ev.X, ev.Y)
	}
	corrPts := make([]ink.Point, len(corrected))
	for i, s := range corrected {
		corrPts[i] = s.Point()
	}

	half := float64(*width) / 2
	scale := float64(*height) / 1024
	drawPolyline(img, rawPts, 0, scale, 2.0, color.RGBA{200, 60, 60, 255})
	drawPolyline(img, corrPts, half, scale, 2.0, color.RGBA{40, 90, 200, 255})

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	log.Printf("Demo saved to %s (%d raw events, %d corrected points)",
		*output, len(raw), len(corrected))
}

// synthesizeStroke produces a sine-wave stroke with positional jitter and
// a pressure envelope, sampled every 4ms the way a high-rate pen would
// report.
func synthesizeStroke(seed int64, jitter float64) []ink.RawPointerEvent {
	rng := rand.New(rand.NewSource(seed))
	const n = 160

	events := make([]ink.RawPointerEvent, 0, n+2)
	tMs := 0.0
	sample := func(i int) (x, y, pressure float64) {
		t := float64(i) / float64(n)
		x = 64 + t*896
		y = 512 + 220*math.Sin(t*3*math.Pi)
		x += (rng.Float64()*2 - 1) * jitter
		y += (rng.Float64()*2 - 1) * jitter
		pressure = 0.25 + 0.6*math.Sin(t*math.Pi)
		return x, y, pressure
	}

	x, y, pr := sample(0)
	events = append(events, ink.RawPointerEvent{
		Kind: ink.KindStart, X: x, Y: y, Pressure: pr,
		PointerType: "pen", TimeMs: tMs,
	})
	for i := 1; i < n; i++ {
		tMs += 4
		x, y, pr = sample(i)
		events = append(events, ink.RawPointerEvent{
			Kind: ink.KindMove, X: x, Y: y, Pressure: pr,
			PointerType: "pen", TimeMs: tMs,
		})
	}
	tMs += 4
	x, y, pr = sample(n)
	events = append(events, ink.RawPointerEvent{
		Kind: ink.KindEnd, X: x, Y: y, Pressure: pr,
		PointerType: "pen", TimeMs: tMs,
	})
	return events
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawPolyline rasterizes a canvas-space polyline as a chain of thick
// quads, offset horizontally and scaled into image coordinates.
func drawPolyline(img *image.RGBA, pts []ink.Point, offsetX, scale, width float64, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())

	for i := 1; i < len(pts); i++ {
		p0 := ink.Pt(offsetX+pts[i-1].X*scale/2, pts[i-1].Y*scale)
		p1 := ink.Pt(offsetX+pts[i].X*scale/2, pts[i].Y*scale)

		d := p1.Sub(p0)
		l := d.Length()
		if l == 0 {
			continue
		}
		// Unit normal scaled to half the stroke width.
		nx := -d.Y / l * width / 2
		ny := d.X / l * width / 2

		r.MoveTo(float32(p0.X+nx), float32(p0.Y+ny))
		r.LineTo(float32(p1.X+nx), float32(p1.Y+ny))
		r.LineTo(float32(p1.X-nx), float32(p1.Y-ny))
		r.LineTo(float32(p0.X-nx), float32(p0.Y-ny))
		r.ClosePath()
	}

	r.Draw(img, b, image.NewUniform(c), image.Point{})
}
