// Package raster renders drawings to images via
// github.com/srwiley/rasterx.
//
// Rendering strokes every path onto an RGBA canvas sized to the
// drawing plus a margin, optionally capped to a maximum dimension by
// scaling the drawing down to fit. Image space puts the origin at the
// top left with Y growing downward, so a reflected copy of the
// drawing is rendered; the caller's tree is never modified. Curves
// reach the rasterizer as cubic Bezier runs.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"sort"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
)

// circleKappa is the control point distance, as a fraction of the
// radius, that makes a cubic Bezier quarter turn hug a circle.
const circleKappa = 0.5522847498307936

// Config controls rendering.
type Config struct {
	// Scale converts drawing units to pixels.
	Scale float64

	// Margin is the blank border around the drawing, in pixels.
	Margin float64

	// LineWidth is the stroke width in pixels.
	LineWidth float64

	// Stroke is the stroke color.
	Stroke color.Color

	// Background fills the canvas before stroking. Nil leaves the
	// canvas transparent.
	Background color.Color

	// MaxDimension caps the width and height of the output. Drawings
	// that would overflow are scaled down to fit. Zero means no cap.
	MaxDimension int
}

// DefaultConfig returns the standard rendering configuration.
func DefaultConfig() Config {
	return Config{
		Scale:        1,
		Margin:       8,
		LineWidth:    1.5,
		Stroke:       color.Black,
		Background:   color.White,
		MaxDimension: 4096,
	}
}

// Renderer rasterizes drawings.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with the default configuration.
func NewRenderer() *Renderer {
	return &Renderer{config: DefaultConfig()}
}

// NewRendererWithConfig creates a renderer with a custom configuration.
func NewRendererWithConfig(config Config) *Renderer {
	return &Renderer{config: config}
}

// Render rasterizes m onto a fresh image. The drawing itself is not
// modified.
func (r *Renderer) Render(m *model.Model) (*image.RGBA, error) {
	work := m.Mirror(false, true)
	ext := measure.ModelExtents(work)

	scale := r.config.Scale
	if scale <= 0 {
		scale = 1
	}
	width, height := 0.0, 0.0
	if !ext.IsEmpty() {
		width = ext.Width() * scale
		height = ext.Height() * scale
		if limit := float64(r.config.MaxDimension) - 2*r.config.Margin; r.config.MaxDimension > 0 && limit > 0 && (width > limit || height > limit) {
			shrink := limit / math.Max(width, height)
			scale *= shrink
			width *= shrink
			height *= shrink
		}
		work.Scale(scale, true)
		work.OriginateFrom(geom.Point{
			X: r.config.Margin - ext.Min.X*scale,
			Y: r.config.Margin - ext.Min.Y*scale,
		})
	}

	wPx := max(int(math.Ceil(width+2*r.config.Margin)), 1)
	hPx := max(int(math.Ceil(height+2*r.config.Margin)), 1)

	img := image.NewRGBA(image.Rect(0, 0, wPx, hPx))
	if r.config.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(r.config.Background), image.Point{}, draw.Src)
	}

	scanner := rasterx.NewScannerGV(wPx, hPx, img, img.Bounds())
	scanner.SetColor(r.config.Stroke)
	dasher := rasterx.NewDasher(wPx, hPx, scanner)
	dasher.SetStroke(
		fixed.Int26_6(r.config.LineWidth*64), fixed.Int26_6(4<<6),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap,
		rasterx.Round, nil, 0)

	strokeModel(dasher, work)
	return img, nil
}

// Export renders m and writes it to w as PNG.
func (r *Renderer) Export(m *model.Model, w io.Writer) error {
	img, err := r.Render(m)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// ExportToFile renders m into the named PNG file.
func (r *Renderer) ExportToFile(m *model.Model, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating png file: %w", err)
	}
	defer f.Close()

	return r.Export(m, f)
}

func strokeModel(d *rasterx.Dasher, m *model.Model) {
	names := make([]string, 0, len(m.Paths))
	for name := range m.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		strokePath(d, m.Paths[name])
	}

	names = names[:0]
	for name := range m.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		strokeModel(d, m.Models[name])
	}
}

func strokePath(d *rasterx.Dasher, p paths.Path) {
	switch v := p.(type) {
	case *paths.Line:
		d.Start(toFixed(v.Origin))
		d.Line(toFixed(v.End))
		d.Stop(false)
	case *paths.Circle:
		strokeCircle(d, v)
	case *paths.Arc:
		strokeArc(d, v)
	default:
		return
	}
	d.Draw()
	d.Clear()
}

func strokeCircle(d *rasterx.Dasher, c *paths.Circle) {
	k := circleKappa * c.Radius
	right := geom.Point{X: c.Origin.X + c.Radius, Y: c.Origin.Y}
	top := geom.Point{X: c.Origin.X, Y: c.Origin.Y + c.Radius}
	left := geom.Point{X: c.Origin.X - c.Radius, Y: c.Origin.Y}
	bottom := geom.Point{X: c.Origin.X, Y: c.Origin.Y - c.Radius}

	d.Start(toFixed(right))
	d.CubeBezier(
		toFixed(geom.Point{X: right.X, Y: right.Y + k}),
		toFixed(geom.Point{X: top.X + k, Y: top.Y}),
		toFixed(top))
	d.CubeBezier(
		toFixed(geom.Point{X: top.X - k, Y: top.Y}),
		toFixed(geom.Point{X: left.X, Y: left.Y + k}),
		toFixed(left))
	d.CubeBezier(
		toFixed(geom.Point{X: left.X, Y: left.Y - k}),
		toFixed(geom.Point{X: bottom.X - k, Y: bottom.Y}),
		toFixed(bottom))
	d.CubeBezier(
		toFixed(geom.Point{X: bottom.X + k, Y: bottom.Y}),
		toFixed(geom.Point{X: right.X, Y: right.Y - k}),
		toFixed(right))
	d.Stop(true)
}

// strokeArc adds an arc as cubic Bezier segments of at most a quarter
// turn each.
func strokeArc(d *rasterx.Dasher, a *paths.Arc) {
	sweep := a.Sweep()
	if sweep <= 0 || a.Radius <= 0 {
		return
	}

	d.Start(toFixed(a.StartPoint()))

	segments := int(math.Ceil(sweep / 90))
	step := geom.DegToRad(sweep / float64(segments))
	alpha := geom.DegToRad(a.StartAngle)
	for i := 0; i < segments; i++ {
		beta := alpha + step
		k := 4.0 / 3.0 * math.Tan(step/4) * a.Radius

		p3 := geom.Point{
			X: a.Origin.X + a.Radius*math.Cos(beta),
			Y: a.Origin.Y + a.Radius*math.Sin(beta),
		}
		d.CubeBezier(
			toFixed(geom.Point{
				X: a.Origin.X + a.Radius*math.Cos(alpha) - k*math.Sin(alpha),
				Y: a.Origin.Y + a.Radius*math.Sin(alpha) + k*math.Cos(alpha),
			}),
			toFixed(geom.Point{X: p3.X + k*math.Sin(beta), Y: p3.Y - k*math.Cos(beta)}),
			toFixed(p3))
		alpha = beta
	}
	d.Stop(false)
}

func toFixed(p geom.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}
