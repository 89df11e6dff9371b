// Package pdf writes drawings as single-page PDF documents via
// github.com/jung-kurt/gofpdf.
//
// The page is sized to the drawing plus a margin, with millimeters as
// the page unit. PDF pages put the origin at the top left with Y
// growing downward, so the exporter renders a reflected copy of the
// drawing the same way the svg package does; the caller's tree is
// never modified. Arcs become cubic Bezier runs, one segment per
// quarter turn.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
)

// Config controls PDF output.
type Config struct {
	// Margin is the blank border around the drawing, in page
	// millimeters.
	Margin float64

	// Scale multiplies drawing units into page millimeters.
	Scale float64

	// LineWidth is the stroke width in page millimeters.
	LineWidth float64

	// Stroke holds the stroke color as 0-255 RGB components.
	Stroke [3]int

	// Title is written into the document metadata when set.
	Title string
}

// DefaultConfig returns the standard export configuration.
func DefaultConfig() Config {
	return Config{
		Margin:    10,
		Scale:     1,
		LineWidth: 0.2,
	}
}

// Exporter writes drawings as PDF documents.
type Exporter struct {
	config Config
}

// NewExporter creates an exporter with the default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with a custom configuration.
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Export writes m to w as a one-page PDF.
func (e *Exporter) Export(m *model.Model, w io.Writer) error {
	work := m.Mirror(false, true).Scale(e.config.Scale, true)
	ext := measure.ModelExtents(work)

	width := 2 * e.config.Margin
	height := width
	if !ext.IsEmpty() {
		width += ext.Width()
		height += ext.Height()
		work.OriginateFrom(geom.Point{
			X: e.config.Margin - ext.Min.X,
			Y: e.config.Margin - ext.Min.Y,
		})
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	if e.config.Title != "" {
		doc.SetTitle(e.config.Title, true)
	}
	doc.AddPage()
	doc.SetDrawColor(e.config.Stroke[0], e.config.Stroke[1], e.config.Stroke[2])
	doc.SetLineWidth(e.config.LineWidth)

	drawModel(doc, work)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// ExportToFile writes m to the named file as PDF.
func (e *Exporter) ExportToFile(m *model.Model, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating pdf file: %w", err)
	}
	defer f.Close()

	return e.Export(m, f)
}

// ExportToBytes renders m as an in-memory PDF document.
func (e *Exporter) ExportToBytes(m *model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawModel(doc *gofpdf.Fpdf, m *model.Model) {
	names := make([]string, 0, len(m.Paths))
	for name := range m.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		drawPath(doc, m.Paths[name])
	}

	names = names[:0]
	for name := range m.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		drawModel(doc, m.Models[name])
	}
}

func drawPath(doc *gofpdf.Fpdf, p paths.Path) {
	switch v := p.(type) {
	case *paths.Line:
		doc.MoveTo(v.Origin.X, v.Origin.Y)
		doc.LineTo(v.End.X, v.End.Y)
		doc.DrawPath("D")
	case *paths.Circle:
		doc.Circle(v.Origin.X, v.Origin.Y, v.Radius, "D")
	case *paths.Arc:
		drawArc(doc, v)
	}
}

// drawArc strokes an arc as cubic Bezier segments of at most a
// quarter turn each.
func drawArc(doc *gofpdf.Fpdf, a *paths.Arc) {
	sweep := a.Sweep()
	if sweep <= 0 || a.Radius <= 0 {
		return
	}

	start := a.StartPoint()
	doc.MoveTo(start.X, start.Y)

	segments := int(math.Ceil(sweep / 90))
	step := geom.DegToRad(sweep / float64(segments))
	alpha := geom.DegToRad(a.StartAngle)
	for i := 0; i < segments; i++ {
		beta := alpha + step
		k := 4.0 / 3.0 * math.Tan(step/4) * a.Radius

		p0x := a.Origin.X + a.Radius*math.Cos(alpha)
		p0y := a.Origin.Y + a.Radius*math.Sin(alpha)
		p3x := a.Origin.X + a.Radius*math.Cos(beta)
		p3y := a.Origin.Y + a.Radius*math.Sin(beta)

		doc.CurveBezierCubicTo(
			p0x-k*math.Sin(alpha), p0y+k*math.Cos(alpha),
			p3x+k*math.Sin(beta), p3y-k*math.Cos(beta),
			p3x, p3y)
		alpha = beta
	}
	doc.DrawPath("D")
}
