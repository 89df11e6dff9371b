// Package svg renders drawings to SVG documents and reads a practical
// subset of SVG back into drawings.
//
// Drawings use mathematical orientation with Y growing upward; SVG
// device space grows downward. The exporter flattens an independent
// copy of the tree, reflects it into device space, and shifts it so the
// geometry sits inside the viewport with a configurable margin. The
// caller's tree is never modified. The importer applies the inverse
// reflection, so a drawing survives a write/read cycle with its shape
// and orientation intact.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

// Config holds rendering options for SVG export.
type Config struct {
	// Margin is the blank border around the drawing, in drawing units.
	Margin float64

	// Scale multiplies drawing units into SVG user units.
	Scale float64

	// StrokeWidth is the stroke width in SVG user units.
	StrokeWidth float64

	// Stroke is the stroke color for every path.
	Stroke string

	// Background fills the viewport when non-empty; empty keeps the
	// canvas transparent.
	Background string

	// Precision is the number of decimals written per coordinate.
	Precision int
}

// DefaultConfig returns sensible defaults for SVG export.
func DefaultConfig() Config {
	return Config{
		Margin:      5,
		Scale:       1,
		StrokeWidth: 1,
		Stroke:      "#000000",
		Background:  "",
		Precision:   4,
	}
}

// Exporter renders drawings to SVG.
type Exporter struct {
	config Config
}

// NewExporter creates an exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration.
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Export writes the drawing to w as a standalone SVG document. A
// drawing that declares millimeter, centimeter, or inch units gets
// physically sized width and height attributes; the viewBox stays in
// user units.
func (e *Exporter) Export(m *model.Model, w io.Writer) error {
	flat := deviceTree(m, e.config.Margin, e.config.Scale)
	ext := measure.ModelExtents(flat)

	width := 2 * e.config.Margin * e.config.Scale
	height := width
	if !ext.IsEmpty() {
		width += ext.Width()
		height += ext.Height()
	}

	attrWidth, attrHeight := e.fmtFloat(width), e.fmtFloat(height)
	if unit := lengthUnit(m.Units); unit != "" && e.config.Scale > 0 {
		attrWidth = e.fmtFloat(width/e.config.Scale) + unit
		attrHeight = e.fmtFloat(height/e.config.Scale) + unit
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		attrWidth, attrHeight, e.fmtFloat(width), e.fmtFloat(height))
	sb.WriteString("\n")

	if e.config.Background != "" {
		fmt.Fprintf(&sb, `  <rect width="100%%" height="100%%" fill="%s"/>`, e.config.Background)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, `  <g fill="none" stroke="%s" stroke-width="%s">`,
		e.config.Stroke, e.fmtFloat(e.config.StrokeWidth))
	sb.WriteString("\n")

	for _, p := range orderedPaths(flat) {
		e.writePath(&sb, p)
	}

	sb.WriteString("  </g>\n</svg>\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

// ExportToFile writes the drawing to a file.
func (e *Exporter) ExportToFile(m *model.Model, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating svg file: %w", err)
	}
	defer f.Close()

	return e.Export(m, f)
}

// ExportToString renders the drawing to a string.
func (e *Exporter) ExportToString(m *model.Model) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(m, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// deviceTree builds an independent copy of the drawing in device
// coordinates: scaled, reflected so Y grows downward, and shifted so
// everything sits margin units inside the top-left corner.
func deviceTree(m *model.Model, margin, scale float64) *model.Model {
	flat := m.Mirror(false, true)
	flat.Scale(scale, true)
	ext := measure.ModelExtents(flat)
	offset := geom.Point{}
	if !ext.IsEmpty() {
		offset = geom.Point{X: margin*scale - ext.Min.X, Y: margin*scale - ext.Min.Y}
	}
	return flat.OriginateFrom(offset)
}

// lengthUnit maps drawing units onto the length units SVG viewport
// attributes accept. Units with no SVG equivalent render unitless.
func lengthUnit(drawingUnits string) string {
	switch drawingUnits {
	case units.Millimeter:
		return "mm"
	case units.Centimeter:
		return "cm"
	case units.Inch:
		return "in"
	}
	return ""
}

// orderedPaths flattens the path maps of an originated tree into a
// stable name order so output is deterministic.
func orderedPaths(m *model.Model) []paths.Path {
	type entry struct {
		key  string
		path paths.Path
	}
	var entries []entry
	m.Walk(func(name string, node *model.Model) {
		for pathName, p := range node.Paths {
			entries = append(entries, entry{key: name + "/" + pathName, path: p})
		}
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	out := make([]paths.Path, len(entries))
	for i, en := range entries {
		out[i] = en.path
	}
	return out
}

func (e *Exporter) writePath(sb *strings.Builder, p paths.Path) {
	switch v := p.(type) {
	case *paths.Line:
		fmt.Fprintf(sb, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
			e.fmtFloat(v.Origin.X), e.fmtFloat(v.Origin.Y), e.fmtFloat(v.End.X), e.fmtFloat(v.End.Y))
		sb.WriteString("\n")
	case *paths.Circle:
		fmt.Fprintf(sb, `    <circle cx="%s" cy="%s" r="%s"/>`,
			e.fmtFloat(v.Origin.X), e.fmtFloat(v.Origin.Y), e.fmtFloat(v.Radius))
		sb.WriteString("\n")
	case *paths.Arc:
		start := v.StartPoint()
		end := v.EndPoint()
		largeArc := 0
		if v.Sweep() > 180 {
			largeArc = 1
		}
		// The device frame is already reflected, so the stored angles
		// advance in SVG's positive sweep direction.
		fmt.Fprintf(sb, `    <path d="M %s %s A %s %s 0 %d 1 %s %s"/>`,
			e.fmtFloat(start.X), e.fmtFloat(start.Y),
			e.fmtFloat(v.Radius), e.fmtFloat(v.Radius), largeArc,
			e.fmtFloat(end.X), e.fmtFloat(end.Y))
		sb.WriteString("\n")
	}
}

func (e *Exporter) fmtFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', e.config.Precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
