// Package dxf reads and writes drawings as DXF, the tagged text
// exchange format used by AutoCAD and most 2D CAD tools.
//
// The writer targets the R12 dialect: a HEADER section carrying the
// drawing units and extents, then an ENTITIES section of LINE, CIRCLE
// and ARC records. DXF shares the drawing model's conventions (Y grows
// upward, arc angles run counterclockwise), so geometry passes through
// without reflection; the tree is flattened to absolute coordinates
// and child models become layers named after their position in the
// tree.
//
// The reader accepts LINE, CIRCLE, ARC and LWPOLYLINE entities plus
// BLOCK definitions referenced by INSERT, which come back as child
// models with the insertion point as their origin. Entities on
// non-default layers are grouped into child models named after the
// layer. Files that declare a Windows code page in $DWGCODEPAGE are
// decoded before parsing.
package dxf

import (
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

// insunits maps drawing units to the codes the $INSUNITS header
// variable assigns them.
var insunits = map[string]int{
	units.Inch:       1,
	units.Foot:       2,
	units.Millimeter: 4,
	units.Centimeter: 5,
	units.Meter:      6,
}

func unitsFromCode(code int) string {
	for id, c := range insunits {
		if c == code {
			return id
		}
	}
	return ""
}

// Config controls DXF output.
type Config struct {
	// Layer receives the root model's paths. Child models are written
	// to layers named after the child.
	Layer string

	// Precision is the number of decimal places for coordinates.
	Precision int

	// Units is written to $INSUNITS when the drawing does not declare
	// its own units. Leave empty to omit the variable.
	Units string

	// CodePage is written to $DWGCODEPAGE. Leave empty to omit it.
	CodePage string
}

// DefaultConfig returns the standard export configuration.
func DefaultConfig() Config {
	return Config{
		Layer:     "0",
		Precision: 6,
		CodePage:  "ANSI_1252",
	}
}

// Exporter writes drawings as DXF.
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

// Export writes m to w as a DXF document. The drawing itself is not
// modified; a flattened copy supplies the absolute entity coordinates.
func (e *Exporter) Export(m *model.Model, w io.Writer) error {
	work := m.Clone().Originate()

	tw := &tagWriter{precision: e.config.Precision}

	tw.begin("HEADER")
	tw.tag(9, "$ACADVER")
	tw.tag(1, "AC1009")
	if e.config.CodePage != "" {
		tw.tag(9, "$DWGCODEPAGE")
		tw.tag(3, e.config.CodePage)
	}
	if code, ok := insunits[e.drawingUnits(m)]; ok {
		tw.tag(9, "$INSUNITS")
		tw.tag(70, strconv.Itoa(code))
	}
	if ext := measure.ModelExtents(work); !ext.IsEmpty() {
		tw.tag(9, "$EXTMIN")
		tw.point(10, ext.Min)
		tw.tag(9, "$EXTMAX")
		tw.point(10, ext.Max)
	}
	tw.end()

	tw.begin("ENTITIES")
	e.writeEntities(tw, work, "")
	tw.end()

	tw.tag(0, "EOF")

	if _, err := io.WriteString(w, tw.String()); err != nil {
		return fmt.Errorf("writing dxf: %w", err)
	}
	return nil
}

// ExportToFile writes m to the named file as DXF.
func (e *Exporter) ExportToFile(m *model.Model, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating dxf file: %w", err)
	}
	defer f.Close()

	return e.Export(m, f)
}

// ExportToString renders m as a DXF document string.
func (e *Exporter) ExportToString(m *model.Model) (string, error) {
	var b strings.Builder
	if err := e.Export(m, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Exporter) drawingUnits(m *model.Model) string {
	if m.Units != "" {
		return m.Units
	}
	return e.config.Units
}

func (e *Exporter) writeEntities(w *tagWriter, m *model.Model, prefix string) {
	layer := e.config.Layer
	if prefix != "" {
		layer = prefix
	}

	for _, name := range sortedKeys(m.Paths) {
		e.writeEntity(w, m.Paths[name], layer)
	}
	for _, name := range sortedKeys(m.Models) {
		childPrefix := name
		if prefix != "" {
			childPrefix = prefix + "-" + name
		}
		e.writeEntities(w, m.Models[name], childPrefix)
	}
}

func (e *Exporter) writeEntity(w *tagWriter, p paths.Path, layer string) {
	switch v := p.(type) {
	case *paths.Line:
		w.tag(0, "LINE")
		w.tag(8, layer)
		w.point(10, v.Origin)
		w.point(11, v.End)
	case *paths.Circle:
		w.tag(0, "CIRCLE")
		w.tag(8, layer)
		w.point(10, v.Origin)
		w.float(40, v.Radius)
	case *paths.Arc:
		w.tag(0, "ARC")
		w.tag(8, layer)
		w.point(10, v.Origin)
		w.float(40, v.Radius)
		w.float(50, geom.NormalizeDegrees(v.StartAngle))
		w.float(51, geom.NormalizeDegrees(v.EndAngle))
	}
}

// tagWriter accumulates group code / value lines.
type tagWriter struct {
	b         strings.Builder
	precision int
}

func (w *tagWriter) tag(code int, value string) {
	fmt.Fprintf(&w.b, "%d\n%s\n", code, value)
}

func (w *tagWriter) float(code int, v float64) {
	w.tag(code, strconv.FormatFloat(v, 'f', w.precision, 64))
}

// point writes a coordinate pair. DXF assigns Y the X group code plus
// ten.
func (w *tagWriter) point(code int, p geom.Point) {
	w.float(code, p.X)
	w.float(code+10, p.Y)
}

func (w *tagWriter) begin(name string) {
	w.tag(0, "SECTION")
	w.tag(2, name)
}

func (w *tagWriter) end() {
	w.tag(0, "ENDSEC")
}

func (w *tagWriter) String() string {
	return w.b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
