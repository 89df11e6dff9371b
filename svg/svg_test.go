package svg

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

const tolerance = 1e-9

// ============================================================================
// Export Tests
// ============================================================================

func TestExportLine(t *testing.T) {
	m := model.New().AddPath("seg", paths.NewLine(geom.Point{}, geom.Point{X: 10, Y: 5}))

	out, err := NewExporter().ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	// Device space flips Y and pads the default 5 unit margin.
	for _, want := range []string{
		`viewBox="0 0 20 15"`,
		`<line x1="5" y1="10" x2="15" y2="5"/>`,
		`stroke="#000000"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCircle(t *testing.T) {
	m := model.New().AddPath("ring", paths.NewCircle(geom.Point{}, 2))

	cfg := DefaultConfig()
	cfg.Margin = 1
	out, err := NewExporterWithConfig(cfg).ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	if !strings.Contains(out, `<circle cx="3" cy="3" r="2"/>`) {
		t.Errorf("output missing centered circle:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 6 6"`) {
		t.Errorf("output missing viewBox:\n%s", out)
	}
}

func TestExportArcSweep(t *testing.T) {
	m := model.New().AddPath("bend", paths.NewArc(geom.Point{}, 1, 0, 90))

	out, err := NewExporter().ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	if !strings.Contains(out, `d="M 5 5 A 1 1 0 0 1 6 6"`) {
		t.Errorf("output missing arc path:\n%s", out)
	}
}

func TestExportEmptyDrawing(t *testing.T) {
	out, err := NewExporter().ExportToString(model.New())
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	if !strings.Contains(out, `viewBox="0 0 10 10"`) {
		t.Errorf("empty drawing should still carry the margin viewport:\n%s", out)
	}
}

func TestExportBackgroundAndScale(t *testing.T) {
	m := model.New().AddPath("seg", paths.NewLine(geom.Point{}, geom.Point{X: 1, Y: 0}))

	cfg := DefaultConfig()
	cfg.Background = "#ffffff"
	cfg.Scale = 10
	cfg.Margin = 0
	out, err := NewExporterWithConfig(cfg).ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	if !strings.Contains(out, `fill="#ffffff"`) {
		t.Errorf("output missing background:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 10 0"`) {
		t.Errorf("scale not applied to viewport:\n%s", out)
	}
}

func TestExportDoesNotMutate(t *testing.T) {
	m := model.New().AddPath("seg", paths.NewLine(geom.Point{}, geom.Point{X: 10, Y: 5}))
	m.Origin = &geom.Point{X: 3, Y: 3}

	if _, err := NewExporter().ExportToString(m); err != nil {
		t.Fatalf("exporting: %v", err)
	}

	if *m.Origin != (geom.Point{X: 3, Y: 3}) {
		t.Errorf("origin = %+v, want {3 3} untouched", *m.Origin)
	}
	seg := m.Paths["seg"].(*paths.Line)
	if seg.End != (geom.Point{X: 10, Y: 5}) {
		t.Errorf("line end = %+v, want {10 5} untouched", seg.End)
	}
}

func TestExportUnitsAttribute(t *testing.T) {
	m := model.New().AddPath("edge", paths.NewLine(geom.Point{}, geom.Point{X: 20}))
	m.Units = units.Millimeter

	out, err := NewExporter().ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	for _, want := range []string{
		`width="30mm"`,
		`height="10mm"`,
		`viewBox="0 0 30 10"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportUnitsAttributeScaled(t *testing.T) {
	m := model.New().AddPath("edge", paths.NewLine(geom.Point{}, geom.Point{X: 20}))
	m.Units = units.Inch

	cfg := DefaultConfig()
	cfg.Scale = 10
	out, err := NewExporterWithConfig(cfg).ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	// Physical size stays 30 x 10 inches while user units scale up.
	for _, want := range []string{
		`width="30in"`,
		`height="10in"`,
		`viewBox="0 0 300 100"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportUnitsWithoutSVGEquivalent(t *testing.T) {
	m := model.New().AddPath("edge", paths.NewLine(geom.Point{}, geom.Point{X: 20}))
	m.Units = units.Foot

	out, err := NewExporter().ExportToString(m)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	if !strings.Contains(out, `width="30"`) {
		t.Errorf("feet have no svg length unit, want unitless width:\n%s", out)
	}
}

// ============================================================================
// Import Tests
// ============================================================================

func TestReadBasicShapes(t *testing.T) {
	doc := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
  <line x1="0" y1="0" x2="10" y2="0"/>
  <circle cx="5" cy="5" r="2"/>
</svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if got := m.PathCount(); got != 2 {
		t.Fatalf("path count = %d, want 2", got)
	}

	ext := measure.ModelExtents(m)
	if !geom.Equalish(ext.Min, geom.Point{}, tolerance) {
		t.Errorf("extents min = %+v, want origin", ext.Min)
	}
	if math.Abs(ext.Width()-10) > tolerance || math.Abs(ext.Height()-7) > tolerance {
		t.Errorf("extents = %v x %v, want 10 x 7", ext.Width(), ext.Height())
	}
}

func TestReadGroupTranslate(t *testing.T) {
	doc := `<svg><g id="wheel" transform="translate(10, 0)"><circle cx="0" cy="0" r="2"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	wheel := m.Models["wheel"]
	if wheel == nil {
		t.Fatal("missing wheel group")
	}
	if wheel.PathCount() != 1 {
		t.Fatalf("wheel path count = %d, want 1", wheel.PathCount())
	}

	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()-4) > tolerance || math.Abs(ext.Height()-4) > tolerance {
		t.Errorf("extents = %v x %v, want 4 x 4", ext.Width(), ext.Height())
	}
	if !geom.Equalish(ext.Min, geom.Point{}, tolerance) {
		t.Errorf("extents min = %+v, want origin", ext.Min)
	}
}

func TestReadGroupRotate(t *testing.T) {
	doc := `<svg><g transform="rotate(90)"><line x1="10" y1="0" x2="20" y2="0"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()) > tolerance || math.Abs(ext.Height()-10) > tolerance {
		t.Errorf("extents = %v x %v, want 0 x 10 for a rotated line", ext.Width(), ext.Height())
	}
}

func TestReadGroupTranslateScale(t *testing.T) {
	doc := `<svg><g id="wheel" transform="translate(5,0) scale(2)"><circle cx="0" cy="0" r="3"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	wheel := m.Models["wheel"]
	if wheel == nil {
		t.Fatal("missing wheel group")
	}

	var radius float64
	for _, p := range wheel.Paths {
		radius = p.(*paths.Circle).Radius
	}
	if math.Abs(radius-6) > tolerance {
		t.Errorf("radius = %v, want 6 after scale(2)", radius)
	}

	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()-12) > tolerance || math.Abs(ext.Height()-12) > tolerance {
		t.Errorf("extents = %v x %v, want 12 x 12", ext.Width(), ext.Height())
	}
}

func TestReadGroupMatrix(t *testing.T) {
	doc := `<svg><g transform="matrix(0 1 -1 0 10 0)"><line x1="0" y1="0" x2="4" y2="0"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()) > tolerance || math.Abs(ext.Height()-4) > tolerance {
		t.Errorf("extents = %v x %v, want 0 x 4", ext.Width(), ext.Height())
	}
}

func TestReadGroupSkewDropsTransform(t *testing.T) {
	doc := `<svg><g id="tilted" transform="translate(3,0) skewX(10)"><circle cx="0" cy="0" r="1"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	tilted := m.Models["tilted"]
	if tilted == nil {
		t.Fatal("missing group")
	}
	if tilted.Origin != nil {
		t.Errorf("origin = %+v, want absent when the transform is rejected", tilted.Origin)
	}

	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()-2) > tolerance {
		t.Errorf("width = %v, want the untransformed 2", ext.Width())
	}
}

func TestReadGroupIdentityTransform(t *testing.T) {
	doc := `<svg><g id="still" transform="translate(0 0)"><circle cx="0" cy="0" r="1"/></g></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	still := m.Models["still"]
	if still == nil {
		t.Fatal("missing group")
	}
	if still.Origin != nil {
		t.Errorf("origin = %+v, want absent for an identity transform", still.Origin)
	}
}

func TestReadRect(t *testing.T) {
	doc := `<svg><rect x="1" y="2" width="3" height="4"/></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if got := m.PathCount(); got != 4 {
		t.Fatalf("path count = %d, want 4 sides", got)
	}
	ext := measure.ModelExtents(m)
	if math.Abs(ext.Width()-3) > tolerance || math.Abs(ext.Height()-4) > tolerance {
		t.Errorf("extents = %v x %v, want 3 x 4", ext.Width(), ext.Height())
	}
}

func TestReadPathData(t *testing.T) {
	doc := `<svg><path d="M 0 0 L 10 0 L 10 10 Z"/></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if got := m.PathCount(); got != 3 {
		t.Errorf("path count = %d, want 3 lines from the closed triangle", got)
	}
}

func TestReadPathDataUnsupported(t *testing.T) {
	doc := `<svg><path d="M 0 0 C 1 1 2 2 3 3"/></svg>`

	m, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if got := m.PathCount(); got != 0 {
		t.Errorf("path count = %d, want 0 for unsupported commands", got)
	}
}

func TestReadNotSVG(t *testing.T) {
	_, err := Read(strings.NewReader(`<html><body/></html>`))
	if !errors.Is(err, ErrNotSVG) {
		t.Errorf("err = %v, want ErrNotSVG", err)
	}
}

func TestReadWidthUnits(t *testing.T) {
	tests := []struct {
		width string
		want  string
	}{
		{"30mm", units.Millimeter},
		{"4.2cm", units.Centimeter},
		{"8in", units.Inch},
		{"30", ""},
		{"100%", ""},
	}
	for _, tt := range tests {
		t.Run(tt.width, func(t *testing.T) {
			doc := `<svg width="` + tt.width + `" height="10"><line x1="0" y1="0" x2="5" y2="0"/></svg>`
			m, err := Read(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("reading: %v", err)
			}
			if m.Units != tt.want {
				t.Errorf("units = %q, want %q", m.Units, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	wheel := model.New().AddPath("rim", paths.NewCircle(geom.Point{}, 4))
	wheel.Origin = &geom.Point{X: 10, Y: 0}

	src := model.New().
		AddPath("deck", paths.NewLine(geom.Point{}, geom.Point{X: 20, Y: 0})).
		AddPath("bend", paths.NewArc(geom.Point{X: 20, Y: 4}, 4, 270, 0)).
		AddModel("wheel", wheel)
	src.Units = units.Millimeter

	out, err := NewExporter().ExportToString(src)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	got, err := Read(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if got.PathCount() != src.PathCount() {
		t.Errorf("path count = %d, want %d", got.PathCount(), src.PathCount())
	}
	if got.Units != src.Units {
		t.Errorf("units = %q, want %q", got.Units, src.Units)
	}

	srcExt := measure.ModelExtents(src)
	gotExt := measure.ModelExtents(got)
	if math.Abs(gotExt.Width()-srcExt.Width()) > 1e-6 || math.Abs(gotExt.Height()-srcExt.Height()) > 1e-6 {
		t.Errorf("extents = %v x %v, want %v x %v",
			gotExt.Width(), gotExt.Height(), srcExt.Width(), srcExt.Height())
	}

	srcLen := measure.ModelPathLength(src)
	gotLen := measure.ModelPathLength(got)
	if math.Abs(gotLen-srcLen) > 1e-6 {
		t.Errorf("total length = %v, want %v", gotLen, srcLen)
	}
}

// ============================================================================
// Parsing Helper Tests
// ============================================================================

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  geom.Matrix
		valid bool
	}{
		{"translate comma", "translate(3,4)", geom.Translate(3, 4), true},
		{"translate space", "translate(3 4)", geom.Translate(3, 4), true},
		{"translate single", "translate(5)", geom.Translate(5, 0), true},
		{"scale single", "scale(2)", geom.ScaleMatrix(2, 2), true},
		{"scale pair", "scale(2 3)", geom.ScaleMatrix(2, 3), true},
		{"matrix", "matrix(1 0 0 1 7 8)", geom.Translate(7, 8), true},
		{"list composes in order", "translate(10 0) scale(2)", geom.Matrix{2, 0, 0, 2, 10, 0}, true},
		{"unsupported function", "skewX(10)", geom.Matrix{}, false},
		{"unsupported in list", "translate(3 0) skewX(10)", geom.Matrix{}, false},
		{"unbalanced", "translate(3", geom.Matrix{}, false},
		{"empty", "", geom.Matrix{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTransform(tt.in)
			if ok != tt.valid {
				t.Fatalf("ok = %v, want %v", ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("parseTransform(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTransformRotate(t *testing.T) {
	mat, ok := parseTransform("rotate(90)")
	if !ok {
		t.Fatal("expected a matrix")
	}

	got := mat.Apply(geom.Point{X: 1, Y: 0})
	if !geom.Equalish(got, geom.Point{X: 0, Y: 1}, tolerance) {
		t.Errorf("rotate(90) maps (1,0) to %+v, want (0,1)", got)
	}

	about, ok := parseTransform("rotate(90 5 0)")
	if !ok {
		t.Fatal("expected a matrix")
	}
	got = about.Apply(geom.Point{X: 6, Y: 0})
	if !geom.Equalish(got, geom.Point{X: 5, Y: 1}, tolerance) {
		t.Errorf("rotate(90 5 0) maps (6,0) to %+v, want (5,1)", got)
	}
}

func TestArcFromEndpoints(t *testing.T) {
	arc, ok := arcFromEndpoints(geom.Point{X: 2, Y: 0}, geom.Point{X: 0, Y: 2}, 2, false, true)
	if !ok {
		t.Fatal("expected an arc")
	}

	if !geom.Equalish(arc.Origin, geom.Point{}, tolerance) {
		t.Errorf("center = %+v, want origin", arc.Origin)
	}
	if math.Abs(arc.Sweep()-90) > tolerance {
		t.Errorf("sweep = %v, want 90", arc.Sweep())
	}
	if !geom.Equalish(arc.StartPoint(), geom.Point{X: 2, Y: 0}, tolerance) {
		t.Errorf("start = %+v, want {2 0}", arc.StartPoint())
	}
}

func TestArcFromEndpointsLargeArc(t *testing.T) {
	arc, ok := arcFromEndpoints(geom.Point{X: 2, Y: 0}, geom.Point{X: 0, Y: -2}, 2, true, true)
	if !ok {
		t.Fatal("expected an arc")
	}

	if !geom.Equalish(arc.Origin, geom.Point{}, tolerance) {
		t.Errorf("center = %+v, want origin", arc.Origin)
	}
	if math.Abs(arc.Sweep()-270) > tolerance {
		t.Errorf("sweep = %v, want 270", arc.Sweep())
	}
}

func TestArcFromEndpointsDegenerate(t *testing.T) {
	if _, ok := arcFromEndpoints(geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 1}, 2, false, true); ok {
		t.Error("coincident endpoints should not produce an arc")
	}
	if _, ok := arcFromEndpoints(geom.Point{}, geom.Point{X: 1, Y: 0}, 0, false, true); ok {
		t.Error("zero radius should not produce an arc")
	}
}
