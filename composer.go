package vellum

import (
	"fmt"
	"io"

	"github.com/vellumcad/vellum/dxf"
	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/pdf"
	"github.com/vellumcad/vellum/raster"
	"github.com/vellumcad/vellum/svg"
	"github.com/vellumcad/vellum/units"
)

// Composer is an immutable builder for drawing pipelines. Each
// configuration method returns a new Composer carrying one more
// recorded step; nothing is loaded or transformed until a terminal
// method runs. That makes a Composer safe to store and reuse as a
// shared prefix for several chains, though a single Composer must not
// have terminal methods called from multiple goroutines at once.
type Composer struct {
	filename string
	source   *model.Model
	loaded   bool

	steps []step

	err      error
	warnings []Warning
}

// step is one recorded transform. apply receives the working tree and
// returns its replacement. Most steps mutate in place and return the
// same tree; Mirror and Select return a different one.
type step struct {
	op    string
	apply func(m *model.Model) (*model.Model, []Warning)
}

func (c *Composer) clone() *Composer {
	return &Composer{
		filename: c.filename,
		source:   c.source,
		loaded:   c.loaded,
		steps:    append([]step(nil), c.steps...),
		err:      c.err,
		warnings: append([]Warning(nil), c.warnings...),
	}
}

// with returns a clone with one more step recorded. Once the chain
// carries an error, further steps are dropped and the error rides
// through to the terminal.
func (c *Composer) with(op string, apply func(*model.Model) (*model.Model, []Warning)) *Composer {
	next := c.clone()
	if next.err != nil {
		return next
	}
	next.steps = append(next.steps, step{op: op, apply: apply})
	return next
}

// ensureLoaded reads the source file on first use. FromModel
// composers arrive already loaded.
func (c *Composer) ensureLoaded() error {
	if c.loaded {
		if c.source == nil {
			return fmt.Errorf("no drawing to compose")
		}
		return nil
	}
	if c.filename == "" {
		return fmt.Errorf("no drawing to compose")
	}
	m, err := Load(c.filename)
	if err != nil {
		return err
	}
	c.source = m
	c.loaded = true
	return nil
}

// build runs the chain: load, deep-copy, apply each step in order.
// The returned tree shares nothing with the source.
func (c *Composer) build() (*model.Model, []Warning, error) {
	warnings := append([]Warning(nil), c.warnings...)
	if c.err != nil {
		return nil, warnings, c.err
	}
	if err := c.ensureLoaded(); err != nil {
		return nil, warnings, err
	}
	work := c.source.Clone()
	for _, st := range c.steps {
		next, stepWarnings := st.apply(work)
		work = next
		warnings = append(warnings, stepWarnings...)
	}
	return work, warnings, nil
}

// ============================================================================
// Configuration Methods
// ============================================================================

// Move places the drawing's origin at (x, y). This is an absolute
// set, not an offset from the current position.
func (c *Composer) Move(x, y float64) *Composer {
	return c.with("move", func(m *model.Model) (*model.Model, []Warning) {
		return m.Move(geom.Point{X: x, Y: y}), nil
	})
}

// Rotate turns the drawing by angle degrees counterclockwise about
// the given center point.
func (c *Composer) Rotate(angle float64, about geom.Point) *Composer {
	return c.with("rotate", func(m *model.Model) (*model.Model, []Warning) {
		return m.Rotate(angle, about), nil
	})
}

// Scale multiplies the drawing's geometry by k, leaving the root
// origin where it is.
func (c *Composer) Scale(k float64) *Composer {
	return c.with("scale", func(m *model.Model) (*model.Model, []Warning) {
		return m.Scale(k, false), nil
	})
}

// ScaleOrigins multiplies the drawing's geometry by k, scaling the
// root origin along with it. Use this when the whole coordinate
// system changes, as in a unit conversion.
func (c *Composer) ScaleOrigins(k float64) *Composer {
	return c.with("scale-origins", func(m *model.Model) (*model.Model, []Warning) {
		return m.Scale(k, true), nil
	})
}

// MirrorX reflects the drawing across the vertical axis (x becomes
// -x).
func (c *Composer) MirrorX() *Composer {
	return c.with("mirror-x", func(m *model.Model) (*model.Model, []Warning) {
		return m.Mirror(true, false), nil
	})
}

// MirrorY reflects the drawing across the horizontal axis (y becomes
// -y).
func (c *Composer) MirrorY() *Composer {
	return c.with("mirror-y", func(m *model.Model) (*model.Model, []Warning) {
		return m.Mirror(false, true), nil
	})
}

// Originate collapses all nested origins into absolute path
// coordinates, leaving every node with a zero origin.
func (c *Composer) Originate() *Composer {
	return c.with("originate", func(m *model.Model) (*model.Model, []Warning) {
		return m.Originate(), nil
	})
}

// ConvertUnits rescales the drawing from its declared units to dest.
// A drawing without units is labeled dest unscaled, with a warning;
// an unrecognized identifier on either side leaves the drawing
// untouched, with a warning.
func (c *Composer) ConvertUnits(dest string) *Composer {
	return c.with("convert-units", func(m *model.Model) (*model.Model, []Warning) {
		if !units.Valid(dest) {
			return m, []Warning{warnf("convert-units", "unknown units %q", dest)}
		}
		if m.Units == "" {
			m.Units = dest
			return m, []Warning{warnf("convert-units", "drawing has no units, labeling as %s without scaling", dest)}
		}
		if m.Units == dest {
			return m, nil
		}
		ratio, ok := units.ConversionScale(m.Units, dest)
		if !ok {
			return m, []Warning{warnf("convert-units", "cannot convert %q to %q", m.Units, dest)}
		}
		m.Scale(ratio, true)
		m.Units = dest
		return m, nil
	})
}

// Select descends into the named child drawings and continues the
// chain from that subtree. A name that does not exist stops the
// descent where it was and records a warning.
func (c *Composer) Select(path ...string) *Composer {
	names := append([]string(nil), path...)
	return c.with("select", func(m *model.Model) (*model.Model, []Warning) {
		cur := m
		for _, name := range names {
			child, ok := cur.Models[name]
			if !ok {
				return cur, []Warning{warnf("select", "no child drawing %q", name)}
			}
			cur = child
		}
		return cur, nil
	})
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Model composes the chain and returns the resulting drawing tree.
// The tree shares nothing with the source; the caller may mutate it
// freely.
func (c *Composer) Model() (*model.Model, []Warning, error) {
	return c.build()
}

// Extents composes the chain and returns the drawing's bounding
// rectangle.
func (c *Composer) Extents() (measure.Extents, []Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return measure.Empty(), warnings, err
	}
	return measure.ModelExtents(m), warnings, nil
}

// Stats composes the chain and returns tree statistics.
func (c *Composer) Stats() (measure.Stats, []Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return measure.Stats{}, warnings, err
	}
	return measure.ModelStats(m), warnings, nil
}

// ToSVG composes the chain and writes the drawing to w as an SVG
// image.
func (c *Composer) ToSVG(w io.Writer) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, svg.NewExporter().Export(m, w)
}

// ToDXF composes the chain and writes the drawing to w as a DXF file.
func (c *Composer) ToDXF(w io.Writer) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, dxf.NewExporter().Export(m, w)
}

// ToPDF composes the chain and writes the drawing to w as a
// single-page PDF.
func (c *Composer) ToPDF(w io.Writer) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, pdf.NewExporter().Export(m, w)
}

// ToPNG composes the chain and writes the drawing to w as a PNG
// image.
func (c *Composer) ToPNG(w io.Writer) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, raster.NewRenderer().Export(m, w)
}

// Save composes the chain and writes the drawing to filename in the
// format named by the extension.
func (c *Composer) Save(filename string) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, Save(m, filename)
}

// SaveJSON composes the chain and writes the drawing to filename as
// JSON, regardless of extension.
func (c *Composer) SaveJSON(filename string) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, saveJSON(m, filename)
}

// SaveYAML composes the chain and writes the drawing to filename as
// YAML, regardless of extension.
func (c *Composer) SaveYAML(filename string) ([]Warning, error) {
	m, warnings, err := c.build()
	if err != nil {
		return warnings, err
	}
	return warnings, saveYAML(m, filename)
}
