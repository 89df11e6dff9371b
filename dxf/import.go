package dxf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
)

// ErrNotDXF reports input without any DXF section structure.
var ErrNotDXF = errors.New("dxf: no section structure found")

// codePages maps $DWGCODEPAGE names to their Windows character maps.
var codePages = map[string]*charmap.Charmap{
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1257": charmap.Windows1257,
}

// Read parses a DXF document into a drawing. Entities on the default
// layer land in the root model, other layers become child models, and
// INSERT references become child models positioned at their insertion
// point.
func Read(r io.Reader) (*model.Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dxf: %w", err)
	}
	if cm, ok := codePages[strings.ToUpper(headerCodePage(raw))]; ok {
		if decoded, err := cm.NewDecoder().Bytes(raw); err == nil {
			raw = decoded
		}
	}

	rd := &reader{
		root:   model.New(),
		blocks: map[string]*blockDef{},
		counts: map[string]int{},
	}
	if err := rd.parse(NewScanner(bytes.NewReader(raw))); err != nil {
		return nil, err
	}
	return rd.root, nil
}

// ReadFile parses the named DXF file into a drawing.
func ReadFile(filename string) (*model.Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening dxf file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// headerCodePage pulls $DWGCODEPAGE out of the header so the rest of
// the stream can be decoded before full parsing.
func headerCodePage(raw []byte) string {
	s := NewScanner(bytes.NewReader(raw))
	variable := ""
	for s.Next() {
		t := s.Tag()
		switch {
		case t.Code == 0 && strings.ToUpper(t.Text()) == "ENDSEC":
			return ""
		case t.Code == 9:
			variable = strings.ToUpper(t.Text())
		case variable == "$DWGCODEPAGE" && t.Code == 3:
			return t.Text()
		}
	}
	return ""
}

type reader struct {
	root   *model.Model
	blocks map[string]*blockDef
	counts map[string]int
}

// blockDef is a parsed BLOCK definition awaiting INSERT references.
type blockDef struct {
	base  geom.Point
	model *model.Model
}

// materialize builds a child model for one INSERT of the block.
func (b *blockDef) materialize(at geom.Point, scale, rotation float64) *model.Model {
	child := b.model.Clone()
	if b.base != (geom.Point{}) {
		// Block geometry is stored relative to the base point.
		child.OriginateFrom(geom.Point{X: -b.base.X, Y: -b.base.Y})
	}
	child.Move(at)
	if scale != 0 && scale != 1 {
		child.Scale(scale, false)
	}
	if rotation != 0 {
		child.Rotate(rotation, at)
	}
	return child
}

func (r *reader) parse(s *Scanner) error {
	sections := 0
	for s.Next() {
		t := s.Tag()
		if t.Code != 0 || strings.ToUpper(t.Text()) != "SECTION" {
			continue
		}
		if !s.Next() {
			break
		}
		name := ""
		if t := s.Tag(); t.Code == 2 {
			name = strings.ToUpper(t.Text())
		}
		sections++

		var err error
		switch name {
		case "HEADER":
			err = r.header(s)
		case "BLOCKS":
			err = r.sectionBlocks(s)
		case "ENTITIES":
			err = r.entities(s)
		default:
			err = skipSection(s)
		}
		if err != nil {
			return fmt.Errorf("parsing dxf: %w", err)
		}
	}

	if sections == 0 {
		return ErrNotDXF
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("parsing dxf: %w", err)
	}
	return nil
}

func (r *reader) header(s *Scanner) error {
	variable := ""
	for s.Next() {
		t := s.Tag()
		switch {
		case t.Code == 0 && strings.ToUpper(t.Text()) == "ENDSEC":
			return nil
		case t.Code == 9:
			variable = strings.ToUpper(t.Text())
		case variable == "$INSUNITS" && t.Code == 70:
			r.root.Units = unitsFromCode(t.Int())
		}
	}
	return s.Err()
}

func (r *reader) sectionBlocks(s *Scanner) error {
	if !s.Next() {
		return s.Err()
	}
	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				return s.Err()
			}
			continue
		}
		switch strings.ToUpper(t.Text()) {
		case "ENDSEC":
			return nil
		case "BLOCK":
			if err := r.blockDef(s); err != nil {
				return err
			}
		default:
			if !s.Next() {
				return s.Err()
			}
		}
	}
}

func (r *reader) blockDef(s *Scanner) error {
	name := ""
	var base geom.Point
	if !collect(s, func(t Tag) {
		switch t.Code {
		case 2:
			name = strings.ToUpper(t.Text())
		case 10:
			base.X = t.Float()
		case 20:
			base.Y = t.Float()
		}
	}) {
		return s.Err()
	}

	b := &blockDef{base: base, model: model.New()}
	if err := r.entityLoop(s, b.model, false); err != nil {
		return err
	}
	if name != "" {
		r.blocks[name] = b
	}
	return nil
}

func (r *reader) entities(s *Scanner) error {
	if !s.Next() {
		return s.Err()
	}
	return r.entityLoop(s, r.root, true)
}

// entityLoop parses entity records up to the terminator, ENDSEC for
// the entities section and ENDBLK for block bodies. The scanner is
// left on the terminating tag.
func (r *reader) entityLoop(s *Scanner, dst *model.Model, layered bool) error {
	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				return s.Err()
			}
			continue
		}
		name := strings.ToUpper(t.Text())
		if name == "ENDSEC" || name == "ENDBLK" {
			return nil
		}
		ok, err := r.entity(s, dst, name, layered)
		if err != nil {
			return err
		}
		if !ok {
			return s.Err()
		}
	}
}

// entity parses one entity record, consuming tags through to the next
// separator. It returns false when the stream ended first.
func (r *reader) entity(s *Scanner, dst *model.Model, name string, layered bool) (bool, error) {
	switch name {
	case "LINE":
		var start, end geom.Point
		layer := ""
		ok := collect(s, func(t Tag) {
			switch t.Code {
			case 8:
				layer = t.Text()
			case 10:
				start.X = t.Float()
			case 20:
				start.Y = t.Float()
			case 11:
				end.X = t.Float()
			case 21:
				end.Y = t.Float()
			}
		})
		r.place(dst, layered, layer, paths.NewLine(start, end))
		return ok, nil

	case "CIRCLE":
		var center geom.Point
		radius := 0.0
		layer := ""
		ok := collect(s, func(t Tag) {
			switch t.Code {
			case 8:
				layer = t.Text()
			case 10:
				center.X = t.Float()
			case 20:
				center.Y = t.Float()
			case 40:
				radius = t.Float()
			}
		})
		r.place(dst, layered, layer, paths.NewCircle(center, radius))
		return ok, nil

	case "ARC":
		var center geom.Point
		radius, start, end := 0.0, 0.0, 0.0
		layer := ""
		ok := collect(s, func(t Tag) {
			switch t.Code {
			case 8:
				layer = t.Text()
			case 10:
				center.X = t.Float()
			case 20:
				center.Y = t.Float()
			case 40:
				radius = t.Float()
			case 50:
				start = t.Float()
			case 51:
				end = t.Float()
			}
		})
		r.place(dst, layered, layer, paths.NewArc(center, radius, start, end))
		return ok, nil

	case "LWPOLYLINE":
		var xs, ys []float64
		closed := false
		layer := ""
		ok := collect(s, func(t Tag) {
			switch t.Code {
			case 8:
				layer = t.Text()
			case 10:
				xs = append(xs, t.Float())
			case 20:
				ys = append(ys, t.Float())
			case 70:
				closed = t.Int()&1 != 0
			}
		})
		n := min(len(xs), len(ys))
		for i := 1; i < n; i++ {
			r.place(dst, layered, layer, paths.NewLine(
				geom.Point{X: xs[i-1], Y: ys[i-1]},
				geom.Point{X: xs[i], Y: ys[i]}))
		}
		if closed && n > 2 {
			r.place(dst, layered, layer, paths.NewLine(
				geom.Point{X: xs[n-1], Y: ys[n-1]},
				geom.Point{X: xs[0], Y: ys[0]}))
		}
		return ok, nil

	case "INSERT":
		var at geom.Point
		blockName, layer := "", ""
		scale, rotation := 1.0, 0.0
		ok := collect(s, func(t Tag) {
			switch t.Code {
			case 2:
				blockName = strings.ToUpper(t.Text())
			case 8:
				layer = t.Text()
			case 10:
				at.X = t.Float()
			case 20:
				at.Y = t.Float()
			case 41:
				// The X factor stands in for both axes; the drawing
				// model only scales uniformly.
				scale = t.Float()
			case 50:
				rotation = t.Float()
			}
		})
		if b := r.blocks[blockName]; b != nil {
			child := b.materialize(at, scale, rotation)
			r.layerModel(dst, layered, layer).AddModel(r.insertName(blockName), child)
		}
		return ok, nil

	default:
		return collect(s, func(Tag) {}), nil
	}
}

func (r *reader) insertName(blockName string) string {
	r.counts[blockName]++
	name := strings.ToLower(blockName)
	if n := r.counts[blockName]; n > 1 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	return name
}

func (r *reader) place(dst *model.Model, layered bool, layer string, p paths.Path) {
	kind := p.Kind().String()
	r.counts[kind]++
	r.layerModel(dst, layered, layer).AddPath(fmt.Sprintf("%s-%d", kind, r.counts[kind]), p)
}

// layerModel resolves the model a parsed entity belongs to. The
// default layer maps to dst itself, anything else to a child model
// named after the layer.
func (r *reader) layerModel(dst *model.Model, layered bool, layer string) *model.Model {
	if !layered || layer == "" || layer == "0" {
		return dst
	}
	if child, ok := dst.Models[layer]; ok {
		return child
	}
	child := model.New()
	dst.AddModel(layer, child)
	return child
}

func skipSection(s *Scanner) error {
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 && strings.ToUpper(t.Text()) == "ENDSEC" {
			return nil
		}
	}
	return s.Err()
}

// collect feeds value tags to fill until the next separator, leaving
// the scanner on the separator. It returns false when the stream ends
// first.
func collect(s *Scanner, fill func(Tag)) bool {
	for s.Next() {
		if s.Tag().Code == 0 {
			return true
		}
		fill(s.Tag())
	}
	return false
}
