package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/measure"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

// ErrNotSVG reports input with no svg root element.
var ErrNotSVG = errors.New("svg: missing svg root element")

// similarityTolerance bounds the off-diagonal error allowed when a
// transform matrix is decomposed into rotate and uniform scale.
const similarityTolerance = 1e-9

// groupFrame tracks one open g element and its pending transform,
// realized when the element closes and its subtree is complete.
type groupFrame struct {
	node *model.Model
	mat  geom.Matrix
	has  bool
}

// Read parses a subset of SVG from r into a drawing: g (with
// translate, scale, rotate, and matrix transforms), line, circle,
// rect, and path elements whose data uses absolute M, L, A, and Z
// commands with circular arcs. Anything else is skipped. Group
// transforms that skew or flip apply only their translation. A width
// attribute with a millimeter, centimeter, or inch suffix sets the
// drawing units. The result is reflected back into mathematical
// orientation and shifted so its lower-left corner sits at the origin.
func Read(r io.Reader) (*model.Model, error) {
	root := model.New()
	stack := []groupFrame{{node: root}}
	groups := 0
	shapes := 0

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	seen := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seen {
					return nil, ErrNotSVG
				}
				break
			}
			return nil, fmt.Errorf("parsing svg: %w", err)
		}

		switch se := tok.(type) {
		case xml.StartElement:
			cur := stack[len(stack)-1].node
			switch se.Name.Local {
			case "svg":
				seen = true
				if u := unitFromLength(attr(se, "width")); u != "" {
					root.Units = u
				}
			case "g":
				child := model.New()
				mat, ok := parseTransform(attr(se, "transform"))
				groups++
				cur.AddModel(elementName(se, "group", groups), child)
				stack = append(stack, groupFrame{node: child, mat: mat, has: ok})
			case "line":
				x1, ok1 := attrFloat(se, "x1")
				y1, ok2 := attrFloat(se, "y1")
				x2, ok3 := attrFloat(se, "x2")
				y2, ok4 := attrFloat(se, "y2")
				if ok1 && ok2 && ok3 && ok4 {
					shapes++
					cur.AddPath(elementName(se, "line", shapes),
						paths.NewLine(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2}))
				}
			case "circle":
				cx, ok1 := attrFloat(se, "cx")
				cy, ok2 := attrFloat(se, "cy")
				radius, ok3 := attrFloat(se, "r")
				if ok1 && ok2 && ok3 {
					shapes++
					cur.AddPath(elementName(se, "circle", shapes),
						paths.NewCircle(geom.Point{X: cx, Y: cy}, radius))
				}
			case "rect":
				if sides := rectSides(se); len(sides) > 0 {
					shapes++
					base := elementName(se, "rect", shapes)
					for i, side := range sides {
						cur.AddPath(base+sideSuffix(i), side)
					}
				}
			case "path":
				if segs := parsePathData(attr(se, "d")); len(segs) > 0 {
					shapes++
					base := elementName(se, "path", shapes)
					if len(segs) == 1 {
						cur.AddPath(base, segs[0])
					} else {
						for i, p := range segs {
							cur.AddPath(fmt.Sprintf("%s-%d", base, i+1), p)
						}
					}
				}
			}
		case xml.EndElement:
			if se.Name.Local == "g" && len(stack) > 1 {
				frame := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if frame.has {
					applyGroupTransform(frame.node, frame.mat)
				}
			}
		}
	}

	out := root.Mirror(false, true)
	if ext := measure.ModelExtents(out); !ext.IsEmpty() {
		out.Move(geom.Point{X: -ext.Min.X, Y: -ext.Min.Y})
	}
	return out, nil
}

// ReadFile parses the named SVG file into a drawing.
func ReadFile(filename string) (*model.Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening svg file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrFloat(se xml.StartElement, name string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(attr(se, name)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// unitFromLength recovers drawing units from an SVG length such as
// "30mm". Lengths without a recognized unit suffix yield "".
func unitFromLength(v string) string {
	switch strings.TrimLeft(strings.TrimSpace(v), "+-.0123456789eE") {
	case "mm":
		return units.Millimeter
	case "cm":
		return units.Centimeter
	case "in":
		return units.Inch
	}
	return ""
}

func elementName(se xml.StartElement, kind string, n int) string {
	if id := attr(se, "id"); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", kind, n)
}

func sideSuffix(i int) string {
	return [...]string{"-bottom", "-right", "-top", "-left"}[i]
}

// rectSides expands a rect element into its four edges.
func rectSides(se xml.StartElement) []paths.Path {
	x, ok1 := attrFloat(se, "x")
	y, ok2 := attrFloat(se, "y")
	w, ok3 := attrFloat(se, "width")
	h, ok4 := attrFloat(se, "height")
	if !ok3 || !ok4 {
		return nil
	}
	if !ok1 {
		x = 0
	}
	if !ok2 {
		y = 0
	}

	corners := [4]geom.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
	sides := make([]paths.Path, 4)
	for i := range corners {
		sides[i] = paths.NewLine(corners[i], corners[(i+1)%4])
	}
	return sides
}

// parseTransform composes an SVG transform list into a single matrix.
// An unsupported function or malformed argument list rejects the whole
// attribute.
func parseTransform(transform string) (geom.Matrix, bool) {
	mat := geom.Identity()
	found := false

	rest := transform
	for {
		open := strings.Index(rest, "(")
		if open < 0 {
			break
		}
		length := strings.Index(rest[open:], ")")
		if length < 0 {
			return geom.Identity(), false
		}

		name := strings.TrimFunc(rest[:open], isTransformSep)
		step, ok := transformStep(name, rest[open+1:open+length])
		if !ok {
			return geom.Identity(), false
		}

		mat = mat.Multiply(step)
		found = true
		rest = rest[open+length+1:]
	}

	return mat, found
}

func isTransformSep(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func transformStep(name, rawArgs string) (geom.Matrix, bool) {
	fields := strings.FieldsFunc(rawArgs, isTransformSep)
	args := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Matrix{}, false
		}
		args[i] = v
	}

	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return geom.Translate(args[0], 0), true
		case 2:
			return geom.Translate(args[0], args[1]), true
		}
	case "scale":
		switch len(args) {
		case 1:
			return geom.ScaleMatrix(args[0], args[0]), true
		case 2:
			return geom.ScaleMatrix(args[0], args[1]), true
		}
	case "rotate":
		switch len(args) {
		case 1:
			return geom.RotateMatrix(args[0]), true
		case 3:
			return geom.Translate(args[1], args[2]).
				Multiply(geom.RotateMatrix(args[0])).
				Multiply(geom.Translate(-args[1], -args[2])), true
		}
	case "matrix":
		if len(args) == 6 {
			return geom.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, true
		}
	}

	return geom.Matrix{}, false
}

// applyGroupTransform realizes a group's transform on the parsed
// subtree. The translation becomes the group's origin; a linear part
// that is a rotation and uniform scale is applied with the tree
// transforms. Skewing or flipping linear parts have no model
// representation and are dropped.
func applyGroupTransform(m *model.Model, mat geom.Matrix) {
	if mat.IsIdentity() {
		return
	}

	origin := geom.Point{X: mat[4], Y: mat[5]}
	m.Origin = &origin

	a, b, c, d := mat[0], mat[1], mat[2], mat[3]
	if a == 1 && b == 0 && c == 0 && d == 1 {
		return
	}
	if math.Abs(a-d) > similarityTolerance || math.Abs(b+c) > similarityTolerance {
		return
	}

	k := math.Hypot(a, b)
	if k == 0 {
		return
	}
	if k != 1 {
		m.Scale(k, false)
	}
	if angle := geom.RadToDeg(math.Atan2(b, a)); angle != 0 {
		m.Rotate(angle, origin)
	}
}

// parsePathData converts absolute M/L/A/Z path data into paths. A
// command outside that subset abandons the whole element.
func parsePathData(d string) []paths.Path {
	fields := tokenizePathData(d)

	var out []paths.Path
	var cur, subStart geom.Point
	i := 0
	for i < len(fields) {
		switch fields[i] {
		case "M":
			pt, ok := takePoint(fields, i+1)
			if !ok {
				return nil
			}
			cur, subStart = pt, pt
			i += 3
		case "L":
			pt, ok := takePoint(fields, i+1)
			if !ok {
				return nil
			}
			out = append(out, paths.NewLine(cur, pt))
			cur = pt
			i += 3
		case "A":
			if i+7 >= len(fields) {
				return nil
			}
			nums, ok := takeFloats(fields, i+1, 7)
			if !ok {
				return nil
			}
			rx, ry := nums[0], nums[1]
			largeArc, sweep := nums[3] != 0, nums[4] != 0
			end := geom.Point{X: nums[5], Y: nums[6]}
			if rx != ry {
				return nil
			}
			if arc, ok := arcFromEndpoints(cur, end, rx, largeArc, sweep); ok {
				out = append(out, arc)
			}
			cur = end
			i += 8
		case "Z", "z":
			if cur != subStart {
				out = append(out, paths.NewLine(cur, subStart))
				cur = subStart
			}
			i++
		default:
			return nil
		}
	}
	return out
}

func tokenizePathData(d string) []string {
	var sb strings.Builder
	for _, r := range d {
		switch {
		case r == ',':
			sb.WriteRune(' ')
		case unicode.IsLetter(r):
			sb.WriteRune(' ')
			sb.WriteRune(r)
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return strings.Fields(sb.String())
}

func takePoint(fields []string, at int) (geom.Point, bool) {
	nums, ok := takeFloats(fields, at, 2)
	if !ok {
		return geom.Point{}, false
	}
	return geom.Point{X: nums[0], Y: nums[1]}, true
}

func takeFloats(fields []string, at, n int) ([]float64, bool) {
	if at+n > len(fields) {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[at+i], 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// arcFromEndpoints recovers the center parameterization of a circular
// arc from its SVG endpoint form.
func arcFromEndpoints(from, to geom.Point, radius float64, largeArc, sweep bool) (*paths.Arc, bool) {
	mx, my := (from.X-to.X)/2, (from.Y-to.Y)/2
	d2 := mx*mx + my*my
	if d2 == 0 || radius == 0 {
		return nil, false
	}

	radicand := radius*radius/d2 - 1
	if radicand < 0 {
		// Endpoints farther apart than the diameter; treat the radius
		// as just large enough, matching renderer behavior.
		radicand = 0
	}
	c := math.Sqrt(radicand)
	if largeArc == sweep {
		c = -c
	}

	center := geom.Point{
		X: c*my + (from.X+to.X)/2,
		Y: -c*mx + (from.Y+to.Y)/2,
	}

	start := geom.RadToDeg(math.Atan2(from.Y-center.Y, from.X-center.X))
	end := geom.RadToDeg(math.Atan2(to.Y-center.Y, to.X-center.X))
	if !sweep {
		start, end = end, start
	}
	return paths.NewArc(center, radius, geom.NormalizeDegrees(start), geom.NormalizeDegrees(end)), true
}
