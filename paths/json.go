package paths

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vellumcad/vellum/geom"
)

// ErrUnknownType reports a serialized path whose "type" tag names no
// known variant.
var ErrUnknownType = errors.New("paths: unknown path type")

// Every path serializes as an envelope: the variant's fields plus a
// "type" tag, so heterogeneous collections survive a round trip.

type lineEnvelope struct {
	Type   string     `json:"type" yaml:"type"`
	Origin geom.Point `json:"origin" yaml:"origin"`
	End    geom.Point `json:"end" yaml:"end"`
}

type circleEnvelope struct {
	Type   string     `json:"type" yaml:"type"`
	Origin geom.Point `json:"origin" yaml:"origin"`
	Radius float64    `json:"radius" yaml:"radius"`
}

type arcEnvelope struct {
	Type       string     `json:"type" yaml:"type"`
	Origin     geom.Point `json:"origin" yaml:"origin"`
	Radius     float64    `json:"radius" yaml:"radius"`
	StartAngle float64    `json:"startAngle" yaml:"startAngle"`
	EndAngle   float64    `json:"endAngle" yaml:"endAngle"`
}

func (l *Line) envelope() lineEnvelope {
	return lineEnvelope{Type: KindLine.String(), Origin: l.Origin, End: l.End}
}

func (c *Circle) envelope() circleEnvelope {
	return circleEnvelope{Type: KindCircle.String(), Origin: c.Origin, Radius: c.Radius}
}

func (a *Arc) envelope() arcEnvelope {
	return arcEnvelope{
		Type:       KindArc.String(),
		Origin:     a.Origin,
		Radius:     a.Radius,
		StartAngle: a.StartAngle,
		EndAngle:   a.EndAngle,
	}
}

// MarshalJSON serializes the line with its "type" tag.
func (l *Line) MarshalJSON() ([]byte, error) { return json.Marshal(l.envelope()) }

// MarshalJSON serializes the circle with its "type" tag.
func (c *Circle) MarshalJSON() ([]byte, error) { return json.Marshal(c.envelope()) }

// MarshalJSON serializes the arc with its "type" tag.
func (a *Arc) MarshalJSON() ([]byte, error) { return json.Marshal(a.envelope()) }

// MarshalYAML serializes the line with its "type" tag.
func (l *Line) MarshalYAML() (interface{}, error) { return l.envelope(), nil }

// MarshalYAML serializes the circle with its "type" tag.
func (c *Circle) MarshalYAML() (interface{}, error) { return c.envelope(), nil }

// MarshalYAML serializes the arc with its "type" tag.
func (a *Arc) MarshalYAML() (interface{}, error) { return a.envelope(), nil }

// UnmarshalJSON decodes a single path from its enveloped JSON form,
// dispatching on the "type" tag.
func UnmarshalJSON(data []byte) (Path, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("reading path envelope: %w", err)
	}

	switch KindOf(probe.Type) {
	case KindLine:
		var env lineEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decoding line: %w", err)
		}
		return &Line{Origin: env.Origin, End: env.End}, nil
	case KindCircle:
		var env circleEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decoding circle: %w", err)
		}
		return &Circle{Origin: env.Origin, Radius: env.Radius}, nil
	case KindArc:
		var env arcEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decoding arc: %w", err)
		}
		return &Arc{Origin: env.Origin, Radius: env.Radius, StartAngle: env.StartAngle, EndAngle: env.EndAngle}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, probe.Type)
	}
}

// UnmarshalYAML decodes a single path from its enveloped YAML form,
// dispatching on the "type" tag.
func UnmarshalYAML(node *yaml.Node) (Path, error) {
	var probe struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&probe); err != nil {
		return nil, fmt.Errorf("reading path envelope: %w", err)
	}

	switch KindOf(probe.Type) {
	case KindLine:
		var env lineEnvelope
		if err := node.Decode(&env); err != nil {
			return nil, fmt.Errorf("decoding line: %w", err)
		}
		return &Line{Origin: env.Origin, End: env.End}, nil
	case KindCircle:
		var env circleEnvelope
		if err := node.Decode(&env); err != nil {
			return nil, fmt.Errorf("decoding circle: %w", err)
		}
		return &Circle{Origin: env.Origin, Radius: env.Radius}, nil
	case KindArc:
		var env arcEnvelope
		if err := node.Decode(&env); err != nil {
			return nil, fmt.Errorf("decoding arc: %w", err)
		}
		return &Arc{Origin: env.Origin, Radius: env.Radius, StartAngle: env.StartAngle, EndAngle: env.EndAngle}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, probe.Type)
	}
}
