package kontrol

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

type (
	// Value is a tagged value holding either a number or a text string. The
	// zero Value is the number 0. Values are immutable and compared with
	// Equal.
	Value struct {
		typ ValueType
		f   float32
		s   string
	}

	// ValueType tells which variant of a Value is active.
	ValueType int

	// Args is the flat, positionally interpreted value list that parameters
	// are created from and serialized to.
	Args []Value
)

const (
	FloatType ValueType = iota
	StringType
)

// Float returns a numeric Value.
func Float(f float32) Value { return Value{typ: FloatType, f: f} }

// String returns a text Value.
func String(s string) Value { return Value{typ: StringType, s: s} }

func (v Value) Type() ValueType { return v.typ }
func (v Value) IsFloat() bool   { return v.typ == FloatType }
func (v Value) IsString() bool  { return v.typ == StringType }

// Float returns the numeric payload, or 0 if v holds text.
func (v Value) Float() float32 {
	if v.typ != FloatType {
		return 0
	}
	return v.f
}

// Text returns the text payload, or "" if v holds a number.
func (v Value) Text() string {
	if v.typ != StringType {
		return ""
	}
	return v.s
}

// Equal reports whether v and o hold the same variant with the same payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	if v.typ == FloatType {
		return v.f == o.f
	}
	return v.s == o.s
}

func (v Value) String() string {
	if v.typ == StringType {
		return strconv.Quote(v.s)
	}
	return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
}

func (t ValueType) String() string {
	switch t {
	case FloatType:
		return "float"
	case StringType:
		return "string"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// MarshalYAML writes the value as a plain scalar so that definition files
// stay readable, e.g. [freq, cutoff, Cutoff, 20, 20000, 1000].
func (v Value) MarshalYAML() (interface{}, error) {
	if v.typ == StringType {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}, nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: yamlFloat(v.f)}, nil
}

func yamlFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return ".nan"
	case math.IsInf(float64(f), 1):
		return ".inf"
	case math.IsInf(float64(f), -1):
		return "-.inf"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: parameter argument must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 32)
		if err != nil {
			// yaml accepts forms like 0x1F and 1_000 that ParseFloat does not
			var d float64
			if derr := node.Decode(&d); derr != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			f = d
		}
		*v = Float(float32(f))
	default:
		*v = String(node.Value)
	}
	return nil
}

// MarshalYAML writes the list as a flow sequence so that one parameter
// definition occupies one line.
func (a Args) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range a {
		m, err := v.MarshalYAML()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, m.(*yaml.Node))
	}
	return n, nil
}
