package kontrol

import (
	"fmt"
	"math"
	"strconv"
)

// Parameter is a single control of an instrument: an identity, a display name
// and a current value, with rules depending on its Kind for clamping, scaling
// and formatting that value.
//
// Parameters are created with Create or Parse. The Calc methods are pure: they
// compute a candidate value without touching the parameter, and Change applies
// a candidate. A Parameter has no internal locking; when several goroutines
// share one, the owner must serialize calls to Change, otherwise it is
// undefined which of the concurrent updates wins.
type Parameter struct {
	kind        Kind
	id          string
	displayName string
	current     Value

	// min, max and def are used by the bounded kinds; Boolean keeps its
	// default in def as exactly 0 or 1.
	min, max, def float32
}

// relativeEpsilon is the smallest nudge that toggles a Boolean parameter.
const relativeEpsilon = 1e-4

func newParameter(k Kind) *Parameter {
	return &Parameter{kind: k, current: Float(0)}
}

func (p *Parameter) ID() string          { return p.id }
func (p *Parameter) DisplayName() string { return p.displayName }
func (p *Parameter) Kind() Kind          { return p.kind }
func (p *Parameter) Valid() bool         { return p.kind != Invalid }
func (p *Parameter) Current() Value      { return p.current }

// Min returns the lower bound; 0 for Boolean parameters.
func (p *Parameter) Min() float32 {
	if p.kind == BooleanKind {
		return 0
	}
	return p.min
}

// Max returns the upper bound; 1 for Boolean parameters.
func (p *Parameter) Max() float32 {
	if p.kind == BooleanKind {
		return 1
	}
	return p.max
}

func (p *Parameter) Default() float32 { return p.def }

// init consumes the fields of the flat list starting at *pos, advancing *pos
// past each consumed item. It stops at the first missing field.
func (p *Parameter) init(args Args, pos *int) error {
	var ok bool
	if p.id, ok = nextString(args, pos); !ok {
		return &MissingFieldError{Field: "id"}
	}
	if p.displayName, ok = nextString(args, pos); !ok {
		return p.missing("displayName")
	}
	switch p.kind {
	case BooleanKind:
		var d float32
		if d, ok = nextFloat(args, pos); !ok {
			return p.missing("def")
		}
		p.def = boolFloat(d > 0.5)
	case FloatKind, IntKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		if p.min, ok = nextFloat(args, pos); !ok {
			return p.missing("min")
		}
		if p.max, ok = nextFloat(args, pos); !ok {
			return p.missing("max")
		}
		if p.def, ok = nextFloat(args, pos); !ok {
			return p.missing("def")
		}
		if p.kind == IntKind {
			p.min, p.max, p.def = trunc(p.min), trunc(p.max), trunc(p.def)
		}
	default:
		return nil
	}
	p.Change(Float(p.def))
	return nil
}

func (p *Parameter) missing(field string) error {
	return &MissingFieldError{ID: p.id, Field: field}
}

// CreateArgs appends the definition of p to out in the exact order init
// consumes it, and returns the extended list. The current value is not part
// of the definition.
func (p *Parameter) CreateArgs(out Args) Args {
	out = append(out, String(p.kind.String()), String(p.id), String(p.displayName))
	switch p.kind {
	case BooleanKind:
		out = append(out, Float(p.def))
	case FloatKind, IntKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		out = append(out, Float(p.min), Float(p.max), Float(p.def))
	}
	return out
}

// CalcFloat maps f from [0,1] into the parameter's range and returns the
// candidate value.
func (p *Parameter) CalcFloat(f float32) Value {
	switch p.kind {
	case BooleanKind:
		return Float(boolFloat(f > 0.5))
	case IntKind:
		return Float(p.clamp(trunc(p.scale(f))))
	case FloatKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		return Float(p.clamp(p.scale(f)))
	}
	if p.current.IsFloat() {
		return Float(f)
	}
	return p.current
}

// CalcMidi maps a MIDI controller position in [0,127] into the parameter's
// range. Positions outside [0,127] are clamped first.
func (p *Parameter) CalcMidi(midi int) Value {
	midi = min(max(midi, 0), 127)
	if p.kind == BooleanKind {
		return Float(boolFloat(midi > 63))
	}
	return p.CalcFloat(float32(midi) / 127)
}

// CalcRelative nudges the current value by delta. For bounded kinds delta is
// a fraction of the range. A Boolean switches off on any negative nudge and
// on on any positive one, ignoring magnitude.
func (p *Parameter) CalcRelative(delta float32) Value {
	switch p.kind {
	case BooleanKind:
		on := p.current.Float() > 0.5
		if on && delta < -relativeEpsilon {
			return Float(0)
		}
		if !on && delta > relativeEpsilon {
			return Float(1)
		}
		return p.current
	case IntKind:
		return Float(p.clamp(trunc(p.current.Float() + delta*(p.max-p.min))))
	case FloatKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		return Float(p.clamp(p.current.Float() + delta*(p.max-p.min)))
	}
	if p.current.IsFloat() {
		return p.CalcFloat(p.current.Float() + delta)
	}
	return p.current
}

// Change applies a candidate value, clamped or coerced as the kind requires,
// and reports whether the current value changed. Bounded and Boolean
// parameters reject text and NaN candidates.
func (p *Parameter) Change(c Value) bool {
	switch p.kind {
	case BooleanKind:
		if !c.IsFloat() || isNaN(c.Float()) {
			return false
		}
		return p.replace(Float(boolFloat(c.Float() > 0.5)))
	case IntKind:
		if !c.IsFloat() || isNaN(c.Float()) {
			return false
		}
		return p.replace(Float(p.clamp(trunc(c.Float()))))
	case FloatKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		if !c.IsFloat() || isNaN(c.Float()) {
			return false
		}
		return p.replace(Float(p.clamp(c.Float())))
	}
	return p.replace(c)
}

// Reset changes the parameter back to its default.
func (p *Parameter) Reset() bool {
	if p.kind == Invalid {
		return false
	}
	return p.Change(Float(p.def))
}

func (p *Parameter) replace(c Value) bool {
	if p.current.Equal(c) {
		return false
	}
	p.current = c
	return true
}

// DisplayValue formats the current value for presentation: one decimal for
// floats, a whole number for ints and on/off for booleans.
func (p *Parameter) DisplayValue() string {
	switch p.kind {
	case BooleanKind:
		if p.current.Float() > 0.5 {
			return "on"
		}
		return "off"
	case IntKind:
		return strconv.Itoa(int(p.current.Float()))
	case FloatKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		return strconv.FormatFloat(float64(p.current.Float()), 'f', 1, 32)
	}
	return ""
}

// DisplayUnit returns the unit label, e.g. "Hz", or "" if the kind has none.
func (p *Parameter) DisplayUnit() string { return p.kind.Unit() }

// Display joins the display value and unit, e.g. "1000.0 Hz".
func (p *Parameter) Display() string {
	if u := p.DisplayUnit(); u != "" {
		return p.DisplayValue() + " " + u
	}
	return p.DisplayValue()
}

func (p *Parameter) String() string {
	if p.current.IsString() {
		return fmt.Sprintf("%s : %s [S]", p.id, p.current.Text())
	}
	return fmt.Sprintf("%s : %f [F]", p.id, p.current.Float())
}

// Dump logs the current value at debug level.
func (p *Parameter) Dump() {
	Logger().Debug(p.String(), "id", p.id, "kind", p.kind.String(), "value", p.current.String())
}

func (p *Parameter) scale(f float32) float32 {
	return f*(p.max-p.min) + p.min
}

// clamp limits v to [min, max]. With inverted bounds max wins.
func (p *Parameter) clamp(v float32) float32 {
	if isNaN(v) {
		return p.min
	}
	return min(max(v, p.min), p.max)
}

func nextString(args Args, pos *int) (string, bool) {
	if *pos >= len(args) || !args[*pos].IsString() {
		return "", false
	}
	s := args[*pos].Text()
	*pos++
	return s, true
}

func nextFloat(args Args, pos *int) (float32, bool) {
	if *pos >= len(args) || !args[*pos].IsFloat() {
		return 0, false
	}
	f := args[*pos].Float()
	*pos++
	return f, true
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// trunc rounds toward zero, as an integer conversion would, without
// overflowing for large values.
func trunc(v float32) float32 {
	return float32(math.Trunc(float64(v)))
}

func isNaN(v float32) bool { return v != v }
