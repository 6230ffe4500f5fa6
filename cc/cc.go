// Package cc binds MIDI control change messages to parameters.
//
// A Map routes the control changes of a hardware controller to the parameters
// of a kontrol.Params collection: absolute controls (knobs, faders) set the
// parameter through CalcMidi, relative controls (endless encoders sending
// offset-64 steps) nudge it through CalcRelative.
package cc

import (
	"fmt"

	"github.com/kontrolhq/kontrol"
	"gitlab.com/gomidi/midi/v2"
)

type (
	// Mode tells how the value of a control change is interpreted.
	Mode int

	Binding struct {
		Channel    uint8 // 0-15
		Controller uint8 // 0-127
		ID         string
		Mode       Mode
	}

	// Event reports the effect of a handled control change.
	Event struct {
		ID      string
		Value   kontrol.Value
		Changed bool
	}

	// Map holds the bindings of one controller, at most one per channel and
	// controller number.
	Map struct {
		// Step is the relative delta of one encoder step, as a fraction of the
		// parameter range. Zero means DefaultStep.
		Step     float32
		bindings map[key]Binding
	}

	key struct{ channel, controller uint8 }
)

const (
	Absolute Mode = iota
	Relative
)

// DefaultStep moves a parameter across its whole range in 128 encoder steps.
const DefaultStep = 1.0 / 128

func NewMap() *Map {
	return &Map{bindings: make(map[key]Binding)}
}

// Bind adds b, replacing any binding of the same channel and controller.
func (m *Map) Bind(b Binding) error {
	if b.Channel > 15 {
		return fmt.Errorf("cc: channel %d out of range", b.Channel)
	}
	if b.Controller > 127 {
		return fmt.Errorf("cc: controller %d out of range", b.Controller)
	}
	if m.bindings == nil {
		m.bindings = make(map[key]Binding)
	}
	m.bindings[key{b.Channel, b.Controller}] = b
	return nil
}

func (m *Map) Unbind(channel, controller uint8) {
	delete(m.bindings, key{channel, controller})
}

func (m *Map) Lookup(channel, controller uint8) (Binding, bool) {
	b, ok := m.bindings[key{channel, controller}]
	return b, ok
}

func (m *Map) Len() int { return len(m.bindings) }

// Handle applies msg to params if it is a control change with a binding.
// ok is false for other messages, unbound controls and bindings whose
// parameter is not in params.
func (m *Map) Handle(params *kontrol.Params, msg midi.Message) (ev Event, ok bool) {
	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) {
		return Event{}, false
	}
	b, ok := m.Lookup(channel, controller)
	if !ok {
		return Event{}, false
	}
	p, ok := params.Get(b.ID)
	if !ok {
		kontrol.Logger().Debug("cc: bound parameter not found", "id", b.ID, "channel", channel, "controller", controller)
		return Event{}, false
	}
	var c kontrol.Value
	switch b.Mode {
	case Relative:
		c = p.CalcRelative(float32(int(value)-64) * m.step())
	default:
		c = p.CalcMidi(int(value))
	}
	changed := p.Change(c)
	return Event{ID: p.ID(), Value: p.Current(), Changed: changed}, true
}

func (m *Map) step() float32 {
	if m.Step == 0 {
		return DefaultStep
	}
	return m.Step
}

// Feedback returns the control change that shows the current value of p on
// the bound control, e.g. to position motorized faders or LED rings.
func Feedback(p *kontrol.Parameter, b Binding) midi.Message {
	return midi.ControlChange(b.Channel, b.Controller, Position(p))
}

// Position is the inverse of CalcMidi: the controller position in [0,127]
// that corresponds to the current value of p.
func Position(p *kontrol.Parameter) uint8 {
	v := p.Current().Float()
	if p.Kind() == kontrol.BooleanKind {
		if v > 0.5 {
			return 127
		}
		return 0
	}
	lo, hi := p.Min(), p.Max()
	if hi <= lo {
		return 0
	}
	f := (v - lo) / (hi - lo)
	pos := int(f*127 + 0.5)
	return uint8(min(max(pos, 0), 127))
}
