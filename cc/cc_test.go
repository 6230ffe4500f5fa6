package cc_test

import (
	"testing"

	"github.com/kontrolhq/kontrol"
	"github.com/kontrolhq/kontrol/cc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func testParams(t *testing.T) *kontrol.Params {
	t.Helper()
	params, err := kontrol.ParseParams([]kontrol.Args{
		{kontrol.String("float"), kontrol.String("cutoff"), kontrol.String("Cutoff"), kontrol.Float(20), kontrol.Float(20000), kontrol.Float(1000)},
		{kontrol.String("int"), kontrol.String("steps"), kontrol.String("Steps"), kontrol.Float(0), kontrol.Float(127), kontrol.Float(64)},
		{kontrol.String("bool"), kontrol.String("bypass"), kontrol.String("Bypass"), kontrol.Float(0)},
	})
	require.NoError(t, err)
	return params
}

func TestHandleAbsolute(t *testing.T) {
	params := testParams(t)
	m := cc.NewMap()
	require.NoError(t, m.Bind(cc.Binding{Channel: 0, Controller: 74, ID: "cutoff"}))

	ev, ok := m.Handle(params, midi.ControlChange(0, 74, 127))
	require.True(t, ok)
	assert.Equal(t, "cutoff", ev.ID)
	assert.True(t, ev.Changed)
	assert.InDelta(t, 20000, ev.Value.Float(), 0.01)

	ev, ok = m.Handle(params, midi.ControlChange(0, 74, 127))
	require.True(t, ok)
	assert.False(t, ev.Changed)
}

func TestHandleIgnores(t *testing.T) {
	params := testParams(t)
	m := cc.NewMap()
	require.NoError(t, m.Bind(cc.Binding{Channel: 0, Controller: 74, ID: "cutoff"}))
	require.NoError(t, m.Bind(cc.Binding{Channel: 0, Controller: 75, ID: "gone"}))

	_, ok := m.Handle(params, midi.NoteOn(0, 60, 100))
	assert.False(t, ok, "not a control change")
	_, ok = m.Handle(params, midi.ControlChange(1, 74, 10))
	assert.False(t, ok, "other channel")
	_, ok = m.Handle(params, midi.ControlChange(0, 75, 10))
	assert.False(t, ok, "parameter not in collection")
}

func TestHandleRelative(t *testing.T) {
	params := testParams(t)
	m := cc.NewMap()
	require.NoError(t, m.Bind(cc.Binding{Channel: 2, Controller: 16, ID: "steps", Mode: cc.Relative}))
	m.Step = 1.0 / 127

	ev, ok := m.Handle(params, midi.ControlChange(2, 16, 64+3))
	require.True(t, ok)
	assert.Equal(t, float32(67), ev.Value.Float())

	ev, _ = m.Handle(params, midi.ControlChange(2, 16, 64-10))
	assert.Equal(t, float32(57), ev.Value.Float())
}

func TestHandleBooleanRelative(t *testing.T) {
	params := testParams(t)
	m := cc.NewMap()
	require.NoError(t, m.Bind(cc.Binding{Controller: 1, ID: "bypass", Mode: cc.Relative}))

	ev, _ := m.Handle(params, midi.ControlChange(0, 1, 65))
	assert.Equal(t, float32(1), ev.Value.Float())
	ev, _ = m.Handle(params, midi.ControlChange(0, 1, 64))
	assert.False(t, ev.Changed, "zero steps leave the switch alone")
	ev, _ = m.Handle(params, midi.ControlChange(0, 1, 63))
	assert.Equal(t, float32(0), ev.Value.Float())
}

func TestBindValidates(t *testing.T) {
	m := cc.NewMap()
	assert.Error(t, m.Bind(cc.Binding{Channel: 16, Controller: 1, ID: "x"}))
	assert.Error(t, m.Bind(cc.Binding{Channel: 0, Controller: 128, ID: "x"}))
	require.NoError(t, m.Bind(cc.Binding{Channel: 0, Controller: 1, ID: "x"}))
	require.NoError(t, m.Bind(cc.Binding{Channel: 0, Controller: 1, ID: "y"}))
	assert.Equal(t, 1, m.Len())
	b, ok := m.Lookup(0, 1)
	require.True(t, ok)
	assert.Equal(t, "y", b.ID)
	m.Unbind(0, 1)
	_, ok = m.Lookup(0, 1)
	assert.False(t, ok)
}

func TestFeedback(t *testing.T) {
	params := testParams(t)
	b := cc.Binding{Channel: 3, Controller: 7, ID: "cutoff"}
	p, _ := params.Get("cutoff")
	for _, pos := range []int{0, 1, 32, 64, 100, 127} {
		p.Change(p.CalcMidi(pos))
		var channel, controller, value uint8
		require.True(t, cc.Feedback(p, b).GetControlChange(&channel, &controller, &value))
		assert.Equal(t, uint8(3), channel)
		assert.Equal(t, uint8(7), controller)
		assert.Equal(t, uint8(pos), value, "position %d", pos)
	}
	bypass, _ := params.Get("bypass")
	assert.Equal(t, uint8(0), cc.Position(bypass))
	bypass.Change(kontrol.Float(1))
	assert.Equal(t, uint8(127), cc.Position(bypass))
}
