/*
Package kontrol implements the control parameters of an expressive instrument
controller.

A parameter has an id, a display name and a current value. Its Kind decides
how the value is clamped, scaled and formatted:

	float, pct, freq, time, pitch  bounded float, shown with one decimal
	int                            bounded, truncated toward zero
	bool                           exactly 0 or 1, shown as on/off

Parameters are defined by flat value lists,

	[type-tag, id, displayName, min, max, default]   bounded kinds
	[type-tag, id, displayName, default]             bool

which Create turns into a Parameter and Parameter.CreateArgs produces again.
The current value is not part of the definition: a re-created parameter
starts at its default.

Updates happen in two steps. CalcFloat, CalcMidi and CalcRelative compute a
candidate value from a normalized position, a MIDI controller position or a
relative nudge, without side effects; Change applies a candidate and reports
whether the value changed.
*/
package kontrol
