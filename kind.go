package kontrol

// Kind identifies which variant a Parameter is. The set is closed: every
// operation on Parameter switches over all of these.
type Kind int

const (
	Invalid Kind = iota
	FloatKind
	IntKind
	BooleanKind
	PercentKind
	FrequencyKind
	TimeKind
	PitchKind
)

// kindTags are the type tags used in the first position of a flat value
// list. They must never change, as they are the wire format.
var kindTags = [...]string{
	Invalid:       "invalid",
	FloatKind:     "float",
	IntKind:       "int",
	BooleanKind:   "bool",
	PercentKind:   "pct",
	FrequencyKind: "freq",
	TimeKind:      "time",
	PitchKind:     "pitch",
}

var kindUnits = [...]string{
	PercentKind:   "%",
	FrequencyKind: "Hz",
	TimeKind:      "mSec",
	PitchKind:     "st",
}

// Kinds lists the concrete kinds, in tag order.
var Kinds = []Kind{FloatKind, IntKind, BooleanKind, PercentKind, FrequencyKind, TimeKind, PitchKind}

// ParseKind maps a type tag to its kind by exact match. "invalid" is not a
// valid tag.
func ParseKind(tag string) (Kind, bool) {
	for _, k := range Kinds {
		if kindTags[k] == tag {
			return k, true
		}
	}
	return Invalid, false
}

// String returns the type tag of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return kindTags[Invalid]
	}
	return kindTags[k]
}

// Unit returns the physical unit label of the kind, or "" if it has none.
func (k Kind) Unit() string {
	if k < 0 || int(k) >= len(kindUnits) {
		return ""
	}
	return kindUnits[k]
}

// Bounded reports whether parameters of this kind carry a min/max/default
// triple. Percent, Frequency, Time and Pitch are floats with a unit label.
func (k Kind) Bounded() bool {
	switch k {
	case FloatKind, IntKind, PercentKind, FrequencyKind, TimeKind, PitchKind:
		return true
	}
	return false
}
