package kontrol

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"gopkg.in/yaml.v3"
)

// Params is an ordered collection of parameters with unique ids, e.g. all the
// parameters of one module of an instrument. Like Parameter, it does no
// locking.
type Params struct {
	list  []*Parameter
	index map[string]int
}

// NewParams returns a collection holding ps. Parameters that Add would reject
// are logged and skipped.
func NewParams(ps ...*Parameter) *Params {
	l := &Params{index: make(map[string]int)}
	for i, p := range ps {
		if err := l.Add(p); err != nil {
			Logger().Warn("kontrol: skipping parameter", "index", i, "err", err)
		}
	}
	return l
}

// Add appends p. Invalid parameters and duplicate ids are rejected.
func (l *Params) Add(p *Parameter) error {
	if p == nil || !p.Valid() {
		return ErrInvalidParameter
	}
	if _, ok := l.index[p.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.id)
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	l.index[p.id] = len(l.list)
	l.list = append(l.list, p)
	return nil
}

func (l *Params) Get(id string) (*Parameter, bool) {
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.list[i], true
}

func (l *Params) Len() int            { return len(l.list) }
func (l *Params) At(i int) *Parameter { return l.list[i] }

// Slice returns a copy of the parameter list.
func (l *Params) Slice() []*Parameter { return append([]*Parameter(nil), l.list...) }

func notFound(id string) error { return fmt.Errorf("%w: %s", ErrNotFound, id) }

// All iterates the parameters in insertion order.
func (l *Params) All() iter.Seq[*Parameter] {
	return func(yield func(*Parameter) bool) {
		for _, p := range l.list {
			if !yield(p) {
				return
			}
		}
	}
}

// Change applies v to the parameter with the given id.
func (l *Params) Change(id string, v Value) (bool, error) {
	p, ok := l.Get(id)
	if !ok {
		return false, notFound(id)
	}
	return p.Change(v), nil
}

func (l *Params) ChangeFloat(id string, f float32) (bool, error) {
	p, ok := l.Get(id)
	if !ok {
		return false, notFound(id)
	}
	return p.Change(p.CalcFloat(f)), nil
}

func (l *Params) ChangeMidi(id string, midi int) (bool, error) {
	p, ok := l.Get(id)
	if !ok {
		return false, notFound(id)
	}
	return p.Change(p.CalcMidi(midi)), nil
}

func (l *Params) ChangeRelative(id string, delta float32) (bool, error) {
	p, ok := l.Get(id)
	if !ok {
		return false, notFound(id)
	}
	return p.Change(p.CalcRelative(delta)), nil
}

// ResetAll resets every parameter to its default and returns how many of
// them changed.
func (l *Params) ResetAll() int {
	n := 0
	for _, p := range l.list {
		if p.Reset() {
			n++
		}
	}
	return n
}

// CreateArgs returns the definitions of all parameters, in order.
func (l *Params) CreateArgs() []Args {
	ret := make([]Args, 0, len(l.list))
	for _, p := range l.list {
		ret = append(ret, p.CreateArgs(nil))
	}
	return ret
}

// ParseParams creates a parameter from each list. Entries that do not yield a
// valid parameter, or repeat an id, are left out and their errors joined.
func ParseParams(lists []Args) (*Params, error) {
	l := NewParams()
	err := l.parse(lists, false, func(i int, err error) error {
		return fmt.Errorf("parameter %d: %w", i, err)
	})
	return l, err
}

// parse adds a parameter for each list. With failFast it returns the first
// error, otherwise bad entries are logged, skipped and their errors joined.
// wrap decorates each error with the position of its entry.
func (l *Params) parse(lists []Args, failFast bool, wrap func(i int, err error) error) error {
	var errs []error
	for i, args := range lists {
		p, err := Parse(args)
		if err == nil {
			err = l.Add(p)
		}
		if err == nil {
			continue
		}
		err = wrap(i, err)
		if failFast {
			return err
		}
		Logger().Warn("kontrol: skipping parameter", "index", i, "id", p.id, "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (l *Params) MarshalYAML() (interface{}, error) {
	return l.CreateArgs(), nil
}

// UnmarshalYAML fails on the first entry that is not a valid parameter.
func (l *Params) UnmarshalYAML(node *yaml.Node) error {
	var lists []Args
	if err := node.Decode(&lists); err != nil {
		return err
	}
	parsed := NewParams()
	err := parsed.parse(lists, true, func(i int, err error) error {
		line := node.Line
		if i < len(node.Content) {
			line = node.Content[i].Line
		}
		return fmt.Errorf("line %d: %w", line, err)
	})
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// LoadParams decodes a YAML document holding a list of definitions.
func LoadParams(r io.Reader) (*Params, error) {
	var l Params
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return NewParams(), nil
		}
		return nil, fmt.Errorf("could not decode parameters: %w", err)
	}
	return &l, nil
}

// Save encodes the definitions of l as a YAML document.
func (l *Params) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("could not encode parameters: %w", err)
	}
	return enc.Close()
}
