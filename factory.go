package kontrol

// Create builds a parameter from a flat value list of the form
// [type-tag, id, displayName, fields...]. It never fails: when the tag is
// missing or unknown, or a required field is missing, the problem is logged
// and the returned parameter has kind Invalid. Callers must check Valid.
func Create(args Args) *Parameter {
	p, err := Parse(args)
	if err != nil {
		Logger().Warn("kontrol: cannot create parameter", "id", p.id, "err", err)
	}
	return p
}

// Parse is like Create but also returns why the parameter is invalid. The
// returned parameter is never nil; fields consumed before a missing field are
// kept, so the id is available for diagnostics whenever it was present.
func Parse(args Args) (*Parameter, error) {
	pos := 0
	tag, ok := nextString(args, &pos)
	if !ok {
		return newParameter(Invalid), ErrNoTypeTag
	}
	kind, ok := ParseKind(tag)
	if !ok {
		p := newParameter(Invalid)
		p.id, _ = nextString(args, &pos)
		return p, &UnknownTypeError{Tag: tag}
	}
	p := newParameter(kind)
	if err := p.init(args, &pos); err != nil {
		p.kind = Invalid
		return p, err
	}
	return p, nil
}
