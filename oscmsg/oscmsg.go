// Package oscmsg converts parameters to and from OSC messages.
//
// A parameter definition travels as the message
//
//	/Kontrol/param rack module type id displayName fields...
//
// where the arguments after module are exactly the flat value list of
// Parameter.CreateArgs, numbers as float32. A value change travels as
//
//	/Kontrol/changed rack module id value
//
// The package only encodes and decodes; sending and receiving is up to the
// caller.
package oscmsg

import (
	"errors"
	"fmt"

	"github.com/hypebeast/go-osc/osc"
	"github.com/kontrolhq/kontrol"
)

const (
	ParamAddress   = "/Kontrol/param"
	ChangedAddress = "/Kontrol/changed"
)

var (
	ErrAddress  = errors.New("oscmsg: unexpected address")
	ErrArgument = errors.New("oscmsg: unsupported argument")
	ErrShort    = errors.New("oscmsg: too few arguments")
)

// EncodeParam returns the definition message of p.
func EncodeParam(rack, module string, p *kontrol.Parameter) *osc.Message {
	msg := osc.NewMessage(ParamAddress, rack, module)
	for _, v := range p.CreateArgs(nil) {
		msg.Append(argument(v))
	}
	return msg
}

// DecodeParam creates the parameter described by a definition message. As
// with kontrol.Parse, the returned parameter is invalid when err is a
// parameter error.
func DecodeParam(msg *osc.Message) (rack, module string, p *kontrol.Parameter, err error) {
	if msg.Address != ParamAddress {
		return "", "", nil, fmt.Errorf("%w: %s", ErrAddress, msg.Address)
	}
	args, err := Values(msg.Arguments)
	if err != nil {
		return "", "", nil, err
	}
	if rack, module, err = header(args); err != nil {
		return "", "", nil, err
	}
	p, err = kontrol.Parse(args[2:])
	return rack, module, p, err
}

// EncodeChanged returns the message announcing the current value of p.
func EncodeChanged(rack, module string, p *kontrol.Parameter) *osc.Message {
	return osc.NewMessage(ChangedAddress, rack, module, p.ID(), argument(p.Current()))
}

// DecodeChanged extracts the target and value of a change message.
func DecodeChanged(msg *osc.Message) (rack, module, id string, v kontrol.Value, err error) {
	if msg.Address != ChangedAddress {
		return "", "", "", kontrol.Value{}, fmt.Errorf("%w: %s", ErrAddress, msg.Address)
	}
	args, err := Values(msg.Arguments)
	if err != nil {
		return "", "", "", kontrol.Value{}, err
	}
	if len(args) < 4 || !args[2].IsString() {
		return "", "", "", kontrol.Value{}, ErrShort
	}
	if rack, module, err = header(args); err != nil {
		return "", "", "", kontrol.Value{}, err
	}
	return rack, module, args[2].Text(), args[3], nil
}

// Apply decodes a change message and applies it to the matching parameter of
// params.
func Apply(params *kontrol.Params, msg *osc.Message) (changed bool, err error) {
	_, _, id, v, err := DecodeChanged(msg)
	if err != nil {
		return false, err
	}
	return params.Change(id, v)
}

// Values converts OSC arguments to a flat value list. Integer and double
// arguments become numbers; other types are rejected.
func Values(arguments []interface{}) (kontrol.Args, error) {
	args := make(kontrol.Args, 0, len(arguments))
	for i, a := range arguments {
		switch a := a.(type) {
		case float32:
			args = append(args, kontrol.Float(a))
		case float64:
			args = append(args, kontrol.Float(float32(a)))
		case int32:
			args = append(args, kontrol.Float(float32(a)))
		case int64:
			args = append(args, kontrol.Float(float32(a)))
		case string:
			args = append(args, kontrol.String(a))
		default:
			return nil, fmt.Errorf("%w: argument %d has type %T", ErrArgument, i, a)
		}
	}
	return args, nil
}

// Marshal encodes msg as an OSC packet.
func Marshal(msg *osc.Message) ([]byte, error) {
	return msg.MarshalBinary()
}

// Unmarshal decodes an OSC packet that must hold a single message.
func Unmarshal(b []byte) (*osc.Message, error) {
	packet, err := osc.ParsePacket(string(b))
	if err != nil {
		return nil, fmt.Errorf("oscmsg: %w", err)
	}
	msg, ok := packet.(*osc.Message)
	if !ok {
		return nil, fmt.Errorf("oscmsg: packet is %T, not a message", packet)
	}
	return msg, nil
}

func header(args kontrol.Args) (rack, module string, err error) {
	if len(args) < 2 || !args[0].IsString() || !args[1].IsString() {
		return "", "", ErrShort
	}
	return args[0].Text(), args[1].Text(), nil
}

func argument(v kontrol.Value) interface{} {
	if v.IsString() {
		return v.Text()
	}
	return v.Float()
}
