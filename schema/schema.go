package schema

import (
	"fmt"

	"github.com/aptend/serde-resp/internal/logging"
)

// Kind classifies a scalar value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindUint
	KindBool
	KindChar
	KindBytes

	// Float and Map exist so the encoder can name what it rejects.
	// Neither is a legal argument kind.
	KindFloat
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindBytes:
		return "bytes"
	case KindFloat:
		return "float"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Encodable reports whether a value of this kind can be carried as a
// single bulk string.
func (k Kind) Encodable() bool {
	switch k {
	case KindString, KindInt, KindUint, KindBool, KindChar, KindBytes:
		return true
	}
	return false
}

// ArgSpec declares one positional argument of a command. Name is
// documentation only; it is never transmitted, so reordering arguments
// is a wire-breaking change. Optional arguments may be carried as the
// null bulk string.
type ArgSpec struct {
	Name     string
	Kind     Kind
	Optional bool
}

// CommandSpec declares a command shape: the name and its arguments in
// wire order.
type CommandSpec struct {
	Name string
	Args []ArgSpec
}

// Arity is the on-wire element count: the command name plus every
// argument.
func (s CommandSpec) Arity() int { return len(s.Args) + 1 }

// SpecError reports an invalid command spec at set construction.
type SpecError struct {
	Command string
	Arg     string
	Reason  string
}

func (e SpecError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("schema: command %q: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("schema: command %q arg %q: %s", e.Command, e.Arg, e.Reason)
}

// Set is a variant set: the closed list of command shapes a decoder may
// produce. Lookup is exact and case-sensitive; strictness is chosen
// over Redis-style case folding.
type Set struct {
	byName map[string]CommandSpec
}

// NewSet validates the specs and builds a variant set. Argument kinds
// must bottom out at scalars; composite arguments are rejected here
// rather than mid-encode.
func NewSet(specs ...CommandSpec) (Set, error) {
	log := logging.Logger()
	byName := make(map[string]CommandSpec, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return Set{}, SpecError{Reason: "empty command name"}
		}
		if _, dup := byName[spec.Name]; dup {
			return Set{}, SpecError{Command: spec.Name, Reason: "duplicate command name"}
		}
		for _, arg := range spec.Args {
			if !arg.Kind.Encodable() {
				return Set{}, SpecError{
					Command: spec.Name,
					Arg:     arg.Name,
					Reason:  fmt.Sprintf("kind %s cannot be an argument", arg.Kind),
				}
			}
		}
		byName[spec.Name] = spec
		log.Debug().Str("command", spec.Name).Int("args", len(spec.Args)).Msg("schema: registered command")
	}
	return Set{byName: byName}, nil
}

// MustSet is NewSet for package-level variant sets; it panics on an
// invalid spec.
func MustSet(specs ...CommandSpec) Set {
	set, err := NewSet(specs...)
	if err != nil {
		panic(err)
	}
	return set
}

// Lookup returns the spec declared under name.
func (s Set) Lookup(name string) (CommandSpec, bool) {
	spec, ok := s.byName[name]
	return spec, ok
}

// Len returns the number of declared commands.
func (s Set) Len() int { return len(s.byName) }
