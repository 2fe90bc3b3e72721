package resp

import "github.com/aptend/serde-resp/schema"

// Command is one application value: a command or tagged-union variant
// instance, the name plus its arguments in declared order.
type Command struct {
	Name string
	Args []schema.Value
}

// NewCommand builds a command value.
func NewCommand(name string, args ...schema.Value) Command {
	return Command{Name: name, Args: args}
}

// Equal reports structural equality.
func (c Command) Equal(o Command) bool {
	if c.Name != o.Name || len(c.Args) != len(o.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
