package cli

import (
	"fmt"
	"io"
)

// IO carries a command's output streams (adapted from calvinalkan-agent-task's IO: this
// tool has no warnings-on-exit concept, so it's a thin wrapper around the two
// writers).
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
}

// NewIO creates an IO.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{Out: out, ErrOut: errOut}
}

func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.Out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.Out, format, a...)
}

func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.ErrOut, a...)
}
