package cli

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/logscan/loganomaly"
)

// Command defines a CLI subcommand with unified help generation and exit-code
// mapping (adapted from calvinalkan-agent-task's internal/cli.Command).
type Command struct {
	// Flags defines command-specific flags. Command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "loganomaly".
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Exec runs the command after flags are parsed and returns the exit code
	// mapping of §7: 0 success, 1 I/O/parse error, 2 invalid arguments.
	Exec func(o *IO, args []string) int
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-60s %s", c.Usage, c.Short)
}

func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: loganomaly", c.Usage)
	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, returning the process exit code.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		return 2
	}

	return c.Exec(o, c.Flags.Args())
}

// exitCodeFor maps a core/pipeline error to the CLI exit codes of §7:
// *loganomaly.OptionsError (invalid arguments) maps to 2; anything else
// (I/O errors, propagated from os.ReadFile) maps to 1.
func exitCodeFor(o *IO, err error) int {
	if err == nil {
		return 0
	}
	var optErr *loganomaly.OptionsError
	if errors.As(err, &optErr) {
		o.ErrPrintln("error:", err)
		return 2
	}
	o.ErrPrintln("error:", err)
	return 1
}
