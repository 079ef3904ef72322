package cli

import (
	"fmt"
	"io"
)

// Run is the CLI's entry point (adapted from calvinalkan-agent-task's
// internal/cli.Run, trimmed to a single-shot batch tool: no config file, no
// signal handling, since every invocation reads one file and exits).
func Run(out, errOut io.Writer, args []string) int {
	commands := allCommands()

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if len(args) < 2 {
		printUsage(out, commands)
		return 0
	}

	if args[1] == "-h" || args[1] == "--help" {
		printUsage(out, commands)
		return 0
	}

	cmd, ok := commandMap[args[1]]
	if !ok {
		fmt.Fprintln(errOut, "error: unknown command:", args[1])
		printUsage(errOut, commands)
		return 2
	}

	cmdIO := NewIO(out, errOut)
	return cmd.Run(cmdIO, args[2:])
}

func allCommands() []*Command {
	return []*Command{
		ScanCmd(),
		DictCmd(),
		AnalyzeCmd(),
		AnomaliesCmd(),
	}
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, "loganomaly - byte-pattern and structured log anomaly detection")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: loganomaly <command> FILE [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintln(w, cmd.HelpLine())
	}
}
