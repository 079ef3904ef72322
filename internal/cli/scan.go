package cli

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/logscan/loganomaly"
	"github.com/logscan/loganomaly/internal/report"
)

// ScanCmd runs the match finder only and reports a token/coverage summary
// (§6 expansion).
func ScanCmd() *Command {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	windowSize := fs.Int("window-size", loganomaly.DefaultWindowSize, "match window size (power of two)")
	minMatch := fs.Int("min-match", loganomaly.DefaultMinMatch, "minimum back-reference length")
	asJSON := fs.Bool("json", false, "emit machine-readable JSON")

	return &Command{
		Flags: fs,
		Usage: "scan FILE [--window-size N] [--min-match N] [--json]",
		Short: "Run the match finder only and report a token/coverage summary",
		Exec: func(o *IO, args []string) int {
			if len(args) != 1 {
				o.ErrPrintln("error: scan requires exactly one FILE argument")
				return 2
			}

			opts := loganomaly.DefaultScanOptions()
			opts.WindowSize = *windowSize
			opts.MinMatch = *minMatch

			buf, err := os.ReadFile(args[0])
			if err != nil {
				o.ErrPrintln("error:", err)
				return 1
			}

			tokens, err := loganomaly.Scan(buf, opts)
			if err != nil {
				return exitCodeFor(o, err)
			}

			summary := report.ScanSummary{TotalBytes: len(buf)}
			for _, t := range tokens {
				summary.TotalTokens++
				if t.Kind == loganomaly.TokenBackRef {
					summary.BackRefs++
					summary.RefBytes += t.Length
				} else {
					summary.Literals++
					summary.LiteralBytes++
				}
			}

			if *asJSON {
				return exitCodeFor(o, report.WriteScanJSON(o.Out, summary))
			}
			return exitCodeFor(o, report.WriteScanHuman(o.Out, summary))
		},
	}
}
