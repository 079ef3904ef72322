package cli

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/logscan/loganomaly"
	"github.com/logscan/loganomaly/internal/report"
)

// DictCmd builds and prints the frequency-ordered dictionary (§6 expansion).
func DictCmd() *Command {
	fs := flag.NewFlagSet("dict", flag.ContinueOnError)
	minMatch := fs.Int("min-match", loganomaly.DefaultMinMatch, "minimum back-reference length")
	minCount := fs.Int("min-count", loganomaly.DefaultMinCount, "minimum occurrence count to keep an entry")
	top := fs.Int("top", 20, "show only the top N entries (0 = all)")
	asJSON := fs.Bool("json", false, "emit machine-readable JSON")

	return &Command{
		Flags: fs,
		Usage: "dict FILE [--min-match N] [--min-count N] [--top N] [--json]",
		Short: "Build and print the frequency-ordered dictionary",
		Exec: func(o *IO, args []string) int {
			if len(args) != 1 {
				o.ErrPrintln("error: dict requires exactly one FILE argument")
				return 2
			}

			opts := loganomaly.DefaultScanOptions()
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
			dict, _ := loganomaly.BuildDictionary(tokens, *minCount)

			rep := report.DictReport{Total: dict.Len(), Entries: report.DictEntriesTop(dict, *top)}

			if *asJSON {
				return exitCodeFor(o, report.WriteDictJSON(o.Out, rep))
			}
			return exitCodeFor(o, report.WriteDictHuman(o.Out, rep))
		},
	}
}
