package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/logscan/loganomaly"
	"github.com/logscan/loganomaly/internal/pipeline"
	"github.com/logscan/loganomaly/internal/report"
)

// AnomaliesCmd runs analyze then the detector, printing flagged records (§6
// expansion).
func AnomaliesCmd() *Command {
	fs := flag.NewFlagSet("anomalies", flag.ContinueOnError)
	method := fs.String("method", "score", "detection method: score|coverage|percentile|top")
	percentile := fs.Float64("percentile", 5.0, "top percentile to flag (method=percentile)")
	topN := fs.Int("top-n", 10, "number of records to flag (method=top)")
	structured := fs.Bool("structured", false, "force structured (JSON) mode")
	asJSON := fs.Bool("json", false, "emit machine-readable JSON")
	extract := fs.Bool("extract", false, "print raw bytes of flagged records instead of stats")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")

	return &Command{
		Flags: fs,
		Usage: "anomalies FILE [--method score|coverage|percentile|top] [--percentile P] [--top-n N] [--structured] [--json] [--extract] [-v]",
		Short: "Run analyze then the detector, printing flagged records",
		Exec: func(o *IO, args []string) int {
			if len(args) != 1 {
				o.ErrPrintln("error: anomalies requires exactly one FILE argument")
				return 2
			}

			kind, err := parseMethodKind(*method)
			if err != nil {
				o.ErrPrintln("error:", err)
				return 2
			}

			log := newLogger(*verbose)
			defer func() { _ = log.Sync() }()

			opts := pipeline.DefaultOptions()
			opts.Structured = *structured

			res, err := pipeline.Run(args[0], opts)
			if err != nil {
				return exitCodeFor(o, err)
			}

			det, err := loganomaly.DetectIndices(res.Triples, loganomaly.Method{
				Kind:       kind,
				Percentile: *percentile,
				TopN:       *topN,
			})
			if err != nil {
				return exitCodeFor(o, err)
			}
			log.Debug("detected anomalies",
				zap.String("path", args[0]),
				zap.String("mode", res.Mode.String()),
				zap.String("method", *method),
				zap.Int("flagged", len(det.Indices)),
			)

			if *extract {
				for _, idx := range det.Indices {
					_, _ = fmt.Fprintf(o.Out, "%s\n", res.Record(idx))
				}
				return 0
			}

			rep := report.FromDetection(res, det, *method)
			if *asJSON {
				return exitCodeFor(o, report.WriteJSON(o.Out, rep))
			}
			return exitCodeFor(o, report.WriteHuman(o.Out, rep))
		},
	}
}

func parseMethodKind(s string) (loganomaly.MethodKind, error) {
	switch s {
	case "score":
		return loganomaly.MethodScore, nil
	case "coverage":
		return loganomaly.MethodCoverage, nil
	case "percentile":
		return loganomaly.MethodPercentile, nil
	case "top":
		return loganomaly.MethodTopN, nil
	default:
		return 0, fmt.Errorf("unknown method %q (want score|coverage|percentile|top)", s)
	}
}
