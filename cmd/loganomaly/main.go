// Command loganomaly analyzes log files for anomalous records using a
// byte-pattern match finder or a JSON schema profiler, behind a shared
// statistical detector.
package main

import (
	"os"

	"github.com/logscan/loganomaly/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args))
}
