// qmreport renders quantum model evaluation reports.
//
// It evaluates the mock SoloQ and QAOA classifiers on demo datasets, browses
// the evaluation history and renders paginated PDF reports with charts,
// either from the command line, an interactive shell or an HTTP API.
package main

import (
	"os"

	"github.com/r3d91ll/qmreport/pkg/cli"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

var (
	version = "2.1.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		werrors.Display(err)
		os.Exit(1)
	}
}
