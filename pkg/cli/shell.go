package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/qmreport/pkg/shell"
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}

			var historyFile string
			if home, err := os.UserHomeDir(); err == nil {
				historyFile = filepath.Join(home, ".qmreport_history")
			}

			sh, err := shell.New(a.evaluator(), store, shell.Config{
				HistoryFile: historyFile,
				OutputDir:   a.cfg.Report.OutputDir,
				Threshold:   a.threshold(),
				Report:      a.cfg.ReportBuilderConfig(),
			})
			if err != nil {
				return err
			}
			return sh.Run(cmd.Context())
		},
	}
}
