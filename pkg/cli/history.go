package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/view"
)

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and export past evaluation runs",
	}
	cmd.AddCommand(newHistoryListCommand(a), newHistoryShowCommand(a), newHistoryExportCommand(a))
	return cmd
}

func newHistoryListCommand(a *app) *cobra.Command {
	var (
		model   string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if summary {
				fmt.Fprintln(w, view.SummaryTable(store.Summaries(), a.threshold()))
				return nil
			}

			var records []history.Record
			if model != "" {
				records = store.ByModel(model)
			} else {
				records = store.List()
			}
			if len(records) == 0 {
				fmt.Fprintln(w, "No evaluation runs recorded.")
				return nil
			}
			fmt.Fprintln(w, view.HistoryTable(records, a.threshold()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "only runs of this model type")
	cmd.Flags().BoolVar(&summary, "summary", false, "show per-model aggregates instead")
	return cmd
}

func newHistoryShowCommand(a *app) *cobra.Command {
	var reportOut string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			rec, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.RecordDetail(rec, a.threshold()))
			if reportOut == "" {
				return nil
			}
			return a.writeReport(cmd, rec.ReportRequest(a.threshold()), reportOut, "", 0)
		},
	}
	cmd.Flags().StringVar(&reportOut, "report", "", "also write a PDF report of the run to this file")
	return cmd
}

func newHistoryExportCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "export <csv|tsv|xlsx|html>",
		Short:     "Export all runs",
		Args:      cobra.ExactArgs(1),
		ValidArgs: export.HistoryFormats,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := export.WriteHistory(&buf, args[0], store); err != nil {
				return err
			}
			path := resolveOut(out, a.cfg.Report.OutputDir, export.HistoryFilename(args[0]))
			if err := writeOutput(cmd.OutOrStdout(), path, buf.Bytes()); err != nil {
				return err
			}
			if path != stdoutPath {
				status(cmd.ErrOrStderr(), "Wrote %s (%d runs)", path, store.Count())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout")
	return cmd
}
