package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/report"
	"github.com/r3d91ll/qmreport/pkg/spinner"
)

type reportOptions struct {
	input     string
	dataset   string
	model     string
	historyID string
	out       string
	preview   string
	page      int
}

func newReportCommand(a *app) *cobra.Command {
	var opts reportOptions
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a report as PDF or as a page preview",
		Long: `Render a report from a JSON request, a dataset evaluation or a history
record. Without a source the report contains only its fixed sections.`,
		Example: `  qmreport report --input request.json
  qmreport report --dataset wines --model QAOA --out wines.pdf
  qmreport report --history-id 3f2c --preview png --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "JSON report request file, or - for stdin")
	f.StringVarP(&opts.dataset, "dataset", "d", "", "evaluate this dataset and report one model")
	f.StringVarP(&opts.model, "model", "m", "", "model to report with --dataset (default: the recommended model)")
	f.StringVar(&opts.historyID, "history-id", "", "report a history record")
	f.StringVarP(&opts.out, "out", "o", "", "output file, or - for stdout (default: generated name in report.output_dir)")
	f.StringVar(&opts.preview, "preview", "", "render one page as png or svg instead of a PDF")
	f.IntVar(&opts.page, "page", 1, "page to preview")
	f.String("out-dir", "", "directory for generated file names (overrides report.output_dir)")
	a.bindFlag(cmd, "report.output_dir", "out-dir")
	return cmd
}

// request resolves the single report source named by the flags.
func (a *app) request(ctx context.Context, cmd *cobra.Command, opts reportOptions) (report.Request, error) {
	sources := 0
	for _, s := range []string{opts.input, opts.dataset, opts.historyID} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return report.Request{}, argsError(cmd, "use only one of --input, --dataset and --history-id")
	}
	if opts.model != "" && opts.dataset == "" {
		return report.Request{}, argsError(cmd, "--model requires --dataset")
	}

	switch {
	case opts.input != "":
		data, err := readInput(cmd.InOrStdin(), opts.input)
		if err != nil {
			return report.Request{}, err
		}
		req, err := report.DecodeRequest(data)
		if err != nil {
			return report.Request{}, err
		}
		return *req, nil

	case opts.dataset != "":
		spin := spinner.NewWithConfig(spinner.Config{
			Message:     "Evaluating " + opts.dataset + "...",
			ShowElapsed: true,
			Writer:      cmd.ErrOrStderr(),
		})
		spin.Start()
		c, err := a.evaluator().Compare(ctx, opts.dataset)
		if err != nil {
			spin.Fail("Evaluation failed")
			return report.Request{}, err
		}
		spin.Success("Evaluation complete")
		model := opts.model
		if model == "" {
			model = c.Recommendation
		}
		return c.ReportRequest(model)

	case opts.historyID != "":
		store, err := a.store()
		if err != nil {
			return report.Request{}, err
		}
		rec, err := store.Get(opts.historyID)
		if err != nil {
			return report.Request{}, err
		}
		return rec.ReportRequest(a.threshold()), nil
	}
	return report.Request{}, nil
}

func (a *app) runReport(cmd *cobra.Command, opts reportOptions) error {
	req, err := a.request(cmd.Context(), cmd, opts)
	if err != nil {
		return err
	}
	return a.writeReport(cmd, req, opts.out, opts.preview, opts.page)
}

// writeReport builds req and writes it as a PDF, or as one preview page
// when preview names an image format.
func (a *app) writeReport(cmd *cobra.Command, req report.Request, out, preview string, page int) error {
	rc := a.cfg.ReportBuilderConfig()
	doc, err := report.NewBuilder().WithConfig(rc).Build(req)
	if err != nil {
		return err
	}

	var (
		buf  bytes.Buffer
		name = doc.Filename
	)
	if preview == "" {
		if err := export.RenderPDF(doc, &buf); err != nil {
			return err
		}
	} else {
		preview = strings.ToLower(preview)
		if err := export.RenderPreview(doc, rc.Geometry, page, preview, a.cfg.Report.PreviewScale, &buf); err != nil {
			return err
		}
		name = fmt.Sprintf("%s_page%d.%s", strings.TrimSuffix(doc.Filename, ".pdf"), page, preview)
	}

	path := resolveOut(out, a.cfg.Report.OutputDir, name)
	if err := writeOutput(cmd.OutOrStdout(), path, buf.Bytes()); err != nil {
		return err
	}
	if path != stdoutPath {
		status(cmd.ErrOrStderr(), "Wrote %s (%d pages, sha256 %s)", path, doc.Pages, export.Fingerprint(doc))
	}
	return nil
}
