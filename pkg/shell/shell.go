// Package shell provides the interactive REPL for evaluating models and
// writing reports.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/logging"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
	"github.com/r3d91ll/qmreport/pkg/spinner"
	"github.com/r3d91ll/qmreport/pkg/view"
)

// trainingTarget is the /report argument that selects the last training run.
const trainingTarget = "training"

// Config holds shell configuration.
type Config struct {
	HistoryFile string

	// OutputDir is where /report writes files given without a directory.
	OutputDir string

	// Threshold bands scores in tables. Defaults to good 90, warning 70.
	Threshold *metrics.Threshold

	// Report configures the PDF builder. Defaults to report.DefaultConfig.
	Report *report.Config
}

// Shell is the interactive command-line interface.
type Shell struct {
	eval     *evaluator.Evaluator
	store    *history.Store
	cfg      Config
	out      io.Writer
	errs     *werrors.Formatter
	prompter Prompter
	rl       *readline.Instance
	now      func() time.Time
	tty      *bool

	selected     string
	lastCompare  *evaluator.Comparison
	lastTraining *evaluator.TrainingOutcome
}

// New creates an interactive shell reading from the terminal.
func New(eval *evaluator.Evaluator, store *history.Store, cfg Config) (*Shell, error) {
	s := NewWithIO(eval, store, cfg, os.Stdout, NewInteractivePrompter())
	s.errs = werrors.DefaultFormatter()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mqmreport>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewShellCompleter(eval.Registry()),
	})
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrInternal, werrors.CategoryInternal, "failed to initialise line editor")
	}
	s.rl = rl
	return s, nil
}

// NewWithIO creates a shell without a line editor. Output goes to out and
// overwrite confirmations to prompter; lines are fed through Execute.
func NewWithIO(eval *evaluator.Evaluator, store *history.Store, cfg Config, out io.Writer, prompter Prompter) *Shell {
	if cfg.Threshold == nil {
		cfg.Threshold = metrics.DefaultThreshold()
	}
	if cfg.Report == nil {
		cfg.Report = report.DefaultConfig()
	}
	notTTY := false
	return &Shell{
		eval:     eval,
		store:    store,
		cfg:      cfg,
		out:      out,
		errs:     &werrors.Formatter{Writer: out, Indent: "  "},
		prompter: prompter,
		now:      time.Now,
		tty:      &notTTY,
	}
}

// Run starts the interactive loop. It returns nil on /quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	if s.rl == nil {
		return werrors.E(werrors.ErrInternal, "shell has no line editor")
	}
	defer s.rl.Close()
	s.tty = nil

	fmt.Fprintln(s.out, "Evaluate quantum models and export reports. Type /help for commands.")
	fmt.Fprintln(s.out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			s.errs.Display(err)
		}
	}
}

var errQuit = errors.New("quit")

// Execute runs one input line. It returns errQuit for /quit.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return werrors.E(werrors.ErrCommandUnknown, "commands start with '/'; type /help to list them").
			WithContext("input", line)
	}

	parts := strings.Fields(line)
	cmd, ok := view.LookupCommand(parts[0])
	if !ok {
		if parts[0] == "/exit" {
			return errQuit
		}
		return werrors.Ef(werrors.ErrCommandUnknown, "unknown command %s", parts[0]).
			WithSuggestion("Type /help to list the commands")
	}
	logging.LogEvent("shell", "%s", line)
	args := parts[1:]

	switch cmd.Name {
	case "/quit":
		return errQuit
	case "/help":
		r := view.NewRenderer(s.out)
		if len(args) > 0 {
			r.RenderCommand(args[0])
		} else {
			r.RenderFull()
		}
	case "/datasets":
		s.printDatasets()
	case "/select":
		return s.handleSelect(args)
	case "/evaluate":
		return s.handleEvaluate(ctx, args)
	case "/train":
		return s.handleTrain(ctx, args)
	case "/report":
		return s.handleReport(args)
	case "/history":
		return s.handleHistory(args)
	}
	return nil
}

// Selected returns the dataset chosen with /select.
func (s *Shell) Selected() string { return s.selected }

func (s *Shell) printDatasets() {
	fmt.Fprintln(s.out, view.DatasetTable(s.eval.Registry().List()))
	if s.selected != "" {
		fmt.Fprintln(s.out, view.Dim("selected: ")+s.selected)
	}
}

func (s *Shell) handleSelect(args []string) error {
	if len(args) != 1 {
		return usageError("/select")
	}
	d, err := s.eval.Registry().Get(args[0])
	if err != nil {
		return err
	}
	s.selected = d.ID
	fmt.Fprintf(s.out, "Selected %s.\n", view.Bold(d.Name))
	return nil
}

func (s *Shell) handleEvaluate(ctx context.Context, args []string) error {
	id := s.selected
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		return werrors.E(werrors.ErrCommandArgs, "no dataset selected").
			WithSuggestion("Run /select <dataset> or pass the dataset to /evaluate")
	}
	d, err := s.eval.Registry().Get(id)
	if err != nil {
		return err
	}

	spin := spinner.NewWithConfig(spinner.Config{
		Message:     "Evaluating models on " + d.Name + "...",
		ShowElapsed: true,
		Writer:      s.out,
		IsTTY:       s.tty,
	})
	spin.Start()
	c, err := s.eval.Compare(ctx, d.ID)
	if err != nil {
		spin.Fail("Evaluation failed")
		return err
	}
	spin.Success("Evaluation complete")

	s.selected = d.ID
	s.lastCompare = c
	fmt.Fprintln(s.out, view.ComparisonTable(c, s.cfg.Threshold))
	return nil
}

func (s *Shell) handleTrain(ctx context.Context, args []string) error {
	cfg := evaluator.DefaultTrainingConfig()
	switch len(args) {
	case 1:
		cfg.DatasetChoice = evaluator.ChoiceSingle
		cfg.SingleFile = args[0]
	case 2:
		cfg.DatasetChoice = evaluator.ChoiceSeparate
		cfg.TrainFile, cfg.TestFile = args[0], args[1]
	default:
		return usageError("/train")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bar := spinner.NewProgressWithConfig(spinner.ProgressConfig{
		Total:          100,
		Message:        "Training",
		ShowPercentage: true,
		Writer:         s.out,
		IsTTY:          s.tty,
	})
	bar.Start()
	out, err := s.eval.Train(ctx, cfg, bar.Func())
	if err != nil {
		bar.Fail("Training failed")
		return err
	}
	bar.Complete("Training complete")

	s.lastTraining = out
	fmt.Fprintln(s.out, view.MetricsTable(out.ReportRequest(s.cfg.Threshold).Metrics))
	fmt.Fprintln(s.out, view.Dim("Use /report training to export this run."))
	return nil
}

// reportRequest picks what /report exports: the last training run when
// asked, otherwise a model from the last comparison.
func (s *Shell) reportRequest(target string) (report.Request, error) {
	if target == trainingTarget {
		if s.lastTraining == nil {
			return report.Request{}, werrors.E(werrors.ErrCommandArgs, "no training run yet").
				WithSuggestion("Run /train <file.csv> first")
		}
		return s.lastTraining.ReportRequest(s.cfg.Threshold), nil
	}
	if s.lastCompare == nil {
		return report.Request{}, werrors.E(werrors.ErrCommandArgs, "nothing to report yet").
			WithSuggestion("Run /evaluate <dataset> first")
	}
	model := target
	if model == "" {
		model = s.lastCompare.Recommendation
	}
	return s.lastCompare.ReportRequest(model)
}

func (s *Shell) handleReport(args []string) error {
	if len(args) > 2 {
		return usageError("/report")
	}
	var target, file string
	if len(args) > 0 {
		target = args[0]
	}
	if len(args) > 1 {
		file = args[1]
	}

	req, err := s.reportRequest(target)
	if err != nil {
		return err
	}
	doc, err := report.NewBuilder().WithConfig(s.cfg.Report).WithClock(s.now).Build(req)
	if err != nil {
		return err
	}
	data, err := export.PDFBytes(doc)
	if err != nil {
		return err
	}

	path := s.outputPath(file, doc.Filename)
	if _, err := os.Stat(path); err == nil {
		ok, err := s.prompter.Confirm(fmt.Sprintf("%s exists. Overwrite?", path))
		if err != nil {
			return werrors.Wrap(err, werrors.ErrCancelled, werrors.CategoryInternal, "confirmation failed")
		}
		if !ok {
			fmt.Fprintln(s.out, "Report not written.")
			return nil
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write report").
			WithContext("path", path)
	}

	fp := export.Fingerprint(doc)
	logging.LogFields("shell", "report written", "path", path, "pages", doc.Pages, "sha256", fp)
	fmt.Fprintf(s.out, "Wrote %s (%d pages, sha256 %s)\n", view.Bold(path), doc.Pages, export.ShortFingerprint(fp))
	return nil
}

func (s *Shell) outputPath(file, def string) string {
	if file == "" {
		file = def
	}
	if filepath.IsAbs(file) || filepath.Dir(file) != "." || s.cfg.OutputDir == "" {
		return file
	}
	return filepath.Join(s.cfg.OutputDir, file)
}

func (s *Shell) handleHistory(args []string) error {
	if len(args) == 0 {
		records := s.store.List()
		if len(records) == 0 {
			fmt.Fprintln(s.out, "No evaluation runs recorded.")
			return nil
		}
		fmt.Fprintln(s.out, view.HistoryTable(records, s.cfg.Threshold))
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, view.SummaryTable(s.store.Summaries(), s.cfg.Threshold))
		return nil
	}

	rec, err := s.findRecord(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, view.RecordDetail(rec, s.cfg.Threshold))
	return nil
}

// findRecord resolves a full record ID or the unique prefix shown in the
// history table.
func (s *Shell) findRecord(id string) (history.Record, error) {
	if rec, err := s.store.Get(id); err == nil {
		return rec, nil
	}
	var found []history.Record
	for _, r := range s.store.List() {
		if strings.HasPrefix(r.ID, id) {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		return history.Record{}, werrors.HistoryNotFound(id)
	}
	return found[0], nil
}

func usageError(name string) error {
	cmd, _ := view.LookupCommand(name)
	return werrors.Ef(werrors.ErrCommandArgs, "usage: %s", cmd.Usage).WithContext("command", name)
}
