package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/spinner"
	"github.com/r3d91ll/qmreport/pkg/view"
)

func newDatasetsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the demo datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := a.evaluator()
			fmt.Fprintln(cmd.OutOrStdout(), view.DatasetTable(ev.Registry().List()))
			return nil
		},
	}
}

func newEvaluateCommand(a *app) *cobra.Command {
	var (
		reportOut string
		model     string
	)
	cmd := &cobra.Command{
		Use:   "evaluate <dataset>",
		Short: "Compare the models on a dataset",
		Example: `  qmreport evaluate particles
  qmreport evaluate wines --report wines.pdf --model QAOA`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return evaluator.DefaultRegistry().IDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spin := spinner.NewWithConfig(spinner.Config{
				Message:     "Evaluating models on " + args[0] + "...",
				ShowElapsed: true,
				Writer:      cmd.ErrOrStderr(),
			})
			spin.Start()
			c, err := a.evaluator().Compare(cmd.Context(), args[0])
			if err != nil {
				spin.Fail("Evaluation failed")
				return err
			}
			spin.Success("Evaluation complete")

			fmt.Fprintln(cmd.OutOrStdout(), view.Header(c.Dataset.Name))
			fmt.Fprintln(cmd.OutOrStdout(), view.ComparisonTable(c, a.threshold()))

			if reportOut == "" {
				return nil
			}
			if model == "" {
				model = c.Recommendation
			}
			req, err := c.ReportRequest(model)
			if err != nil {
				return err
			}
			return a.writeReport(cmd, req, reportOut, "", 0)
		},
	}
	cmd.Flags().StringVar(&reportOut, "report", "", "also write a PDF report to this file")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model to report (default: the recommended model)")
	return cmd
}

func newTrainCommand(a *app) *cobra.Command {
	cfg := evaluator.DefaultTrainingConfig()
	var reportOut string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run a simulated training",
		Example: `  qmreport train --file data.csv
  qmreport train --train train.csv --test test.csv --epochs 50 --report training.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cfg.SingleFile != "" && (cfg.TrainFile != "" || cfg.TestFile != ""):
				return argsError(cmd, "use either --file or --train with --test")
			case cfg.SingleFile != "":
				cfg.DatasetChoice = evaluator.ChoiceSingle
			case cfg.TrainFile != "" || cfg.TestFile != "":
				cfg.DatasetChoice = evaluator.ChoiceSeparate
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			bar := spinner.NewProgressWithConfig(spinner.ProgressConfig{
				Total:          100,
				Message:        "Training",
				ShowPercentage: true,
				ShowElapsed:    true,
				Writer:         cmd.ErrOrStderr(),
			})
			bar.Start()
			out, err := a.evaluator().Train(cmd.Context(), cfg, bar.Func())
			if err != nil {
				bar.Fail("Training failed")
				return err
			}
			bar.Complete("Training complete")

			req := out.ReportRequest(a.threshold())
			fmt.Fprintln(cmd.OutOrStdout(), view.MetricsTable(req.Metrics))
			if reportOut == "" {
				return nil
			}
			return a.writeReport(cmd, req, reportOut, "", 0)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.SingleFile, "file", "", "single CSV split into train and test")
	f.StringVar(&cfg.TrainFile, "train", "", "training CSV")
	f.StringVar(&cfg.TestFile, "test", "", "test CSV")
	f.StringVar(&cfg.Class0Name, "class0", cfg.Class0Name, "name of class 0")
	f.StringVar(&cfg.Class1Name, "class1", cfg.Class1Name, "name of class 1")
	f.IntVar(&cfg.NumEpochs, "epochs", cfg.NumEpochs, "number of epochs")
	f.IntVar(&cfg.NumIterations, "iterations", cfg.NumIterations, "iterations per epoch")
	f.Float64Var(&cfg.LearningRate, "learning-rate", cfg.LearningRate, "learning rate")
	f.Float64Var(&cfg.TestSize, "test-size", cfg.TestSize, "test split fraction")
	f.Float64Var(&cfg.ValSize, "val-size", cfg.ValSize, "validation split fraction")
	f.StringVar(&reportOut, "report", "", "also write a PDF report to this file")
	return cmd
}
