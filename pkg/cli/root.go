// Package cli implements the qmreport command tree.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/r3d91ll/qmreport/pkg/config"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/logging"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// EnvPrefix prefixes the environment variables that override configuration,
// e.g. QMREPORT_SERVER_PORT.
const EnvPrefix = "QMREPORT"

// skipConfigLoad annotates commands that run without reading the
// configuration file.
const skipConfigLoad = "qmreport/skip-config"

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo injects build-time version details.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// app is the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config

	// historyStore is loaded on first use.
	historyStore *history.Store
}

// NewRootCommand builds the command tree. Each call has its own viper
// instance, so trees are independent.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "qmreport",
		Short: "Quantum model evaluation reports",
		Long: `qmreport evaluates quantum classifiers on demo datasets and renders the
results as a paginated PDF report, from the command line, an interactive
shell or an HTTP API.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfigLoad] != "" {
				if a.cfgFile == "" {
					a.cfgFile = config.DefaultConfigPath()
				}
				a.cfg = config.Default()
				return nil
			}
			if err := a.load(); err != nil {
				return err
			}
			return logging.Init(a.cfg.Logging.File)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default qmreport.yaml)")
	root.PersistentFlags().String("log-file", "", "append log output to this file")
	_ = a.v.BindPFlag("logging.file", root.PersistentFlags().Lookup("log-file"))

	root.AddCommand(
		newReportCommand(a),
		newEvaluateCommand(a),
		newDatasetsCommand(a),
		newTrainCommand(a),
		newHistoryCommand(a),
		newServeCommand(a),
		newShellCommand(a),
		newConfigCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute() error {
	defer logging.Close()
	return NewRootCommand().Execute()
}

// ----------------------------------------------------------------------------
// Configuration overlay
// ----------------------------------------------------------------------------

// override copies one viper key onto the configuration when it is set.
type override struct {
	key   string
	apply func(v *viper.Viper, c *config.Config)
}

var overrides = []override{
	{"report.author", func(v *viper.Viper, c *config.Config) { c.Report.Author = v.GetString("report.author") }},
	{"report.creator", func(v *viper.Viper, c *config.Config) { c.Report.Creator = v.GetString("report.creator") }},
	{"report.version", func(v *viper.Viper, c *config.Config) { c.Report.Version = v.GetString("report.version") }},
	{"report.status", func(v *viper.Viper, c *config.Config) { c.Report.Status = v.GetString("report.status") }},
	{"report.default_model_name", func(v *viper.Viper, c *config.Config) {
		c.Report.DefaultModelName = v.GetString("report.default_model_name")
	}},
	{"report.output_dir", func(v *viper.Viper, c *config.Config) { c.Report.OutputDir = v.GetString("report.output_dir") }},
	{"report.preview_scale", func(v *viper.Viper, c *config.Config) {
		c.Report.PreviewScale = v.GetFloat64("report.preview_scale")
	}},
	{"report.threshold.good", func(v *viper.Viper, c *config.Config) {
		c.Report.Threshold.Good = v.GetFloat64("report.threshold.good")
	}},
	{"report.threshold.warning", func(v *viper.Viper, c *config.Config) {
		c.Report.Threshold.Warning = v.GetFloat64("report.threshold.warning")
	}},
	{"server.host", func(v *viper.Viper, c *config.Config) { c.Server.Host = v.GetString("server.host") }},
	{"server.port", func(v *viper.Viper, c *config.Config) { c.Server.Port = v.GetInt("server.port") }},
	{"server.enable_logging", func(v *viper.Viper, c *config.Config) {
		c.Server.EnableLogging = v.GetBool("server.enable_logging")
	}},
	{"server.cors_origins", func(v *viper.Viper, c *config.Config) {
		c.Server.CORSOrigins = v.GetStringSlice("server.cors_origins")
	}},
	{"evaluation.delay", func(v *viper.Viper, c *config.Config) { c.Evaluation.Delay = v.GetDuration("evaluation.delay") }},
	{"evaluation.step_interval", func(v *viper.Viper, c *config.Config) {
		c.Evaluation.StepInterval = v.GetDuration("evaluation.step_interval")
	}},
	{"evaluation.history_file", func(v *viper.Viper, c *config.Config) {
		c.Evaluation.HistoryFile = v.GetString("evaluation.history_file")
	}},
	{"logging.file", func(v *viper.Viper, c *config.Config) { c.Logging.File = v.GetString("logging.file") }},
}

// load reads the YAML configuration and lays bound flags and QMREPORT_*
// environment variables over it.
func (a *app) load() error {
	path := a.cfgFile
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	var (
		cfg *config.Config
		err error
	)
	if explicit {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return err
	}

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, o := range overrides {
		_ = a.v.BindEnv(o.key)
	}
	for _, o := range overrides {
		if a.v.IsSet(o.key) {
			o.apply(a.v, cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfgFile = path
	a.cfg = cfg
	return nil
}

// ----------------------------------------------------------------------------
// Shared collaborators
// ----------------------------------------------------------------------------

func (a *app) threshold() *metrics.Threshold {
	th := a.cfg.Report.Threshold
	return &th
}

func (a *app) evaluator() *evaluator.Evaluator {
	return evaluator.New(nil, a.cfg.EvaluatorConfig())
}

// store returns the configured history file, or the built-in log.
func (a *app) store() (*history.Store, error) {
	if a.historyStore != nil {
		return a.historyStore, nil
	}
	if f := a.cfg.Evaluation.HistoryFile; f != "" {
		s, err := history.LoadFile(f)
		if err != nil {
			return nil, err
		}
		a.historyStore = s
	} else {
		a.historyStore = history.NewStaticStore()
	}
	return a.historyStore, nil
}

// bindFlag binds a command flag to a configuration key so the flag wins
// over the file and the environment.
func (a *app) bindFlag(cmd *cobra.Command, key, flag string) {
	_ = a.v.BindPFlag(key, cmd.Flags().Lookup(flag))
}

func argsError(cmd *cobra.Command, msg string) error {
	return werrors.E(werrors.ErrCommandArgs, msg).
		WithContext("command", cmd.CommandPath()).
		WithSuggestion("Run '" + cmd.CommandPath() + " --help' for usage")
}
