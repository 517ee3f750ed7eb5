// Package cli provides the fusioncalc command-line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/dataset"
	"github.com/katalvlaran/personafuse/fusion"
	"github.com/katalvlaran/personafuse/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	cleanup func() error
	engine  *fusion.Engine

	// flags
	dataPath  string
	noDLC     bool
	logLevel  string
	logFormat string
	logFile   string
}

// offline commands run without loading a catalogue. Their subcommands, such
// as "completion bash", are offline too.
var offline = map[string]bool{
	"help":                   true,
	"completion":             true,
	cobra.ShellCompRequestCmd: true,
	"key":                    true,
	"about":                  true,
}

func isOffline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if offline[c.Name()] {
			return true
		}
	}
	return false
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "fusioncalc",
		Short: "Persona fusion calculator",
		Long: `fusioncalc precomputes every two-persona fusion of a catalogue and answers
questions about it: what a pair fuses into, which pairs produce a persona,
and which fusions a persona takes part in.

The catalogue is read from FUSION_DATA or --data (a TSV directory or a YAML
bundle); without either, the embedded sample catalogue is used.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isOffline(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dataPath, "data", "", "catalogue directory or YAML bundle (overrides FUSION_DATA)")
	pf.BoolVar(&a.noDLC, "no-dlc", false, "exclude DLC personas (overrides FUSION_INCLUDE_DLC)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides FUSION_LOG_LEVEL)")
	pf.StringVar(&a.logFormat, "log-format", "", "text or json (overrides FUSION_LOG_FORMAT)")
	pf.StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file (overrides FUSION_LOG_FILE)")

	root.AddCommand(
		a.personaCmd(),
		a.arcanaCmd(),
		a.personasCmd(),
		a.fusionsToCmd(),
		a.fuseCmd(),
		a.relatedCmd(),
		a.chainCmd(),
		a.keyCmd(),
		a.aboutCmd(),
		a.shellCmd(),
		a.exportCmd(),
		a.verifyCmd(),
	)

	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads config, applies flag overrides, builds the logger, loads the
// catalogue and builds the engine. The environment is validated only after
// the flags are applied, so a flag can replace a bad env value.
func (a *app) setup(cmd *cobra.Command) (err error) {
	var cfg config.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = a.dataPath
	}
	if flags.Changed("no-dlc") {
		cfg.IncludeDLC = !a.noDLC
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, cleanup, err := config.SetupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log, a.cleanup = logger, cleanup

	// PersistentPostRunE does not run after a failed setup.
	defer func() {
		if err != nil {
			_ = cleanup()
			a.cleanup = nil
		}
	}()

	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}

	a.engine, err = fusion.New(cat, fusion.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build fusion table: %w", err)
	}

	return nil
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	log := config.Component(a.log, "cli")

	var (
		cat *catalog.Catalog
		err error
	)
	if a.cfg.DataPath == "" {
		log.Debug("loading embedded sample catalogue")
		cat, err = dataset.Sample()
	} else {
		log.Debug("loading catalogue", slog.String("path", a.cfg.DataPath))
		cat, err = dataset.Load(a.cfg.DataPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}

	if !a.cfg.IncludeDLC {
		cat, err = cat.WithoutDLC()
		if err != nil {
			return nil, fmt.Errorf("exclude DLC personas: %w", err)
		}
	}

	return cat, nil
}
