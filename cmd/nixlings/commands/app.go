package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nixlings/nixlings/internal/checker"
	"github.com/nixlings/nixlings/internal/completion"
	"github.com/nixlings/nixlings/internal/config"
	"github.com/nixlings/nixlings/internal/exercise"
	"github.com/nixlings/nixlings/internal/projectroot"
	"github.com/nixlings/nixlings/internal/runner"
)

// app carries state shared by subcommands for a single invocation.
type app struct {
	configPath string
	verbose    bool
	overrides  config.Config

	cfg       config.Config
	logger    *zap.Logger
	root      string
	manifest  string
	exercises exercise.List
	detector  *completion.Detector
	invoker   *checker.Invoker
}

func (a *app) initLogger() error {
	if a.logger != nil {
		return nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// loadConfig resolves configuration; flags set on cmd win over file and env.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = a.overrides.Manifest
	}
	if flags.Changed("marker") {
		cfg.Marker = a.overrides.Marker
	}
	if flags.Changed("marker-file") {
		cfg.MarkerFile = a.overrides.MarkerFile
	}
	if flags.Changed("checker") {
		cfg.Checker = a.overrides.Checker
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.overrides.Timeout
	}
	if flags.Changed("debounce") {
		cfg.Debounce = a.overrides.Debounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// setup loads config and manifest. With needChecker the checker program must be
// on PATH, matching the startup dependency check.
func (a *app) setup(cmd *cobra.Command, needChecker bool) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := projectroot.ManifestPath(wd, a.cfg.Manifest)
	if err != nil {
		return err
	}

	list, err := exercise.Load(manifest)
	if err != nil {
		return err
	}

	a.manifest = manifest
	a.root = filepath.Dir(manifest)
	a.exercises = list.Resolve(a.root)
	a.detector = completion.New(a.cfg.Marker, a.cfg.MarkerFile)
	a.invoker = checker.New(a.cfg.Checker,
		checker.WithTimeout(a.cfg.Timeout),
		checker.WithEnv(a.cfg.Env...))

	a.logger.Debug("manifest loaded",
		zap.String("manifest", manifest),
		zap.Int("exercises", len(list)),
		zap.Strings("checker", a.cfg.Checker))

	if needChecker {
		return a.invoker.Preflight()
	}
	return nil
}

func (a *app) newRunner(cmd *cobra.Command) *runner.Runner {
	return runner.New(a.detector, a.invoker,
		runner.WithOutput(cmd.OutOrStdout()),
		runner.WithLogger(a.logger))
}
