package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/rates"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries process state shared by every command.
type app struct {
	envFile string
	debug   bool

	cfg    *config.AppConfig
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "imobcalc",
		Short: "Real-estate investment simulator and comparable valuation CLI",
		Long: `Simulates selling a pre-construction unit at every point of its installment
plan against fixed-income alternatives, and values properties from weighted
market comparables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Read configuration from this .env file (default: .env when present)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		a.simulateCmd(),
		a.chartCmd(),
		a.valuateCmd(),
		a.validateCmd(),
		a.indicesCmd(),
		a.sensitivityCmd(),
		a.compareCmd(),
		a.breakevenCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. Logs go to stderr so that
// formatted output on stdout stays clean.
func (a *app) setup(stderr io.Writer) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.LoadAppConfig(files...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(stderr)
	if a.debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// newCompareEngine returns an engine that logs each scenario under --debug.
func (a *app) newCompareEngine() *compare.CompareEngine {
	engine := calculation.NewCalculationEngine()
	if a.debug {
		engine.SetLogger(a.logger)
		engine.Debug = true
	}
	return compare.NewCompareEngine(engine)
}

// rateProvider queries the Central Bank and falls back to the defaults.
func (a *app) rateProvider() rates.Provider {
	bcb := rates.NewBCBProvider(a.cfg.BCBBaseURL, a.cfg.RateTimeout, a.logger)
	return rates.NewFallbackProvider(bcb, a.logger)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imobcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// planName is the document name, or the file name without extension.
func planName(name, filename string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
