package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errInvalid marks a run that completed but found invalid input. The details
// were already written to stdout.
var errInvalid = errors.New("input is invalid")

type app struct {
	cfg    config
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{logger: zap.NewNop(), stdin: stdin, stdout: stdout, stderr: stderr}
	var verbose bool

	root := &cobra.Command{
		Use:   "formfields",
		Short: "Render, validate and fill schema-driven form fields",
		Long: `formfields works with field schemas: YAML or JSON documents mapping field
names to their type, label, validation rules and sanitizer.

Environment:
  FORMFIELDS_TEMPLATES_DIR  directory with field template overrides
  FORMFIELDS_LOG_LEVEL      debug, info, warn or error (default warn)
  FORMFIELDS_VERBOSE        same as --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if verbose {
				cfg.Verbose = true
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.renderCmd(),
		a.validateCmd(),
		a.fillCmd(),
		a.importOpenAPICmd(),
		a.lintCmd(),
	)
	return root
}
