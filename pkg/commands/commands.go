package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/cardfuse/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	global = &options.GlobalOptions{}
	logger = zap.NewNop()
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cardfuse",
		Short: options.Wrap80("Browse a card catalog, pick cards to fuse and see the fusion rate."),
		Long: `cardfuse shows a card catalog as a sortable, filterable table. The cards you
select are saved between runs, and a summary reports how many groups are
selected, their total points and the resulting fusion rate.

Run without a subcommand to open the interactive table.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var l *zap.Logger
			var err error
			// The interactive table owns the terminal, so it logs to a file
			// in the store directory instead of stderr.
			if cmd.Name() == "cardfuse" || cmd.Name() == "ui" {
				l, err = newTUILogger(global.Verbose)
			} else {
				l, err = newLogger(global.Verbose)
			}
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), true)
		},
	}

	options.AddGlobalArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addToggle(topLevel)
	addSelectAll(topLevel)
	addReverse(topLevel)
	addReset(topLevel)
	addSummary(topLevel)
	addDetails(topLevel)
	addGuide(topLevel)
	addLanguages(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// LogFileName is the log written next to the persisted selection while the
// interactive table runs.
const LogFileName = "cardfuse.log"

func newLogger(verbose bool, paths ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if len(paths) > 0 {
		config.OutputPaths = paths
		config.ErrorOutputPaths = paths
	}
	return config.Build()
}

func newTUILogger(verbose bool) (*zap.Logger, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	dir := cfg.BasePath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return newLogger(verbose, filepath.Join(dir, LogFileName))
}
