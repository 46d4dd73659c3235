package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/runner/ui"
	"tableflip.dev/cardfuse/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	noWatch := false
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive card table",
		Example: `
cardfuse ui
cardfuse ui --lang kr
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), !noWatch)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"Do not reload the selection when another cardfuse process changes it.")

	topLevel.AddCommand(cmd)
}

func runUI(ctx context.Context, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}

	var events <-chan store.Event
	if watch {
		events, err = e.selections.Watch(ctx)
		if err != nil {
			logger.Debug("selection watch unavailable", zap.Error(err))
			events = nil
		}
	}

	u := ui.UI{Session: e.session, Events: events, Logger: logger}
	return u.Do(ctx)
}
