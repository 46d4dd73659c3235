package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cardfuse/pkg/commands/options"
	"tableflip.dev/cardfuse/pkg/runner/details"
	"tableflip.dev/cardfuse/pkg/runner/summary"
)

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "print group count, total points and fusion rate of the selection",
		Example: `
cardfuse summary
cardfuse summary --lang pt --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := summary.Summary{Session: e.session, JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDetails(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "details",
		Short: "list the selected cards",
		Example: `
cardfuse details
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			d := details.Details{Session: e.session, JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
