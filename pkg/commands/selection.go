package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/cardfuse/pkg/commands/options"
	"tableflip.dev/cardfuse/pkg/runner/selection"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "toggle <id>...",
		Short: "select or unselect cards by id",
		Example: `
cardfuse toggle 1
cardfuse toggle 1 10 6
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return cardCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil {
					return output.HandleError(fmt.Errorf("card id %q is not a number", a))
				}
				ids = append(ids, id)
			}
			return runSelection(cmd, selection.Toggle, ids)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addSelectAll(topLevel *cobra.Command) {
	addSelectionAction(topLevel, selection.All, "select-all",
		"select every card in the catalog")
}

func addReverse(topLevel *cobra.Command) {
	addSelectionAction(topLevel, selection.Reverse, "reverse",
		"invert the selection over the whole catalog")
}

func addReset(topLevel *cobra.Command) {
	addSelectionAction(topLevel, selection.Reset, "reset",
		"clear the selection")
}

func addSelectionAction(topLevel *cobra.Command, action selection.Action, use, short string) {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "\ncardfuse " + use + "\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelection(cmd, action, nil)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func runSelection(cmd *cobra.Command, action selection.Action, ids []int) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return output.HandleError(err)
	}
	s := selection.Selection{
		Session: e.session,
		Action:  action,
		IDs:     ids,
		JSON:    output.JSON,
		Out:     cmd.OutOrStdout(),
	}
	return output.HandleError(s.Do(cmd.Context()))
}
