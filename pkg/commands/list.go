package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cardfuse/pkg/commands/options"
	"tableflip.dev/cardfuse/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "print the card table",
		Example: `
cardfuse list
cardfuse list --search goblin
cardfuse list --region A --sort point --desc
cardfuse list --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := list.ParseQuery(qo.Search, qo.Region, qo.Group, qo.Sort, qo.Desc)
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Session: e.session,
				Query:   q,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return columnCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("region", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return regionCompletions(cmd), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("group", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return groupCompletions(cmd), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
