package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cardfuse/pkg/view"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(cardfuse completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(cardfuse completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func completionContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// cardCompletions offers card ids with the card name as description.
func cardCompletions(cmd *cobra.Command, toComplete string) []string {
	e, err := loadEnv(completionContext(cmd))
	if err != nil {
		return nil
	}
	out := []string{}
	for _, c := range e.session.Catalog().Cards() {
		id := strconv.Itoa(c.ID)
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id+"\t"+c.Name)
		}
	}
	return out
}

func regionCompletions(cmd *cobra.Command) []string {
	e, err := loadEnv(completionContext(cmd))
	if err != nil {
		return nil
	}
	out := []string{}
	for _, r := range e.session.Catalog().Regions() {
		out = append(out, r.String())
	}
	return out
}

func groupCompletions(cmd *cobra.Command) []string {
	e, err := loadEnv(completionContext(cmd))
	if err != nil {
		return nil
	}
	out := []string{}
	for _, g := range e.session.Catalog().Groups() {
		out = append(out, g.String())
	}
	return out
}

func columnCompletions() []string {
	out := []string{}
	for _, c := range view.Columns() {
		out = append(out, string(c))
	}
	return out
}
