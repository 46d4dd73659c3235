package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/runner/help"
)

func addGuide(topLevel *cobra.Command) {
	raw := false
	width := 80
	cmd := &cobra.Command{
		Use:     "guide",
		Aliases: []string{"usage"},
		Short:   "show the usage guide in the selected language",
		Example: `
cardfuse guide
cardfuse guide --lang kr
cardfuse guide --raw
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			h := help.Help{Session: e.session, Raw: raw, Width: width, Out: cmd.OutOrStdout()}
			return h.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source.")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap rendered text at this width.")
	topLevel.AddCommand(cmd)
}

func addLanguages(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "list the display languages",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			bold := color.New(color.Bold)
			bundle := i18n.Default()

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Code"), bold.Sprint("Tag"), bold.Sprint("Name"))
			for _, l := range bundle.Locales() {
				c := bundle.Catalog(l)
				tbl.AddRow(string(l), c.Tag.String(), c.Name)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
		},
	}

	topLevel.AddCommand(cmd)
}
