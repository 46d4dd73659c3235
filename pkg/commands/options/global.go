package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions override the config file for a single invocation.
type GlobalOptions struct {
	Store   string
	Catalog string
	Locale  string
	Verbose bool
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Store, "store", "",
		"Directory holding the persisted selection. Defaults to the config value or ~/.cardfuse.db.")
	cmd.PersistentFlags().StringVar(&o.Catalog, "catalog", "",
		Wrap80("Card catalog to load: a JSON or YAML file, or an http(s) URL. Defaults to the config value or cards-data.json."))
	cmd.PersistentFlags().StringVarP(&o.Locale, "lang", "l", "",
		"Display language: EN, KR or PT.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Enable debug logging.")
}
