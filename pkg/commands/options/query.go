package options

import (
	"github.com/spf13/cobra"
)

// QueryOptions shape the card table.
type QueryOptions struct {
	Search string
	Region string
	Group  string
	Sort   string
	Desc   bool
}

func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show cards whose name contains this text.")
	cmd.Flags().StringVarP(&o.Region, "region", "r", "",
		"Only show cards from this region.")
	cmd.Flags().StringVarP(&o.Group, "group", "g", "",
		"Only show cards from this group.")
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Sort by column: id, name, point, group or region.")
	cmd.Flags().BoolVar(&o.Desc, "desc", false,
		"Sort descending.")
}
