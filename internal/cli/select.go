package cli

import (
	"github.com/spf13/cobra"
)

func newSelectCommand() *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "select <selector> [files...]",
		Short: "Query HTML with a CSS selector",
		Long: `Select runs a CSS selector against one or more HTML inputs and prints
the matching elements.

Supported selector features: tag names, #id, .class, [attr], [attr=v],
[attr^=v], [attr$=v], [attr*=v], descendant and child combinators, and
comma-separated selector lists.

With no file arguments, input is read from stdin. With several files,
each is parsed and queried on its own worker.`,
		Example: `  scrapekit select "div.item" page.html
  scrapekit select "a[href^=/docs]" --attr href page.html
  cat page.html | scrapekit select "ul > li" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, queryCSS, args[0], args[1:], flags)
		},
	}

	addQueryFlags(cmd, flags)
	return cmd
}
