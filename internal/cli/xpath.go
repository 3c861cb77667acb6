package cli

import (
	"github.com/spf13/cobra"
)

func newXPathCommand() *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "xpath <expression> [files...]",
		Short: "Query HTML with an XPath expression",
		Long: `Xpath runs an XPath expression against one or more HTML inputs and
prints the matching elements.

Supported: absolute paths (/html/body/div), descendant steps (//div),
wildcards (*), positional predicates ([1]), and attribute predicates
([@id], [@class='x']). Attribute steps (//a/@href) select the owning
element; combine with --attr to print the value itself. Other axes and
XPath functions are recognized but rejected at evaluation time.

With no file arguments, input is read from stdin.`,
		Example: `  scrapekit xpath "//div[@class='item']" page.html
  scrapekit xpath "//a/@href" --attr href page.html
  scrapekit xpath "/html/body/div[2]" --first page.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, queryXPath, args[0], args[1:], flags)
		},
	}

	addQueryFlags(cmd, flags)
	return cmd
}
