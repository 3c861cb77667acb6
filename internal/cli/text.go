package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/scrapekit/internal/logging"
	"github.com/yaklabco/scrapekit/pkg/scrape"
)

func newTextCommand() *cobra.Command {
	var selector string
	var maxSize int
	var truncate bool

	cmd := &cobra.Command{
		Use:   "text [files...]",
		Short: "Extract normalized text content",
		Long: `Text parses each input and prints its text content with whitespace
normalized: runs of whitespace collapse to single spaces and text from
sibling nodes is joined with a space.

With --selector, only the text of matching elements is printed, one
line per match. With no file arguments, input is read from stdin.`,
		Example: `  scrapekit text page.html
  scrapekit text --selector "h1, h2" page.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := loaded.Options
			if cmd.Flags().Changed("max-size") {
				opts.MaxSizeBytes = maxSize
			}
			if cmd.Flags().Changed("truncate") {
				opts.TruncateOnLimit = truncate
			}

			files := args
			if len(files) == 0 {
				files = []string{"-"}
			}

			logger := logging.Default()
			out := cmd.OutOrStdout()

			var firstErr error
			emitted := 0
			for _, name := range files {
				content, err := readInput(name)
				if err == nil {
					var doc *scrape.Document
					doc, err = scrape.Parse(content, opts)
					if err == nil {
						if selector == "" {
							fmt.Fprintln(out, doc.Text())
							emitted++
							continue
						}
						var elements []scrape.Element
						elements, err = doc.Select(selector)
						if err == nil {
							for _, el := range elements {
								fmt.Fprintln(out, el.Text())
							}
							emitted += len(elements)
							continue
						}
					}
				}
				logger.Error("text extraction failed",
					logging.FieldFile, displayName(name),
					logging.FieldError, err,
				)
				if firstErr == nil {
					firstErr = err
				}
			}

			if firstErr != nil {
				return firstErr
			}
			if selector != "" && emitted == 0 {
				return ErrNoMatches
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&selector, "selector", "s", "", "extract text only from elements matching this CSS selector")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "input size limit in bytes (0 = configured default)")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "truncate oversized input instead of failing")

	return cmd
}
