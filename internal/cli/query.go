package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/scrapekit/internal/configloader"
	"github.com/yaklabco/scrapekit/internal/logging"
	"github.com/yaklabco/scrapekit/internal/ui/pretty"
	"github.com/yaklabco/scrapekit/pkg/config"
	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/dispatch"
	"github.com/yaklabco/scrapekit/pkg/scrape"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

// queryKind selects the query engine a command drives.
type queryKind int

const (
	queryCSS queryKind = iota
	queryXPath
)

type queryFlags struct {
	first    bool
	jsonOut  bool
	attr     string
	maxSize  int
	truncate bool
	jobs     int
}

func addQueryFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().BoolVar(&flags.first, "first", false, "stop at the first match per input")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "output matches as JSON")
	cmd.Flags().StringVar(&flags.attr, "attr", "", "print only this attribute's value per match")
	cmd.Flags().IntVar(&flags.maxSize, "max-size", 0, "input size limit in bytes (0 = configured default)")
	cmd.Flags().BoolVar(&flags.truncate, "truncate", false, "truncate oversized input instead of failing")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "parallel workers for multiple inputs (0 = auto)")
}

// fileResult is the outcome of querying one input.
type fileResult struct {
	Name      string          `json:"file"`
	Records   []scrape.Record `json:"elements"`
	Truncated bool            `json:"truncated,omitempty"`
	err       error
}

func runQuery(cmd *cobra.Command, kind queryKind, query string, files []string, flags *queryFlags) error {
	logger := logging.Default()

	// Validate the query up front so a typo fails before any input is
	// read, with the engine's own position-carrying error.
	if kind == queryCSS {
		if _, err := cssselect.Parse(query); err != nil {
			return err
		}
	} else {
		if _, err := xpathlite.Parse(query); err != nil {
			return err
		}
	}

	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := loaded.Options
	if cmd.Flags().Changed("max-size") {
		opts.MaxSizeBytes = flags.maxSize
	}
	if cmd.Flags().Changed("truncate") {
		opts.TruncateOnLimit = flags.truncate
	}
	jobs := loaded.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = flags.jobs
	}

	if len(files) == 0 {
		files = []string{"-"}
	}

	logger.Debug("running query",
		logging.FieldSelector, query,
		logging.FieldJobs, jobs,
		"inputs", len(files),
	)

	var results []fileResult
	if len(files) == 1 {
		results = []fileResult{queryOne(files[0], kind, query, flags.first, opts)}
	} else {
		results = queryMany(cmd.Context(), files, kind, query, flags, opts, jobs)
	}

	return report(cmd, loaded, flags, results, len(files) > 1)
}

// queryOne runs the synchronous path on the caller's goroutine.
func queryOne(name string, kind queryKind, query string, first bool, opts config.Options) fileResult {
	result := fileResult{Name: displayName(name)}

	content, err := readInput(name)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := scrape.Parse(content, opts)
	if err != nil {
		result.err = err
		return result
	}
	result.Truncated = doc.Truncated()

	if first {
		el, ok, err := findFirst(doc, kind, query)
		if err != nil {
			result.err = err
		} else if ok {
			result.Records = []scrape.Record{el.Record()}
		}
		return result
	}

	elements, err := selectAll(doc, kind, query)
	if err != nil {
		result.err = err
		return result
	}
	result.Records = scrape.Records(elements)
	return result
}

// queryMany fans inputs out over the dispatch pool. Workers hand back
// detached records only; no document crosses a goroutine boundary.
func queryMany(ctx context.Context, files []string, kind queryKind, query string, flags *queryFlags, opts config.Options, jobs int) []fileResult {
	if ctx == nil {
		ctx = context.Background()
	}

	pool := dispatch.NewPool(jobs, len(files))
	defer pool.Close()

	type pending struct {
		result  fileResult
		records *dispatch.RecordsFuture
		record  *dispatch.RecordFuture
	}

	queue := make([]pending, 0, len(files))
	for _, name := range files {
		p := pending{result: fileResult{Name: displayName(name)}}

		content, err := readInput(name)
		if err != nil {
			p.result.err = err
			queue = append(queue, p)
			continue
		}

		if flags.first {
			p.record, err = submitFirst(ctx, pool, kind, content, query, opts)
		} else {
			p.records, err = submitAll(ctx, pool, kind, content, query, opts)
		}
		if err != nil {
			p.result.err = err
		}
		queue = append(queue, p)
	}

	results := make([]fileResult, 0, len(queue))
	for _, p := range queue {
		switch {
		case p.records != nil:
			p.result.Records, p.result.err = p.records.Wait(ctx)
		case p.record != nil:
			rec, ok, err := p.record.Wait(ctx)
			if err != nil {
				p.result.err = err
			} else if ok {
				p.result.Records = []scrape.Record{rec}
			}
		}
		results = append(results, p.result)
	}
	return results
}

func submitAll(ctx context.Context, pool *dispatch.Pool, kind queryKind, content, query string, opts config.Options) (*dispatch.RecordsFuture, error) {
	if kind == queryCSS {
		return pool.Select(ctx, content, query, opts)
	}
	return pool.XPath(ctx, content, query, opts)
}

func submitFirst(ctx context.Context, pool *dispatch.Pool, kind queryKind, content, query string, opts config.Options) (*dispatch.RecordFuture, error) {
	if kind == queryCSS {
		return pool.SelectFirst(ctx, content, query, opts)
	}
	return pool.XPathFirst(ctx, content, query, opts)
}

func selectAll(doc *scrape.Document, kind queryKind, query string) ([]scrape.Element, error) {
	if kind == queryCSS {
		return doc.Select(query)
	}
	return doc.XPath(query)
}

func findFirst(doc *scrape.Document, kind queryKind, query string) (scrape.Element, bool, error) {
	if kind == queryCSS {
		return doc.Find(query)
	}
	return doc.XPathFirst(query)
}

// report renders results and maps the aggregate outcome to an error.
func report(cmd *cobra.Command, loaded *configloader.Result, flags *queryFlags, results []fileResult, multi bool) error {
	logger := logging.Default()
	out := cmd.OutOrStdout()

	var firstErr error
	total := 0
	for i := range results {
		if results[i].err != nil {
			logger.Error("query failed",
				logging.FieldFile, results[i].Name,
				logging.FieldError, results[i].err,
			)
			if firstErr == nil {
				firstErr = results[i].err
			}
			continue
		}
		total += len(results[i].Records)
	}

	colorMode := resolveColorMode(cmd, loaded)

	switch {
	case flags.attr != "":
		for _, res := range results {
			for _, rec := range res.Records {
				if value, ok := rec.Attr(flags.attr); ok {
					fmt.Fprintln(out, value)
				}
			}
		}
	case flags.jsonOut:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if multi {
			if err := enc.Encode(results); err != nil {
				return fmt.Errorf("encode results: %w", err)
			}
		} else if err := enc.Encode(results[0].Records); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	default:
		renderer := pretty.NewRenderer(out, colorMode)
		for _, res := range results {
			if res.err != nil {
				continue
			}
			if multi {
				fmt.Fprintf(out, "%s\n", res.Name)
			}
			if err := renderer.RenderRecords(res.Records); err != nil {
				return fmt.Errorf("render results: %w", err)
			}
			if err := renderer.RenderSummary(len(res.Records), res.Truncated); err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if total == 0 {
		return ErrNoMatches
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*configloader.Result, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, &errConfig{err: err}
	}

	logger := logging.Default()
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if loaded.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldFile, loaded.LoadedFrom)
	}
	return loaded, nil
}

func resolveColorMode(cmd *cobra.Command, loaded *configloader.Result) string {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil || colorMode == "" {
		colorMode = loaded.Color
	}
	if colorMode == "" {
		colorMode = "auto"
	}
	return colorMode
}
