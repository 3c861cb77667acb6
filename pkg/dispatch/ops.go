package dispatch

import (
	"context"

	"github.com/yaklabco/scrapekit/pkg/config"
	"github.com/yaklabco/scrapekit/pkg/scrape"
)

// RecordsFuture is the completion handle of a multi-result operation.
type RecordsFuture struct {
	ch chan recordsOutcome
}

type recordsOutcome struct {
	records []scrape.Record
	err     error
}

// Wait blocks until the operation completes or ctx is done. The worker
// is not interrupted by cancellation; only the wait is abandoned. Wait
// consumes the result and must be called once.
func (f *RecordsFuture) Wait(ctx context.Context) ([]scrape.Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-f.ch:
		return out.records, out.err
	}
}

// RecordFuture is the completion handle of a first-match operation.
type RecordFuture struct {
	ch chan recordOutcome
}

type recordOutcome struct {
	record scrape.Record
	ok     bool
	err    error
}

// Wait blocks until the operation completes or ctx is done. ok is false
// when nothing matched.
func (f *RecordFuture) Wait(ctx context.Context) (scrape.Record, bool, error) {
	select {
	case <-ctx.Done():
		return scrape.Record{}, false, ctx.Err()
	case out := <-f.ch:
		return out.record, out.ok, out.err
	}
}

// DocumentFuture is the completion handle of an async parse.
type DocumentFuture struct {
	ch chan documentOutcome
}

type documentOutcome struct {
	doc *Document
	err error
}

// Document pairs a parsed document with the worker goroutine having
// fully released it: receiving it from Wait transfers ownership to the
// caller, which then treats it as confined like any other Document.
type Document = scrape.Document

// Wait blocks until the parse completes or ctx is done.
func (f *DocumentFuture) Wait(ctx context.Context) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-f.ch:
		return out.doc, out.err
	}
}

// Parse parses html on a worker and transfers the resulting Document to
// whoever waits on the future.
func (p *Pool) Parse(ctx context.Context, html string, opts config.Options) (*DocumentFuture, error) {
	f := &DocumentFuture{ch: make(chan documentOutcome, 1)}
	err := p.submit(ctx, func() {
		doc, err := scrape.Parse(html, opts)
		f.ch <- documentOutcome{doc: doc, err: err}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Select parses html and runs a CSS selection on a worker, completing
// with detached records in document order.
func (p *Pool) Select(ctx context.Context, html, selector string, opts config.Options) (*RecordsFuture, error) {
	return p.records(ctx, func() ([]scrape.Record, error) {
		elements, err := scrape.Select(html, selector, opts)
		if err != nil {
			return nil, err
		}
		return scrape.Records(elements), nil
	})
}

// SelectFirst parses html and returns the first CSS match as a detached
// record.
func (p *Pool) SelectFirst(ctx context.Context, html, selector string, opts config.Options) (*RecordFuture, error) {
	return p.record(ctx, func() (scrape.Record, bool, error) {
		el, ok, err := scrape.First(html, selector, opts)
		if err != nil || !ok {
			return scrape.Record{}, false, err
		}
		return el.Record(), true, nil
	})
}

// XPath parses html and evaluates an XPath expression on a worker,
// completing with detached records in document order.
func (p *Pool) XPath(ctx context.Context, html, expr string, opts config.Options) (*RecordsFuture, error) {
	return p.records(ctx, func() ([]scrape.Record, error) {
		elements, err := scrape.XPath(html, expr, opts)
		if err != nil {
			return nil, err
		}
		return scrape.Records(elements), nil
	})
}

// XPathFirst parses html and returns the first XPath match as a
// detached record.
func (p *Pool) XPathFirst(ctx context.Context, html, expr string, opts config.Options) (*RecordFuture, error) {
	return p.record(ctx, func() (scrape.Record, bool, error) {
		el, ok, err := scrape.XPathFirst(html, expr, opts)
		if err != nil || !ok {
			return scrape.Record{}, false, err
		}
		return el.Record(), true, nil
	})
}

func (p *Pool) records(ctx context.Context, op func() ([]scrape.Record, error)) (*RecordsFuture, error) {
	f := &RecordsFuture{ch: make(chan recordsOutcome, 1)}
	err := p.submit(ctx, func() {
		records, err := op()
		f.ch <- recordsOutcome{records: records, err: err}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Pool) record(ctx context.Context, op func() (scrape.Record, bool, error)) (*RecordFuture, error) {
	f := &RecordFuture{ch: make(chan recordOutcome, 1)}
	err := p.submit(ctx, func() {
		rec, ok, err := op()
		f.ch <- recordOutcome{record: rec, ok: ok, err: err}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
