package dispatch_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/scrapekit/pkg/config"
	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/dispatch"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
	"github.com/yaklabco/scrapekit/pkg/scrape"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

const sampleHTML = `<div class="item" data-id="1"><a href="/a">First</a></div>` +
	`<div class="item" data-id="2"><a href="/b">Second</a></div>`

func newPool(t *testing.T) *dispatch.Pool {
	t.Helper()
	pool := dispatch.NewPool(4, 16)
	t.Cleanup(pool.Close)
	return pool
}

func TestPool_SelectMatchesSync(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.Select(ctx, sampleHTML, ".item", config.Default())
	require.NoError(t, err)
	async, err := future.Wait(ctx)
	require.NoError(t, err)

	elements, err := scrape.Select(sampleHTML, ".item", config.Default())
	require.NoError(t, err)
	sync := scrape.Records(elements)

	// The async path and the sync path agree structurally.
	assert.Equal(t, sync, async)
}

func TestPool_XPathMatchesSync(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.XPath(ctx, sampleHTML, "//a", config.Default())
	require.NoError(t, err)
	async, err := future.Wait(ctx)
	require.NoError(t, err)

	elements, err := scrape.XPath(sampleHTML, "//a", config.Default())
	require.NoError(t, err)
	assert.Equal(t, scrape.Records(elements), async)
}

func TestPool_SelectFirst(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.SelectFirst(ctx, sampleHTML, ".item", config.Default())
	require.NoError(t, err)
	rec, ok, err := future.Wait(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", rec.Get("data-id", ""))

	future, err = pool.SelectFirst(ctx, sampleHTML, ".missing", config.Default())
	require.NoError(t, err)
	_, ok, err = future.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPool_XPathFirst(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.XPathFirst(ctx, sampleHTML, "//a", config.Default())
	require.NoError(t, err)
	rec, ok, err := future.Wait(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/a", rec.Get("href", ""))
}

func TestPool_Parse(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.Parse(ctx, sampleHTML, config.Default())
	require.NoError(t, err)
	doc, err := future.Wait(ctx)
	require.NoError(t, err)

	// Ownership transferred: the caller queries the document directly.
	items, err := doc.Select(".item")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPool_ErrorsPropagateTyped(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	future, err := pool.Select(ctx, sampleHTML, "[bad", config.Default())
	require.NoError(t, err)
	_, err = future.Wait(ctx)
	var synErr *cssselect.SyntaxError
	assert.ErrorAs(t, err, &synErr)

	xf, err := pool.XPath(ctx, sampleHTML, "//div[last()]", config.Default())
	require.NoError(t, err)
	_, err = xf.Wait(ctx)
	var evalErr *xpathlite.EvalError
	assert.ErrorAs(t, err, &evalErr)

	sf, err := pool.Select(ctx, sampleHTML, ".item", config.Options{MaxSizeBytes: 4})
	require.NoError(t, err)
	_, err = sf.Wait(ctx)
	var sizeErr *htmldom.SizeLimitError
	assert.ErrorAs(t, err, &sizeErr)
}

func TestPool_ConcurrentOperationsIndependent(t *testing.T) {
	t.Parallel()

	pool := newPool(t)
	ctx := context.Background()

	const n = 20
	futures := make([]*dispatch.RecordsFuture, n)
	for i := range futures {
		html := fmt.Sprintf(`<div class="x" data-n="%d">doc %d</div>`, i, i)
		f, err := pool.Select(ctx, html, ".x", config.Default())
		require.NoError(t, err)
		futures[i] = f
	}

	for i, f := range futures {
		records, err := f.Wait(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, fmt.Sprintf("%d", i), records[0].Get("data-n", ""))
		assert.Equal(t, fmt.Sprintf("doc %d", i), records[0].Text)
	}
}

func TestPool_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	pool := newPool(t)

	future, err := pool.Select(context.Background(), sampleHTML, ".item", config.Default())
	require.NoError(t, err)

	// Waiting with an expired context races against completion; whichever
	// side wins, a non-nil error must be the context's own.
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	if _, err := future.Wait(ctx); err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		// The worker still completed; a fresh wait drains the result.
		records, err := future.Wait(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 2)
	}
}

func TestNewPool_Defaults(t *testing.T) {
	t.Parallel()

	// Zero workers falls back to a usable pool.
	pool := dispatch.NewPool(0, 0)
	defer pool.Close()

	f, err := pool.Select(context.Background(), sampleHTML, ".item", config.Default())
	require.NoError(t, err)
	records, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
