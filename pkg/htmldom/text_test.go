package htmldom_test

import (
	"testing"

	"github.com/yaklabco/scrapekit/pkg/htmldom"
)

func TestCollectText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "single text run",
			src:  `<p>hello</p>`,
			want: "hello",
		},
		{
			name: "whitespace collapsed",
			src:  "<p>  hello \n\t world  </p>",
			want: "hello world",
		},
		{
			name: "sibling runs joined with one space",
			src:  `<div><span>First</span><span>Second</span></div>`,
			want: "First Second",
		},
		{
			name: "nested elements flattened in document order",
			src:  `<div>a<b>b</b>c</div>`,
			want: "a b c",
		},
		{
			name: "comments contribute nothing",
			src:  `<div>a<!-- hidden -->b</div>`,
			want: "a b",
		},
		{
			name: "whitespace-only runs vanish",
			src:  "<div>  <p>x</p>  \n  </div>",
			want: "x",
		},
		{
			name: "empty document",
			src:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.src)
			if got := htmldom.CollectText(doc, doc.Root()); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCollectText_Subtree(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div><p>inside</p></div><p>outside</p>`)
	div := firstElement(t, doc, "div")

	if got := htmldom.CollectText(doc, div); got != "inside" {
		t.Errorf("expected subtree text %q, got %q", "inside", got)
	}
}
