package htmldom

import "testing"

func TestDecodeEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ampersand returns input", "plain text", "plain text"},
		{"named", "a &amp; b", "a & b"},
		{"angle brackets", "&lt;tag&gt;", "<tag>"},
		{"quotes", "&quot;x&apos;", `"x'`},
		{"nbsp", "a&nbsp;b", "a b"},
		{"typography", "&mdash;&hellip;", "—…"},
		{"decimal", "&#65;&#66;", "AB"},
		{"hex lowercase", "&#x61;", "a"},
		{"hex uppercase", "&#X41;", "A"},
		{"unknown name verbatim", "&nosuch;", "&nosuch;"},
		{"missing semicolon verbatim", "&amp stop", "&amp stop"},
		{"bare ampersand", "a & b", "a & b"},
		{"empty reference", "&;", "&;"},
		{"overlong candidate verbatim", "&" + "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa;", "&" + "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa;"},
		{"invalid numeric verbatim", "&#xg;", "&#xg;"},
		{"out of range numeric verbatim", "&#x110000;", "&#x110000;"},
		{"adjacent references", "&lt;&gt;", "<>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := decodeEntities(tt.input); got != tt.want {
				t.Errorf("decodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClampToRuneBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		limit int
		want  int
	}{
		{"ascii boundary untouched", "abcdef", 3, 3},
		{"mid two-byte rune backs up", "abéd", 3, 2},
		{"mid three-byte rune backs up", "a€b", 2, 1},
		{"boundary after multibyte kept", "éx", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := clampToRuneBoundary(tt.src, tt.limit); got != tt.want {
				t.Errorf("clampToRuneBoundary(%q, %d) = %d, want %d", tt.src, tt.limit, got, tt.want)
			}
		})
	}
}
