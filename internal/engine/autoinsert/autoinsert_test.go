package autoinsert

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		proposed   string
		previous   string
		cursor     int
		wantText   string
		wantCursor int
	}{
		{"open paren pairs", "a(b", "ab", 2, "a()b", 2},
		{"open brace pairs", "{", "", 1, "{}", 1},
		{"open bracket at end", "x[", "x", 2, "x[]", 2},
		{"double quote pairs", `say "`, "say ", 5, `say ""`, 5},
		{"single quote pairs", "'", "", 1, "''", 1},
		{"closer skips existing closer", "a())b", "a()b", 3, "a()b", 3},
		{"brace skip-over", "{}}", "{}", 2, "{}", 2},
		{"quote skip-over", `"x""`, `"x"`, 3, `"x"`, 3},
		{"closer without match inserts", "a)b", "ab", 2, "a)b", 2},
		{"closer before different closer", "(]", "(", 2, "(]", 2},
		{"tab expands", "a\tb", "ab", 2, "a    b", 5},
		{"tab at start", "\tx", "x", 1, "    x", 4},
		{"plain char passes", "abc", "ab", 3, "abc", 3},
		{"deletion passes", "a", "ab", 1, "a", 1},
		{"no-op passes", "ab", "ab", 1, "ab", 1},
		{"multi-rune paste passes", "a(((b", "ab", 4, "a(((b", 4},
		{"cursor out of range passes", "a(b", "ab", 7, "a(b", 7},
		{"multibyte context", "é(ü", "éü", 2, "é()ü", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotCursor := Apply(tt.proposed, tt.previous, tt.cursor)
			if gotText != tt.wantText {
				t.Errorf("Apply() text = %q, want %q", gotText, tt.wantText)
			}
			if gotCursor != tt.wantCursor {
				t.Errorf("Apply() cursor = %d, want %d", gotCursor, tt.wantCursor)
			}
		})
	}
}

func TestApplySkipOverAdvancesByOne(t *testing.T) {
	// Caret sits between "(" and ")" at 2; typing ")" must move it to 3
	// without duplicating the closer.
	previous := "a()b"
	proposed := "a())b"
	text, cursor := Apply(proposed, previous, 3)
	if text != previous {
		t.Errorf("Apply() text = %q, want %q", text, previous)
	}
	if cursor != 2+1 {
		t.Errorf("Apply() cursor = %d, want %d", cursor, 3)
	}
}
