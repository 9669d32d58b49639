package utils

import "testing"

func TestStripTags(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Heavy duty brake pads", "Heavy duty brake pads"},
		{"simple tags", "<p>Fits most <b>trucks</b></p>", "Fits most trucks"},
		{"entities", "Bolts &amp; washers", "Bolts & washers"},
		{"whitespace collapse", "<div>\n  line one\n</div><div>line two</div>", "line one line two"},
		{"unterminated tag", "Good part <img src=", "Good part"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StripTags(tc.input)
			if got != tc.want {
				t.Errorf("StripTags(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate should not cut short text, got %q", got)
	}
	if got := Truncate("a very long description", 6); got != "a very…" {
		t.Errorf("Truncate mismatch: got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate with max 0 should be empty, got %q", got)
	}
}
