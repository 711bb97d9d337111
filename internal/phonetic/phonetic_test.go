package phonetic_test

import (
	"testing"

	"github.com/ashishact/ramblefix/internal/phonetic"
)

func TestEncode_Codes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word      string
		primary   string
		secondary string
	}{
		{"", "", ""},
		{"John", "JN", "JN"},
		{"jon", "JN", "JN"},
		{"Charan", "XRN", "XRN"},
		{"Tandi", "TNT", "TNT"},
		{"knight", "NT", "NT"},
		{"night", "NT", "NT"},
		{"write", "RT", "RT"},
		{"psalm", "SLM", "SLM"},
		{"phone", "FN", "FN"},
		{"shoe", "X", "X"},
		{"check", "XK", "XK"},
		{"cell", "SL", "SL"},
		{"cat", "KT", "KT"},
		{"think", "0NK", "TNK"},
		{"Xavier", "SFR", "SFR"},
		{"box", "BKS", "BKS"},
		{"quiz", "KS", "KS"},
		{"apple", "APL", "APL"},
		{"edge", "AJ", "AJ"},
		{"weigh", "W", "W"},
	}
	for _, tt := range tests {
		got := phonetic.Encode(tt.word)
		if got.Primary != tt.primary || got.Secondary != tt.secondary {
			t.Errorf("Encode(%q) = {%q, %q}, want {%q, %q}",
				tt.word, got.Primary, got.Secondary, tt.primary, tt.secondary)
		}
	}
}

func TestEncode_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"Eldrinax", "GRIMJAW", "tower", "O'Brien"} {
		if phonetic.Encode(word) != phonetic.Encode(toggleCase(word)) {
			t.Errorf("Encode(%q) differs from case-toggled input", word)
		}
	}
}

func TestEncode_MaxLength(t *testing.T) {
	t.Parallel()

	code := phonetic.Encode("Charantandi")
	if len(code.Primary) > 4 || len(code.Secondary) > 4 {
		t.Errorf("Encode produced over-long code: %+v", code)
	}
	if code.Primary != "XRNT" {
		t.Errorf("Encode(\"Charantandi\").Primary = %q, want %q", code.Primary, "XRNT")
	}
}

func TestCompatibleWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"John", "jon", true},
		{"night", "knight", true},
		{"think", "tink", true}, // secondary TH=T aligns
		{"John", "yesterday", false},
		{"cat", "dog", false},
	}
	for _, tt := range tests {
		got := phonetic.Encode(tt.a).CompatibleWith(phonetic.Encode(tt.b))
		if got != tt.want {
			t.Errorf("CompatibleWith(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompatibleWith_EmptyCodesNeverMatch(t *testing.T) {
	t.Parallel()

	empty := phonetic.Encode("")
	if empty.CompatibleWith(empty) {
		t.Error("two empty codes must not be considered compatible")
	}
	if empty.CompatibleWith(phonetic.Encode("John")) {
		t.Error("empty code must not match a real code")
	}
}

// toggleCase flips the case of every ASCII letter in s.
func toggleCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}
