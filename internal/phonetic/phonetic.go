// Package phonetic implements a simplified Double Metaphone encoder tuned for
// English orthography.
//
// A word is reduced to a pair of short sound-alike codes (primary and
// secondary). Two words are considered phonetically compatible when any code
// of one equals any code of the other. The encoder is the foundation of the
// entity matching stack: speech-to-text output has unreliable spelling but
// mostly faithful sound, so matching on pronunciation recovers entities that
// plain edit distance misses ("jon" vs "John", "Eldrinax" vs "elder nacks").
//
// The rule table below is deliberately fixed. Changing a single rule shifts
// which English word pairs encode alike and silently changes match recall, so
// any adjustment needs to be validated against the corpus tests.
package phonetic

import "strings"

// maxCodeLen caps both phonetic codes. Four characters are enough to
// discriminate ordinary English words while staying robust to noisy suffixes.
const maxCodeLen = 4

// Code is an ordered pair of sound-alike codes for one word. Both values are
// uppercase, at most four characters, and possibly empty. Primary and
// Secondary differ only where a rule is ambiguous (currently the TH digraph).
type Code struct {
	Primary   string
	Secondary string
}

// CompatibleWith reports whether c and other share at least one non-empty
// code across the four primary/secondary combinations.
func (c Code) CompatibleWith(other Code) bool {
	for _, a := range [2]string{c.Primary, c.Secondary} {
		if a == "" {
			continue
		}
		if a == other.Primary || a == other.Secondary {
			return true
		}
	}
	return false
}

// silentStarts lists initial digraphs whose first letter is not pronounced
// (gnome, knight, pneumonia, write, psalm).
var silentStarts = [...]string{"GN", "KN", "PN", "WR", "PS"}

// Encode converts a single word into its phonetic [Code]. It is pure,
// deterministic, and case-insensitive. Empty input yields an empty Code.
//
// Encode expects one word; it does not split on whitespace. Callers that need
// phrase handling encode each word separately.
func Encode(word string) Code {
	w := strings.ToUpper(word)
	if w == "" {
		return Code{}
	}

	pos := 0
	for _, d := range silentStarts {
		if strings.HasPrefix(w, d) {
			pos = 1
			break
		}
	}

	// An initial X sounds like S (Xander, xylophone).
	if pos < len(w) && w[pos] == 'X' {
		w = w[:pos] + "S" + w[pos+1:]
	}

	var primary, secondary strings.Builder
	emit := func(p, s string) {
		if primary.Len() < maxCodeLen {
			primary.WriteString(p)
		}
		if secondary.Len() < maxCodeLen {
			secondary.WriteString(s)
		}
	}

	start := pos
	for pos < len(w) && (primary.Len() < maxCodeLen || secondary.Len() < maxCodeLen) {
		c := w[pos]
		next := charAt(w, pos+1)

		// Doubled consonants emit once and consume both letters.
		advance := 1
		if next == c && !isVowel(c) {
			advance = 2
		}

		switch {
		case isVowel(c):
			// Vowels only register at the very start of the word.
			if pos == start {
				emit("A", "A")
			}
			advance = 1

		case c == 'B':
			emit("B", "B")

		case c == 'C':
			switch {
			case next == 'H':
				emit("X", "X")
				advance = 2
			case next == 'K':
				emit("K", "K")
				advance = 2
			case next == 'E' || next == 'I' || next == 'Y':
				emit("S", "S")
				advance = 1
			default:
				emit("K", "K")
			}

		case c == 'D':
			if next == 'G' && isSofteningVowel(charAt(w, pos+2)) {
				// dge/dgi/dgy as in "edge", "judging".
				emit("J", "J")
				advance = 3
			} else {
				emit("T", "T")
			}

		case c == 'F':
			emit("F", "F")

		case c == 'G':
			switch {
			case next == 'H':
				if pos > start && isVowel(charAt(w, pos-1)) {
					// Silent after a vowel: night, weigh.
					advance = 2
				} else {
					emit("K", "K")
					advance = 2
				}
			case next == 'N':
				// Silent before N: sign, gnarl mid-word.
				advance = 1
			case isSofteningVowel(next):
				emit("J", "J")
				advance = 1
			default:
				emit("K", "K")
			}

		case c == 'H':
			// H is only audible between vowels.
			if pos > start && isVowel(charAt(w, pos-1)) && isVowel(next) {
				emit("H", "H")
			}
			advance = 1

		case c == 'J':
			emit("J", "J")

		case c == 'K':
			emit("K", "K")

		case c == 'L':
			emit("L", "L")

		case c == 'M':
			emit("M", "M")

		case c == 'N':
			emit("N", "N")

		case c == 'P':
			if next == 'H' {
				emit("F", "F")
				advance = 2
			} else {
				emit("P", "P")
			}

		case c == 'Q':
			emit("K", "K")

		case c == 'R':
			emit("R", "R")

		case c == 'S':
			if next == 'H' {
				emit("X", "X")
				advance = 2
			} else {
				emit("S", "S")
			}

		case c == 'T':
			if next == 'H' {
				// The one rule where the two codes diverge: "0" is the
				// theta code, T covers speakers who harden the sound.
				emit("0", "T")
				advance = 2
			} else {
				emit("T", "T")
			}

		case c == 'V':
			emit("F", "F")

		case c == 'W':
			if isVowel(next) {
				emit("W", "W")
			}
			advance = 1

		case c == 'X':
			emit("KS", "KS")

		case c == 'Y':
			if isVowel(next) {
				emit("Y", "Y")
			}
			advance = 1

		case c == 'Z':
			emit("S", "S")

		default:
			// Non-letter bytes carry no sound.
			advance = 1
		}

		pos += advance
	}

	return Code{
		Primary:   truncate(primary.String()),
		Secondary: truncate(secondary.String()),
	}
}

// charAt returns the byte at index i, or 0 when i is out of range.
func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// isVowel reports whether b is one of the five uppercase vowels. Y is handled
// by its own rule and is deliberately excluded.
func isVowel(b byte) bool {
	switch b {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// isSofteningVowel reports whether b softens a preceding C/G/DG cluster.
func isSofteningVowel(b byte) bool {
	return b == 'E' || b == 'I' || b == 'Y'
}

// truncate caps a code at maxCodeLen. Emissions of two characters ("KS") can
// overshoot the builder limit by one.
func truncate(code string) string {
	if len(code) > maxCodeLen {
		return code[:maxCodeLen]
	}
	return code
}
