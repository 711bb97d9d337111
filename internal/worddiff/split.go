package worddiff

import (
	"strings"

	"github.com/ashishact/ramblefix/internal/match"
)

// detectSplits rewrites the edit script so that a run-on original word edited
// into several words appears as one OpSplit instead of insert/substitute
// noise. Two shapes are recognised:
//
//	Insert(s) then Substitute — "Charantandi" aligned as insert "Charan" +
//	substitute to "Tandi". Accepted when the original word contains the
//	substituted-to word (length >= splitMinLength).
//
//	Substitute then Insert(s) — "Charantandi" aligned as substitute to
//	"Charan" + insert "Tandi". Accepted when the original word starts with
//	the substituted-to word, equals the space-stripped concatenation, or is
//	Levenshtein-similar to the concatenation above splitSimilarity.
//
// All other operations pass through unchanged.
func (d *Differ) detectSplits(ops []Op, orig, edit []string) []Op {
	var out []Op

	for i := 0; i < len(ops); i++ {
		op := ops[i]

		switch op.Kind {
		case OpInsert:
			inserted := insertRun(ops, i, edit)
			next := i + len(inserted)
			if next < len(ops) && ops[next].Kind == OpSubstitute {
				sub := ops[next]
				if d.containsSplit(orig[sub.OrigIndex], edit[sub.EditIndex]) {
					combined := strings.Join(append(inserted, edit[sub.EditIndex]), " ")
					out = append(out, Op{Kind: OpSplit, OrigIndex: sub.OrigIndex, Combined: combined})
					i = next
					continue
				}
			}
			out = append(out, op)

		case OpSubstitute:
			inserted := insertRun(ops, i+1, edit)
			if len(inserted) > 0 && d.concatSplit(orig[op.OrigIndex], edit[op.EditIndex], inserted) {
				combined := strings.Join(append([]string{edit[op.EditIndex]}, inserted...), " ")
				out = append(out, Op{Kind: OpSplit, OrigIndex: op.OrigIndex, Combined: combined})
				i += len(inserted)
				continue
			}
			out = append(out, op)

		default:
			out = append(out, op)
		}
	}
	return out
}

// containsSplit decides the insert-then-substitute shape: the original word
// must contain the substituted-to word, which must be long enough to be a
// meaningful fragment.
func (d *Differ) containsSplit(origWord, subTo string) bool {
	if len(subTo) < d.splitMinLength {
		return false
	}
	return strings.Contains(strings.ToLower(origWord), strings.ToLower(subTo))
}

// concatSplit decides the substitute-then-insert shape against the
// space-stripped concatenation of the substituted word and the following
// inserts.
func (d *Differ) concatSplit(origWord, subTo string, inserted []string) bool {
	lowerOrig := strings.ToLower(origWord)

	if strings.HasPrefix(lowerOrig, strings.ToLower(subTo)) {
		return true
	}

	concat := strings.Join(append([]string{subTo}, inserted...), "")
	if strings.EqualFold(origWord, concat) {
		return true
	}

	return levenshteinSimilarity(origWord, concat) > d.splitSimilarity
}

// levenshteinSimilarity normalises edit distance into [0, 1].
func levenshteinSimilarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(match.EditDistance(a, b))/float64(maxLen)
}
