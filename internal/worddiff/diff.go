// Package worddiff derives learnable corrections from how a user edited a
// transcript before accepting it.
//
// The engine aligns the original and edited texts word by word using a
// Levenshtein dynamic program, backtracks the table into an ordered edit
// script, and then post-processes the script to recognise "splits" — the
// common speech-to-text failure where one spoken name arrives as a run-on
// token ("Charantandi" for "Charan Tandi"). A naive diff reports such edits
// as unhelpful delete/insert noise; reconstructing them as a single
// one-word-to-many-words change is what makes them learnable.
package worddiff

import (
	"strings"

	"github.com/ashishact/ramblefix/internal/token"
)

// OpKind discriminates the variants of an [Op].
type OpKind int

const (
	// OpMatch aligns an original word with an identical edited word.
	OpMatch OpKind = iota

	// OpSubstitute replaces one original word with one edited word.
	OpSubstitute

	// OpInsert adds an edited word with no original counterpart.
	OpInsert

	// OpDelete removes an original word with no edited counterpart.
	OpDelete

	// OpSplit replaces one original word with several edited words. Splits
	// are synthesized by post-processing; the backtrack never emits them.
	OpSplit
)

// Op is one step of the word-level edit script. Which index fields are
// meaningful depends on Kind: OrigIndex for Match/Substitute/Delete/Split,
// EditIndex for Match/Substitute/Insert, Combined for Split only.
type Op struct {
	Kind      OpKind
	OrigIndex int
	EditIndex int
	Combined  string
}

// Change is a learnable correction derived from the edit script: when
// Original is seen with this context, the user meant Corrected.
type Change struct {
	// Original is the word as it appeared in the original transcript.
	Original string

	// Corrected is the replacement text; it may contain several words.
	Corrected string

	// LeftContext and RightContext hold up to three lower-cased original
	// words on each side of the change, clipped at text boundaries.
	LeftContext  []string
	RightContext []string

	// OriginalIndex is the ordinal position of Original among the original
	// text's words.
	OriginalIndex int
}

const (
	defaultSplitMinLength  = 3
	defaultSplitSimilarity = 0.8
	contextWindow          = 3
)

// Option is a functional option for configuring a [Differ].
type Option func(*Differ)

// WithSplitMinLength sets the minimum length of the substituted-to word for
// the insert-then-substitute split heuristic. Default: 3.
func WithSplitMinLength(n int) Option {
	return func(d *Differ) {
		d.splitMinLength = n
	}
}

// WithSplitSimilarity sets the Levenshtein-similarity threshold above which a
// substitute-then-insert group is treated as a split. Default: 0.8.
func WithSplitSimilarity(s float64) Option {
	return func(d *Differ) {
		d.splitSimilarity = s
	}
}

// Differ computes word-level diffs with split detection. It is read-only
// after construction and safe for concurrent use.
type Differ struct {
	splitMinLength  int
	splitSimilarity float64
}

// New returns a [Differ] configured with the supplied options.
func New(opts ...Option) *Differ {
	d := &Differ{
		splitMinLength:  defaultSplitMinLength,
		splitSimilarity: defaultSplitSimilarity,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Compare diffs editedText against originalText and returns the learnable
// changes, in order of appearance. Identical texts (word-wise,
// case-insensitive) yield no changes.
func (d *Differ) Compare(originalText, editedText string) []Change {
	orig := token.Texts(token.Words(originalText))
	edit := token.Texts(token.Words(editedText))

	ops := backtrack(orig, edit, editTable(orig, edit))
	ops = d.detectSplits(ops, orig, edit)
	return toChanges(ops, orig, edit)
}

// editTable fills the (m+1)×(n+1) word-level Levenshtein table with
// case-insensitive equality and unit costs.
func editTable(orig, edit []string) [][]int {
	m, n := len(orig), len(edit)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if strings.EqualFold(orig[i-1], edit[j-1]) {
				cost = 0
			}
			best := dp[i-1][j-1] + cost
			if del := dp[i-1][j] + 1; del < best {
				best = del
			}
			if ins := dp[i][j-1] + 1; ins < best {
				best = ins
			}
			dp[i][j] = best
		}
	}
	return dp
}

// backtrack walks the table from (m, n) to (0, 0) and returns the edit
// script front to back. Ties break in a fixed order — match, substitute,
// insert, delete — so downstream split detection sees deterministic shapes.
func backtrack(orig, edit []string, dp [][]int) []Op {
	var ops []Op
	i, j := len(orig), len(edit)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && strings.EqualFold(orig[i-1], edit[j-1]) && dp[i][j] == dp[i-1][j-1]:
			ops = append(ops, Op{Kind: OpMatch, OrigIndex: i - 1, EditIndex: j - 1})
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			ops = append(ops, Op{Kind: OpSubstitute, OrigIndex: i - 1, EditIndex: j - 1})
			i--
			j--
		case j > 0 && dp[i][j] == dp[i][j-1]+1:
			ops = append(ops, Op{Kind: OpInsert, EditIndex: j - 1})
			j--
		default:
			ops = append(ops, Op{Kind: OpDelete, OrigIndex: i - 1})
			i--
		}
	}

	// Reverse into front-to-back order.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

// toChanges converts the processed edit script into [Change] values.
//
// A Split or Substitute yields one change. A Delete immediately followed by
// one or more Inserts is a word replaced by multiple words and yields one
// change combining the inserts. Bare deletes carry no correction to learn;
// bare inserts and matches likewise yield nothing.
func toChanges(ops []Op, orig, edit []string) []Change {
	var changes []Change

	for i := 0; i < len(ops); i++ {
		op := ops[i]
		switch op.Kind {
		case OpSplit:
			changes = append(changes, newChange(orig, op.OrigIndex, orig[op.OrigIndex], op.Combined))

		case OpSubstitute:
			changes = append(changes, newChange(orig, op.OrigIndex, orig[op.OrigIndex], edit[op.EditIndex]))

		case OpDelete:
			inserted := insertRun(ops, i+1, edit)
			if len(inserted) == 0 {
				continue // pure removal, nothing to learn
			}
			changes = append(changes, newChange(orig, op.OrigIndex, orig[op.OrigIndex], strings.Join(inserted, " ")))
			i += len(inserted)

		default:
			// OpMatch and bare OpInsert produce no change.
		}
	}
	return changes
}

// insertRun collects the edited words of the consecutive OpInsert ops
// starting at ops[from].
func insertRun(ops []Op, from int, edit []string) []string {
	var words []string
	for _, op := range ops[from:] {
		if op.Kind != OpInsert {
			break
		}
		words = append(words, edit[op.EditIndex])
	}
	return words
}

// newChange builds a [Change] with up to three lower-cased original words of
// context on each side of index.
func newChange(orig []string, index int, original, corrected string) Change {
	left := max(0, index-contextWindow)
	right := min(len(orig), index+1+contextWindow)

	return Change{
		Original:      original,
		Corrected:     corrected,
		LeftContext:   lowerAll(orig[left:index]),
		RightContext:  lowerAll(orig[index+1 : right]),
		OriginalIndex: index,
	}
}

// lowerAll returns a fresh slice with every word lower-cased.
func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
