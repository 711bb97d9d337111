package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// nearDuplicateThreshold is the Jaro-Winkler score above which two distinct
// catalog names are flagged as likely duplicates.
const nearDuplicateThreshold = 0.95

// Validate checks a [Record] for required fields and usable aliases.
//
// Rules:
//   - Name must be non-empty.
//   - Aliases must be non-empty strings and distinct from the name.
func Validate(rec Record) error {
	var errs []error

	if strings.TrimSpace(rec.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}

	for i, alias := range rec.Aliases {
		if strings.TrimSpace(alias) == "" {
			errs = append(errs, fmt.Errorf("aliases[%d]: alias must not be empty", i))
		} else if strings.EqualFold(alias, rec.Name) {
			errs = append(errs, fmt.Errorf("aliases[%d]: alias %q duplicates the entity name", i, alias))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Collision reports two catalog names that are so similar the matcher could
// confuse them, typically a sign of a duplicated or misspelled entry.
type Collision struct {
	NameA string
	NameB string
	Score float64
}

// NearDuplicates scans the catalog for pairs of names or aliases (across
// different records) whose Jaro-Winkler similarity exceeds 0.95. Exact
// case-insensitive duplicates are included with score 1.0.
//
// The scan is meant for catalog linting, not for the matching hot path.
func NearDuplicates(recs []Record) []Collision {
	type candidate struct {
		text  string
		owner int
	}

	var names []candidate
	for i, r := range recs {
		names = append(names, candidate{text: r.Name, owner: i})
		for _, a := range r.Aliases {
			names = append(names, candidate{text: a, owner: i})
		}
	}

	var collisions []Collision
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[i].owner == names[j].owner {
				continue
			}
			a := strings.ToLower(names[i].text)
			b := strings.ToLower(names[j].text)
			score := matchr.JaroWinkler(a, b, false)
			if score > nearDuplicateThreshold || a == b {
				collisions = append(collisions, Collision{
					NameA: names[i].text,
					NameB: names[j].text,
					Score: score,
				})
			}
		}
	}
	return collisions
}
