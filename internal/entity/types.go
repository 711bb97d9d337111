// Package entity provides the catalog of known entities that transcript
// correction matches against.
//
// An entity pairs a canonical name (a person, place, or concept) with the
// aliases a speaker might use for it. The correction engine borrows the
// catalog as an immutable snapshot per call; persistence and editing live in
// the [Store] implementations.
//
// Supported input formats:
//   - Native YAML catalog files ([LoadCatalogFile], [LoadCatalogFromReader])
//
// All store operations are safe for concurrent use.
package entity

import "strings"

// Record is a single catalog entity as consumed by the correction engine.
type Record struct {
	// ID is a unique identifier. Auto-generated if empty during import.
	ID string `yaml:"id" json:"id"`

	// Name is the entity's canonical display name. Multi-word names (names
	// containing whitespace) are matched as phrases.
	Name string `yaml:"name" json:"name"`

	// Type classifies the entity (person, place, organization, concept, ...).
	Type Type `yaml:"type" json:"type"`

	// Aliases are alternative spellings or spoken forms of the name.
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// Description is a free-text description of the entity.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Tags are searchable labels for categorization.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// MultiWord reports whether the record's canonical name contains whitespace.
func (r Record) MultiWord() bool {
	return len(strings.Fields(r.Name)) > 1
}

// Type classifies a catalog entity.
type Type string

const (
	// TypePerson represents a person's name.
	TypePerson Type = "person"

	// TypePlace represents a location.
	TypePlace Type = "place"

	// TypeOrganization represents a company, team, or institution.
	TypeOrganization Type = "organization"

	// TypeConcept represents a domain term or project name.
	TypeConcept Type = "concept"
)

// IsWellKnown reports whether t is one of the predefined types. Catalogs may
// carry free-form types; unknown values are allowed but worth a lint warning.
func (t Type) IsWellKnown() bool {
	switch t {
	case TypePerson, TypePlace, TypeOrganization, TypeConcept:
		return true
	}
	return false
}
