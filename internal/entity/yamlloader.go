package entity

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the top-level structure of a ramblefix entity catalog YAML file.
//
// Example:
//
//	catalog:
//	  name: "Engineering vocabulary"
//	entities:
//	  - name: "Charan Tandi"
//	    type: person
//	    aliases: ["Charan"]
type CatalogFile struct {
	Catalog  CatalogMeta `yaml:"catalog"`
	Entities []Record    `yaml:"entities"`
}

// CatalogMeta holds top-level metadata for a catalog.
type CatalogMeta struct {
	// Name is the catalog's display name.
	Name string `yaml:"name"`

	// Description is a free-text summary of the catalog.
	Description string `yaml:"description"`
}

// LoadCatalogFile reads and parses a catalog YAML file from disk.
// Returns a descriptive error if the file cannot be opened or parsed.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("entity: open catalog file %q: %w", path, err)
	}
	defer f.Close()

	cf, err := LoadCatalogFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("entity: parse catalog file %q: %w", path, err)
	}
	return cf, nil
}

// LoadCatalogFromReader parses catalog YAML from an [io.Reader].
// The reader is consumed entirely; the caller is responsible for closing it.
func LoadCatalogFromReader(r io.Reader) (*CatalogFile, error) {
	var cf CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown top-level keys to catch typos
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("entity: decode catalog yaml: %w", err)
	}
	return &cf, nil
}

// ImportCatalog imports all records from a parsed [CatalogFile] into store.
// Returns the number of records successfully imported.
// An error from the store aborts the import and returns the count so far.
func ImportCatalog(ctx context.Context, store Store, catalog *CatalogFile) (int, error) {
	if catalog == nil {
		return 0, fmt.Errorf("entity: catalog must not be nil")
	}
	n, err := store.BulkImport(ctx, catalog.Entities)
	if err != nil {
		return n, fmt.Errorf("entity: import catalog %q: %w", catalog.Catalog.Name, err)
	}
	return n, nil
}
