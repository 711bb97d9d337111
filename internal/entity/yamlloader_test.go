package entity_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashishact/ramblefix/internal/entity"
)

const sampleCatalog = `
catalog:
  name: Engineering vocabulary
  description: People and projects mentioned in standups.
entities:
  - name: Charan Tandi
    type: person
    aliases: [Charan]
  - name: John
    type: person
  - name: Kubernetes
    type: concept
    aliases: [k8s]
    tags: [infra]
`

func TestLoadCatalogFromReader(t *testing.T) {
	t.Parallel()

	cf, err := entity.LoadCatalogFromReader(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("LoadCatalogFromReader() unexpected error: %v", err)
	}
	if cf.Catalog.Name != "Engineering vocabulary" {
		t.Errorf("Catalog.Name = %q", cf.Catalog.Name)
	}
	if len(cf.Entities) != 3 {
		t.Fatalf("Entities = %d, want 3", len(cf.Entities))
	}
	first := cf.Entities[0]
	if first.Name != "Charan Tandi" || first.Type != entity.TypePerson {
		t.Errorf("first entity = %+v", first)
	}
	if !first.MultiWord() {
		t.Error("Charan Tandi should be multi-word")
	}
	if len(first.Aliases) != 1 || first.Aliases[0] != "Charan" {
		t.Errorf("first.Aliases = %v, want [Charan]", first.Aliases)
	}
}

func TestLoadCatalogFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := entity.LoadCatalogFromReader(strings.NewReader("entitees:\n  - name: Typo\n"))
	if err == nil {
		t.Fatal("LoadCatalogFromReader() expected error for unknown key, got nil")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cf, err := entity.LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile() unexpected error: %v", err)
	}
	if len(cf.Entities) != 3 {
		t.Errorf("Entities = %d, want 3", len(cf.Entities))
	}

	if _, err := entity.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCatalogFile() of missing file should error")
	}
}

func TestImportCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cf, err := entity.LoadCatalogFromReader(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("LoadCatalogFromReader() unexpected error: %v", err)
	}

	store := entity.NewMemStore()
	n, err := entity.ImportCatalog(ctx, store, cf)
	if err != nil {
		t.Fatalf("ImportCatalog() unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("ImportCatalog() = %d, want 3", n)
	}

	all, err := store.List(ctx, entity.ListOptions{})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("store holds %d records, want 3", len(all))
	}

	if _, err := entity.ImportCatalog(ctx, store, nil); err == nil {
		t.Error("ImportCatalog(nil) should error")
	}
}
