package entity_test

import (
	"strings"
	"testing"

	"github.com/ashishact/ramblefix/internal/entity"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     entity.Record
		wantErr []string // substrings that must appear in the error
	}{
		{
			name: "valid minimal",
			rec:  entity.Record{Name: "John"},
		},
		{
			name: "valid with aliases",
			rec:  entity.Record{Name: "Charan Tandi", Aliases: []string{"Charan", "CT"}},
		},
		{
			name:    "empty name",
			rec:     entity.Record{},
			wantErr: []string{"name must not be empty"},
		},
		{
			name:    "whitespace name",
			rec:     entity.Record{Name: "   "},
			wantErr: []string{"name must not be empty"},
		},
		{
			name:    "blank alias",
			rec:     entity.Record{Name: "John", Aliases: []string{" "}},
			wantErr: []string{"aliases[0]"},
		},
		{
			name:    "alias duplicates name",
			rec:     entity.Record{Name: "John", Aliases: []string{"john"}},
			wantErr: []string{"duplicates the entity name"},
		},
		{
			name:    "multiple failures",
			rec:     entity.Record{Aliases: []string{"", "x"}},
			wantErr: []string{"name must not be empty", "aliases[0]"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := entity.Validate(tt.rec)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error = %q, want substring %q", err.Error(), want)
				}
			}
		})
	}
}

func TestNearDuplicates(t *testing.T) {
	t.Parallel()

	recs := []entity.Record{
		{Name: "Charan Tandi", Aliases: []string{"Charan"}},
		{Name: "Charan Tandy"},
		{Name: "Kubernetes"},
	}

	got := entity.NearDuplicates(recs)
	if len(got) == 0 {
		t.Fatal("NearDuplicates() found nothing, want Charan Tandi / Charan Tandy collision")
	}
	found := false
	for _, c := range got {
		if c.NameA == "Charan Tandi" && c.NameB == "Charan Tandy" {
			found = true
			if c.Score <= 0.95 {
				t.Errorf("collision score = %g, want > 0.95", c.Score)
			}
		}
		if c.NameA == "Kubernetes" || c.NameB == "Kubernetes" {
			t.Errorf("unexpected collision involving Kubernetes: %+v", c)
		}
	}
	if !found {
		t.Errorf("NearDuplicates() = %+v, missing Tandi/Tandy pair", got)
	}
}

func TestNearDuplicates_SameRecordIgnored(t *testing.T) {
	t.Parallel()

	// An alias close to its own canonical name is intentional, not a
	// collision.
	recs := []entity.Record{
		{Name: "Charan Tandi", Aliases: []string{"Charan Tandy"}},
	}
	if got := entity.NearDuplicates(recs); len(got) != 0 {
		t.Errorf("NearDuplicates() = %+v, want none within one record", got)
	}
}

func TestNearDuplicates_ExactFoldDuplicates(t *testing.T) {
	t.Parallel()

	recs := []entity.Record{
		{Name: "John"},
		{Name: "JOHN"},
	}
	got := entity.NearDuplicates(recs)
	if len(got) != 1 {
		t.Fatalf("NearDuplicates() = %+v, want one exact collision", got)
	}
}
