package document

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// The emulated query pipeline must behave like a real regex filter and
// a real sort would, for arbitrary inputs.

func TestProperty_QuerySearchMatchesRegexSemantics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("search returns exactly the case-insensitive matches", prop.ForAll(
		func(titles []string, needle string) bool {
			if needle == "" {
				return true
			}
			client := NewMemoryClient()
			repo := NewRepository[note](client, NewMemoryRefCache(0))
			for _, title := range titles {
				n := &note{Title: title}
				if err := repo.Save(context.Background(), n); err != nil {
					t.Logf("save failed: %v", err)
					return false
				}
			}

			got, err := repo.Find(nil).Search("title", regexp.QuoteMeta(needle)).Execute(context.Background())
			if err != nil {
				t.Logf("execute failed: %v", err)
				return false
			}

			want := 0
			lowered := strings.ToLower(needle)
			for _, title := range titles {
				if strings.Contains(strings.ToLower(title), lowered) {
					want++
				}
			}
			if len(got) != want {
				t.Logf("got %d matches, want %d (needle %q, titles %v)", len(got), want, needle, titles)
				return false
			}
			for _, n := range got {
				if !strings.Contains(strings.ToLower(n.Title), lowered) {
					t.Logf("false positive %q for needle %q", n.Title, needle)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_QuerySortOrdersByInstant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("ascending sort by createdAt is non-decreasing", prop.ForAll(
		func(offsets []int) bool {
			client := NewMemoryClient()
			cache := NewMemoryRefCache(0)
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

			for _, offset := range offsets {
				at := base.Add(time.Duration(offset) * time.Second)
				repo := NewRepository[note](client, cache, WithClock[note](fixedClock(at)))
				n := &note{Title: "n"}
				if err := repo.Save(context.Background(), n); err != nil {
					t.Logf("save failed: %v", err)
					return false
				}
			}

			repo := NewRepository[note](client, cache)
			got, err := repo.Find(nil).SortBy("createdAt", SortAsc).Execute(context.Background())
			if err != nil {
				t.Logf("execute failed: %v", err)
				return false
			}
			if len(got) != len(offsets) {
				t.Logf("got %d results, want %d", len(got), len(offsets))
				return false
			}

			for i := 1; i < len(got); i++ {
				prev, err := time.Parse(time.RFC3339, got[i-1].CreatedAt)
				if err != nil {
					t.Logf("parse %q: %v", got[i-1].CreatedAt, err)
					return false
				}
				curr, err := time.Parse(time.RFC3339, got[i].CreatedAt)
				if err != nil {
					t.Logf("parse %q: %v", got[i].CreatedAt, err)
					return false
				}
				if prev.After(curr) {
					t.Logf("out of order at %d: %v after %v", i, prev, curr)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1_000_000)),
	))

	properties.TestingRun(t)
}

func TestProperty_PopulationNeverPersists(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("stored creator is always the raw id", prop.ForAll(
		func(creatorID, creatorName string) bool {
			if creatorID == "" {
				return true
			}
			client := NewMemoryClient()
			repo := NewRepository[note](client, NewMemoryRefCache(0))

			n := &note{
				Title: "n",
				CreatedBy: Ref{
					ID:       creatorID,
					Resolved: map[string]any{"id": creatorID, "name": creatorName},
				},
			}
			if err := repo.Save(context.Background(), n); err != nil {
				t.Logf("save failed: %v", err)
				return false
			}

			raw, err := client.FindByID(context.Background(), "notes", n.ID)
			if err != nil {
				t.Logf("find raw failed: %v", err)
				return false
			}
			stored, ok := raw["createdBy"].(string)
			return ok && stored == creatorID
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
