package content

import (
	"testing"
	"time"
)

func TestReleasedBeforeCurrentWeek(t *testing.T) {
	// Wednesday, Jan 14 2026, noon UTC. The current week started on
	// Monday, Jan 12 in every catalog timezone at this instant.
	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		country     string
		releaseDate string
		want        bool
	}{
		{"previous week rolls over", "Germany", "2026-01-11", true},
		{"week start stays", "Germany", "2026-01-12", false},
		{"midweek stays", "Germany", "2026-01-14", false},
		{"future stays", "Germany", "2026-01-19", false},
		{"far past rolls over", "Japan", "2025-11-03", true},
		{"unknown country uses UTC", "Nonexistent Country", "2026-01-11", true},
		{"malformed date is left alone", "Germany", "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := releasedBeforeCurrentWeek(tt.country, tt.releaseDate, now); got != tt.want {
				t.Errorf("releasedBeforeCurrentWeek(%q, %q) = %v, want %v",
					tt.country, tt.releaseDate, got, tt.want)
			}
		})
	}
}

func TestItemTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"single", "drills", 1},
		{"multiple", "drills,defense,warmup", 3},
		{"whitespace trimmed", " drills , defense ", 2},
		{"empty segments dropped", "drills,,defense,", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{TagsRaw: tt.raw}
			if got := item.Tags(); len(got) != tt.want {
				t.Errorf("Tags() for %q = %v, want %d entries", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJoinTags(t *testing.T) {
	got := JoinTags([]string{" drills ", "", "defense"})
	if got != "drills,defense" {
		t.Errorf("JoinTags = %q, want %q", got, "drills,defense")
	}
}
