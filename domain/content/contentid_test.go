package content

import "testing"

func TestNextContentID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		want     string
	}{
		{"empty set starts at 1", nil, "AC", "AC00001"},
		{"sequential", []string{"AC00001", "AC00002"}, "AC", "AC00003"},
		{"gap jumps to max", []string{"AC00001", "AC00007"}, "AC", "AC00008"},
		{"foreign prefix ignored", []string{"TR00050", "AC00003"}, "AC", "AC00004"},
		{"only foreign prefixes", []string{"TR00050", "XX00099"}, "AC", "AC00001"},
		{"malformed IDs ignored", []string{"garbage", "AC1", "AC00002x", "AC00002"}, "AC", "AC00003"},
		{"locale-suffixed IDs count", []string{"AC00004(DE)", "AC00001"}, "AC", "AC00005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextContentID(tt.existing, tt.prefix); got != tt.want {
				t.Errorf("NextContentID(%v, %q) = %q, want %q", tt.existing, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestNextContentIDDeterministic(t *testing.T) {
	ids := []string{"AC00001", "AC00002"}

	first := NextContentID(ids, "AC")
	second := NextContentID(ids, "AC")
	if first != second {
		t.Fatalf("same input produced %q then %q", first, second)
	}

	// Appending the result advances the sequence by exactly one.
	next := NextContentID(append(ids, first), "AC")
	if next != "AC00004" {
		t.Errorf("after appending %q, next = %q, want AC00004", first, next)
	}
}

func TestParseContentIDParts(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantOK     bool
		wantPrefix string
		wantSeq    int
		wantLocale string
	}{
		{"bare", "AC00001", true, "AC", 1, ""},
		{"locale suffixed", "AC00042(DE)", true, "AC", 42, "DE"},
		{"other prefix", "TR00050", true, "TR", 50, ""},
		{"too few digits", "AC001", false, "", 0, ""},
		{"too many digits", "AC000001", false, "", 0, ""},
		{"lowercase prefix", "ac00001", false, "", 0, ""},
		{"empty locale tag", "AC00001()", false, "", 0, ""},
		{"trailing junk", "AC00001junk", false, "", 0, ""},
		{"empty string", "", false, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, ok := ParseContentIDParts(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ParseContentIDParts(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if parts.Prefix != tt.wantPrefix || parts.Seq != tt.wantSeq || parts.Locale != tt.wantLocale {
				t.Errorf("ParseContentIDParts(%q) = %+v, want {%s %d %s}",
					tt.id, parts, tt.wantPrefix, tt.wantSeq, tt.wantLocale)
			}
		})
	}
}

func TestWithLocaleTag(t *testing.T) {
	if got := WithLocaleTag("AC00002", "DE"); got != "AC00002(DE)" {
		t.Errorf("WithLocaleTag = %q, want AC00002(DE)", got)
	}
	if got := WithLocaleTag("AC00002", ""); got != "AC00002" {
		t.Errorf("empty tag should return the ID unchanged, got %q", got)
	}
}
