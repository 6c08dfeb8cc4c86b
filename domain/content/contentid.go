package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IDParts is the decomposition of a human-readable content ID.
type IDParts struct {
	Prefix string
	Seq    int
	Locale string // empty for bare IDs
}

// Matches "AC00001" and "AC00001(DE)". The sequence is fixed at five digits.
var contentIDPattern = regexp.MustCompile(`^([A-Z]+)(\d{5})(?:\(([^()]+)\))?$`)

// ParseContentIDParts decomposes a content ID into prefix, sequence and
// optional locale tag. Returns ok=false for anything that does not match;
// callers rely on that to silently skip foreign or malformed IDs.
func ParseContentIDParts(id string) (*IDParts, bool) {
	m := contentIDPattern.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return nil, false
	}

	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}

	return &IDParts{Prefix: m[1], Seq: seq, Locale: m[3]}, true
}

// NextContentID derives the next sequential content ID for a prefix from the
// set of IDs already assigned. IDs with a different prefix, or that do not
// parse at all, are ignored rather than treated as errors. An empty set
// starts the sequence at 1. Deterministic for a given input set.
func NextContentID(existing []string, prefix string) string {
	maxSeq := 0
	for _, id := range existing {
		parts, ok := ParseContentIDParts(id)
		if !ok || parts.Prefix != prefix {
			continue
		}
		if parts.Seq > maxSeq {
			maxSeq = parts.Seq
		}
	}
	return fmt.Sprintf("%s%05d", prefix, maxSeq+1)
}

// WithLocaleTag suffixes a bare content ID with a locale tag, e.g.
// "AC00002" + "DE" -> "AC00002(DE)". An empty tag returns the ID unchanged.
func WithLocaleTag(id, locale string) string {
	if locale == "" {
		return id
	}
	return fmt.Sprintf("%s(%s)", id, locale)
}
