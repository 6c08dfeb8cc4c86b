package content

// ApplyFreeForRegisteredUniqueness enforces the one-free-item-per-group rule:
// within a (week, country, language) group at most one item may carry the
// free_for_registered flag.
//
// When the incoming item does not set the flag, the input collection is
// returned as-is. When it does, a new collection is returned in which every
// other member of the incoming item's group has its flag cleared; the
// incoming item itself (matched by id, if present) keeps the flag. Last
// writer wins, silently - the data layer raises no conflict error, the UI
// may warn before submission if it wants to.
//
// Pure and total: no error conditions, no mutation of the input slice. The
// caller owns persistence of the returned collection.
func ApplyFreeForRegisteredUniqueness(items []Item, incoming Item) []Item {
	if !incoming.FreeForRegistered {
		return items
	}

	out := make([]Item, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ID == incoming.ID {
			out[i].FreeForRegistered = true
			continue
		}
		if out[i].Week == incoming.Week &&
			out[i].Country == incoming.Country &&
			out[i].Language == incoming.Language {
			out[i].FreeForRegistered = false
		}
	}

	return out
}
