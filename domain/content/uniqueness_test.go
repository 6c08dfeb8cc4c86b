package content

import (
	"reflect"
	"testing"
)

func groupItem(id int64, week int, country, language string, free bool) Item {
	return Item{
		ID:                id,
		Week:              week,
		Country:           country,
		Language:          language,
		FreeForRegistered: free,
	}
}

func TestUniquenessNoOpWhenIncomingNotFree(t *testing.T) {
	items := []Item{
		groupItem(1, 4, "Germany", "EN", true),
		groupItem(2, 4, "Germany", "EN", false),
	}
	incoming := groupItem(3, 4, "Germany", "EN", false)

	got := ApplyFreeForRegisteredUniqueness(items, incoming)

	if !reflect.DeepEqual(got, items) {
		t.Errorf("expected unchanged collection, got %+v", got)
	}
}

func TestUniquenessClearsExactlyTheConflictingGroup(t *testing.T) {
	a := groupItem(1, 4, "Germany", "EN", true)
	b := groupItem(2, 4, "Germany", "EN", true)
	c := groupItem(3, 5, "Germany", "EN", true)  // different week
	d := groupItem(4, 4, "France", "EN", true)   // different country
	e := groupItem(5, 4, "Germany", "DE", true)  // different language
	items := []Item{a, b, c, d, e}

	got := ApplyFreeForRegisteredUniqueness(items, b)

	if got[0].FreeForRegistered {
		t.Error("item A in the same group should have been cleared")
	}
	if !got[1].FreeForRegistered {
		t.Error("incoming item B should keep its flag")
	}
	for i, item := range []Item{got[2], got[3], got[4]} {
		if !item.FreeForRegistered {
			t.Errorf("item %d outside the group lost its flag", i+3)
		}
	}
}

func TestUniquenessDoesNotMutateInput(t *testing.T) {
	items := []Item{
		groupItem(1, 4, "Germany", "EN", true),
		groupItem(2, 4, "Germany", "EN", false),
	}
	incoming := groupItem(2, 4, "Germany", "EN", true)

	_ = ApplyFreeForRegisteredUniqueness(items, incoming)

	if !items[0].FreeForRegistered {
		t.Error("input slice was mutated")
	}
}

func TestUniquenessIncomingPresentByIDKeepsFlag(t *testing.T) {
	items := []Item{
		groupItem(1, 4, "Germany", "EN", true),
		groupItem(2, 4, "Germany", "EN", false),
	}
	// Incoming is an edit of item 2 turning the flag on.
	incoming := groupItem(2, 4, "Germany", "EN", true)

	got := ApplyFreeForRegisteredUniqueness(items, incoming)

	if got[0].FreeForRegistered {
		t.Error("previous holder should have been cleared")
	}
	if !got[1].FreeForRegistered {
		t.Error("edited item should hold the flag")
	}
}

func TestUniquenessIdempotent(t *testing.T) {
	items := []Item{
		groupItem(1, 4, "Germany", "EN", true),
		groupItem(2, 4, "Germany", "EN", true),
	}
	incoming := groupItem(2, 4, "Germany", "EN", true)

	once := ApplyFreeForRegisteredUniqueness(items, incoming)
	twice := ApplyFreeForRegisteredUniqueness(once, incoming)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("enforcer is not idempotent: %+v vs %+v", once, twice)
	}
}

func TestUniquenessEmptyCollection(t *testing.T) {
	incoming := groupItem(1, 4, "Germany", "EN", true)

	got := ApplyFreeForRegisteredUniqueness(nil, incoming)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
