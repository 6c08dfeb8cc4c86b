package locale

import "testing"

func TestGetTimeZoneForCountry(t *testing.T) {
	tests := []struct {
		name    string
		country string
		want    string
	}{
		{"known country", "Germany", "Europe/Berlin"},
		{"multi-language country", "Switzerland", "Europe/Zurich"},
		{"unknown country falls back to UTC", "Nonexistent Country", "UTC"},
		{"empty country falls back to UTC", "", "UTC"},
		{"lookup is case sensitive", "germany", "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTimeZoneForCountry(tt.country); got != tt.want {
				t.Errorf("GetTimeZoneForCountry(%q) = %q, want %q", tt.country, got, tt.want)
			}
		})
	}
}

func TestGetCountryConfig(t *testing.T) {
	entry, ok := GetCountryConfig("Germany")
	if !ok {
		t.Fatal("expected Germany to be in the catalog")
	}
	if entry.Currency != "EUR" {
		t.Errorf("Germany currency = %q, want EUR", entry.Currency)
	}
	if len(entry.Languages) == 0 || entry.Languages[0] != "DE" {
		t.Errorf("Germany languages = %v, want DE first", entry.Languages)
	}

	if _, ok := GetCountryConfig("Atlantis"); ok {
		t.Error("expected unknown country to report not found")
	}
}

func TestIsValidPair(t *testing.T) {
	tests := []struct {
		country  string
		language string
		want     bool
	}{
		{"Germany", "DE", true},
		{"Germany", "EN", true},
		{"Germany", "FR", false},
		{"Switzerland", "IT", true},
		{"Nonexistent Country", "EN", false},
	}

	for _, tt := range tests {
		if got := IsValidPair(tt.country, tt.language); got != tt.want {
			t.Errorf("IsValidPair(%q, %q) = %v, want %v", tt.country, tt.language, got, tt.want)
		}
	}
}

func TestCatalogIsCopied(t *testing.T) {
	first := Catalog()
	first[0].Country = "Mutated"

	second := Catalog()
	if second[0].Country == "Mutated" {
		t.Error("Catalog() must return a copy, not the backing slice")
	}
}
