package locale

// Entry describes one supported country: the languages content can be
// scheduled in, the billing currency, and the IANA timezone release
// times are interpreted in. The catalog is fixed at compile time and
// immutable for the process lifetime.
type Entry struct {
	Country   string   `json:"country"`
	Languages []string `json:"languages"`
	Currency  string   `json:"currency"`
	Timezone  string   `json:"timezone"`
}

// DefaultTimezone is returned for countries missing from the catalog.
const DefaultTimezone = "UTC"

var catalog = []Entry{
	{Country: "Germany", Languages: []string{"DE", "EN"}, Currency: "EUR", Timezone: "Europe/Berlin"},
	{Country: "Austria", Languages: []string{"DE", "EN"}, Currency: "EUR", Timezone: "Europe/Vienna"},
	{Country: "Switzerland", Languages: []string{"DE", "FR", "IT", "EN"}, Currency: "CHF", Timezone: "Europe/Zurich"},
	{Country: "France", Languages: []string{"FR", "EN"}, Currency: "EUR", Timezone: "Europe/Paris"},
	{Country: "Spain", Languages: []string{"ES", "EN"}, Currency: "EUR", Timezone: "Europe/Madrid"},
	{Country: "Italy", Languages: []string{"IT", "EN"}, Currency: "EUR", Timezone: "Europe/Rome"},
	{Country: "Netherlands", Languages: []string{"NL", "EN"}, Currency: "EUR", Timezone: "Europe/Amsterdam"},
	{Country: "United Kingdom", Languages: []string{"EN"}, Currency: "GBP", Timezone: "Europe/London"},
	{Country: "United States", Languages: []string{"EN", "ES"}, Currency: "USD", Timezone: "America/New_York"},
	{Country: "Brazil", Languages: []string{"PT", "EN"}, Currency: "BRL", Timezone: "America/Sao_Paulo"},
	{Country: "Mexico", Languages: []string{"ES", "EN"}, Currency: "MXN", Timezone: "America/Mexico_City"},
	{Country: "Japan", Languages: []string{"JA", "EN"}, Currency: "JPY", Timezone: "Asia/Tokyo"},
	{Country: "Australia", Languages: []string{"EN"}, Currency: "AUD", Timezone: "Australia/Sydney"},
	{Country: "Turkey", Languages: []string{"TR", "EN"}, Currency: "TRY", Timezone: "Europe/Istanbul"},
}

var catalogByCountry = func() map[string]Entry {
	m := make(map[string]Entry, len(catalog))
	for _, e := range catalog {
		m[e.Country] = e
	}
	return m
}()

// Catalog returns all supported countries in their configured order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// GetCountryConfig looks up the catalog entry for a country.
func GetCountryConfig(country string) (*Entry, bool) {
	e, ok := catalogByCountry[country]
	if !ok {
		return nil, false
	}
	return &e, true
}

// GetTimeZoneForCountry resolves the IANA timezone for a country.
// Unknown countries fall back to UTC; this never fails.
func GetTimeZoneForCountry(country string) string {
	if e, ok := catalogByCountry[country]; ok {
		return e.Timezone
	}
	return DefaultTimezone
}

// GetCurrencyForCountry resolves the billing currency for a country,
// empty when the country is not supported.
func GetCurrencyForCountry(country string) string {
	if e, ok := catalogByCountry[country]; ok {
		return e.Currency
	}
	return ""
}

// IsValidPair reports whether content may be scheduled for the given
// (country, language) combination.
func IsValidPair(country, language string) bool {
	e, ok := catalogByCountry[country]
	if !ok {
		return false
	}
	for _, l := range e.Languages {
		if l == language {
			return true
		}
	}
	return false
}
