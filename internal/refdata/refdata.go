package refdata

import (
	"os"
	"strconv"
)

// Pair keys the exchange-rate table: convert one unit of From into To.
type Pair struct{ From, To string }

// Table is the process-wide reference data: allowed code sets, the static
// exchange-rate table, occupancy and date-window limits, and the fixed
// net price / markup. Loaded once at startup, read-only afterwards; safe to
// share across concurrent requests without locking.
type Table struct {
	Languages     map[string]struct{}
	Currencies    map[string]struct{}
	Nationalities map[string]struct{}
	Rates         map[Pair]float64

	DefaultLanguage    string
	DefaultCurrency    string
	DefaultNationality string
	BaseCurrency       string // currency the net price is denominated in

	ChildAgeCutoff      int // age <= cutoff classifies as Child
	MaxChildrenPerRoom  int
	MaxGuestsPerRoom    int
	MinLeadTimeDays     int
	MinStayNights       int
	DefaultOptionsQuota int
	MaxOptionsQuota     int

	NetPrice  float64
	MarkupPct float64
}

// Default returns the built-in table.
func Default() *Table {
	return &Table{
		Languages:     set("en", "fr", "de", "es"),
		Currencies:    set("EUR", "USD", "GBP"),
		Nationalities: set("US", "GB", "CA"),
		Rates: map[Pair]float64{
			{"USD", "EUR"}: 0.92,
			{"USD", "GBP"}: 0.78,
		},
		DefaultLanguage:     "en",
		DefaultCurrency:     "EUR",
		DefaultNationality:  "US",
		BaseCurrency:        "USD",
		ChildAgeCutoff:      5,
		MaxChildrenPerRoom:  2,
		MaxGuestsPerRoom:    4,
		MinLeadTimeDays:     2,
		MinStayNights:       3,
		DefaultOptionsQuota: 20,
		MaxOptionsQuota:     50,
		NetPrice:            100.0,
		MarkupPct:           10.0,
	}
}

// Load returns the default table with pricing knobs overridable by env.
func Load() *Table {
	t := Default()
	t.NetPrice = envFloat("NET_PRICE", t.NetPrice)
	t.MarkupPct = envFloat("MARKUP_PCT", t.MarkupPct)
	return t
}

// Rate looks up the static exchange rate for a pair. Unknown pairs resolve to
// 1.0 by contract (identity conversion), never an error.
func (t *Table) Rate(from, to string) float64 {
	if r, ok := t.Rates[Pair{From: from, To: to}]; ok {
		return r
	}
	return 1.0
}

func (t *Table) ValidLanguage(s string) bool    { _, ok := t.Languages[s]; return ok }
func (t *Table) ValidCurrency(s string) bool    { _, ok := t.Currencies[s]; return ok }
func (t *Table) ValidNationality(s string) bool { _, ok := t.Nationalities[s]; return ok }

func set(vs ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
