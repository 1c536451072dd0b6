package refdata_test

import (
	"testing"

	"avail_quote/internal/refdata"
)

func TestRate_UnknownPairDefaultsToIdentity(t *testing.T) {
	table := refdata.Default()

	if r := table.Rate("USD", "EUR"); r != 0.92 {
		t.Fatalf("expected 0.92, got %v", r)
	}
	// deliberate silent fallback, not an error
	if r := table.Rate("USD", "JPY"); r != 1.0 {
		t.Fatalf("expected 1.0 for unknown pair, got %v", r)
	}
	if r := table.Rate("USD", "USD"); r != 1.0 {
		t.Fatalf("expected 1.0 for same currency, got %v", r)
	}
}

func TestMembership(t *testing.T) {
	table := refdata.Default()

	if !table.ValidLanguage("en") || table.ValidLanguage("xx") {
		t.Fatalf("language membership broken")
	}
	if !table.ValidCurrency("GBP") || table.ValidCurrency("XYZ") {
		t.Fatalf("currency membership broken")
	}
	if !table.ValidNationality("US") || table.ValidNationality("XX") {
		t.Fatalf("nationality membership broken")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NET_PRICE", "132.5")
	t.Setenv("MARKUP_PCT", "7.5")

	table := refdata.Load()
	if table.NetPrice != 132.5 || table.MarkupPct != 7.5 {
		t.Fatalf("env overrides not applied: %+v", table)
	}
}
