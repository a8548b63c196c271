package processor

import (
	"testing"

	"agriflow/config"
)

func normalize(t *testing.T, rawPrice, unit, hint string) (int, string) {
	t.Helper()
	price, u, err := NormalizeUnitPrice(rawPrice, unit, hint, config.DefaultHighPriceThreshold, config.DefaultCountSoldKeywords())
	if err != nil {
		t.Fatalf("normalize(%q,%q,%q): %v", rawPrice, unit, hint, err)
	}
	return price, u
}

func TestBoxPriceConvertedAboveThreshold(t *testing.T) {
	price, unit := normalize(t, "184000", "20kg(1kg)", "양파")
	if price != 9200 || unit != "1kg" {
		t.Fatalf("expected 9200/1kg, got %d/%s", price, unit)
	}
}

func TestBoxPriceAlreadyPerKgNotDoubleConverted(t *testing.T) {
	price, unit := normalize(t, "9200", "20kg(1kg)", "양파")
	if price != 9200 || unit != "1kg" {
		t.Fatalf("expected unchanged 9200/1kg, got %d/%s", price, unit)
	}
}

func TestThousandsSeparatorsStripped(t *testing.T) {
	price, _ := normalize(t, "184,000", "20kg(1kg)", "양파")
	if price != 9200 {
		t.Fatalf("expected 9200, got %d", price)
	}
}

func TestSimpleCountUnitKeptVerbatim(t *testing.T) {
	price, unit := normalize(t, "4500", "1포기", "배추")
	if price != 4500 || unit != "1포기" {
		t.Fatalf("expected 4500/1포기, got %d/%s", price, unit)
	}
}

func TestCountSoldCommodityNeverConverted(t *testing.T) {
	// 배추 is sold by head; the box conversion must not fire even with
	// a parsed box size and a high price.
	price, unit := normalize(t, "184000", "20kg(1kg)", "배추")
	if price != 184000 {
		t.Fatalf("count-sold commodity converted: %d", price)
	}
	if unit != "20kg(1kg)" {
		t.Fatalf("count-sold commodity unit rewritten: %s", unit)
	}
}

func TestEmptyUnitDefaultsToCanonical(t *testing.T) {
	_, unit := normalize(t, "1000", "", "양파")
	if unit != CanonicalUnit {
		t.Fatalf("expected default unit %s, got %s", CanonicalUnit, unit)
	}
}

func TestRejectNonPositiveAndNonNumericPrice(t *testing.T) {
	for _, raw := range []string{"0", "-5", "abc", "", "-"} {
		if _, _, err := NormalizeUnitPrice(raw, "1kg", "", config.DefaultHighPriceThreshold, nil); err == nil {
			t.Errorf("price %q: expected rejection", raw)
		}
	}
}

func TestWonSuffixStripped(t *testing.T) {
	price, _ := normalize(t, "9200원", "1kg", "양파")
	if price != 9200 {
		t.Fatalf("expected 9200, got %d", price)
	}
}
