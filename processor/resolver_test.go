package processor

import (
	"testing"

	"agriflow/config"
	"agriflow/models"
)

func TestResolvePriceUnderAnyCandidate(t *testing.T) {
	r := NewResolver(config.DefaultFieldCandidates())
	for _, carrier := range config.DefaultFieldCandidates()[config.FieldPrice] {
		rec := models.RawRecord{
			carrier:  "9,200",
			"mrktNm": "가락도매시장",
		}
		fields, err := r.Resolve(rec)
		if err != nil {
			t.Fatalf("carrier %s: %v", carrier, err)
		}
		if fields.RawPrice != "9,200" {
			t.Errorf("carrier %s: resolved %q", carrier, fields.RawPrice)
		}
	}
}

func TestResolveRejectsRecordWithoutPrice(t *testing.T) {
	r := NewResolver(config.DefaultFieldCandidates())
	rec := models.RawRecord{
		"mrktNm": "가락도매시장",
		"itemNm": "배추",
		"dpr1":   "-",
	}
	if _, err := r.Resolve(rec); err == nil {
		t.Fatal("expected rejection when every price candidate is missing or placeholder")
	}
}

func TestResolveOtherFieldsDegrade(t *testing.T) {
	r := NewResolver(config.DefaultFieldCandidates())
	rec := models.RawRecord{"price": "1000"}
	fields, err := r.Resolve(rec)
	if err != nil {
		t.Fatalf("price-only record must resolve: %v", err)
	}
	if fields.MarketName != "" || fields.Grade != "" || fields.Date != "" {
		t.Errorf("absent fields should stay empty for downstream defaults: %+v", fields)
	}
}

func TestResolveAuxText(t *testing.T) {
	r := NewResolver(config.DefaultFieldCandidates())
	rec := models.RawRecord{"price": "1000", "kindname": "봄배추(상품)"}
	fields, err := r.Resolve(rec)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fields.AuxText != "봄배추(상품)" {
		t.Errorf("aux text not picked up: %q", fields.AuxText)
	}
}

func TestCleanMarketName(t *testing.T) {
	if got := CleanMarketName("  가락   도매시장 "); got != "가락 도매시장" {
		t.Errorf("unexpected cleaned name: %q", got)
	}
}
