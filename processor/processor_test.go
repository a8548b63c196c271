package processor

import (
	"reflect"
	"testing"

	"agriflow/models"
)

func rec(date, market, grade string, price int) models.CanonicalPriceRecord {
	return models.CanonicalPriceRecord{
		MarketName:  market,
		ProductName: "배추",
		Grade:       grade,
		Price:       price,
		Unit:        "1kg",
		Date:        date,
	}
}

func TestDeduplicateMergesByMean(t *testing.T) {
	in := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가락도매시장", GradeStandard, 9000),
		rec("2025-01-15", "가락도매시장", GradeStandard, 9400),
	}
	out := Deduplicate(in, true)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged record, got %d", len(out))
	}
	if out[0].Price != 9200 {
		t.Fatalf("expected mean 9200, got %d", out[0].Price)
	}
}

func TestDeduplicateRunningMean(t *testing.T) {
	in := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가락도매시장", GradeStandard, 9000),
		rec("2025-01-15", "가락도매시장", GradeStandard, 9400),
		rec("2025-01-15", "가락도매시장", GradeStandard, 9800),
	}
	out := Deduplicate(in, true)
	if len(out) != 1 || out[0].Price != 9400 {
		t.Fatalf("running mean broken: %+v", out)
	}
}

func TestDeduplicateGradeAwareKey(t *testing.T) {
	in := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가락도매시장", GradeStandard, 9000),
		rec("2025-01-15", "가락도매시장", GradeMid, 7000),
	}
	if out := Deduplicate(in, true); len(out) != 2 {
		t.Fatalf("grade-aware mode collapsed distinct grades: %d", len(out))
	}
	out := Deduplicate(in, false)
	if len(out) != 1 {
		t.Fatalf("grade-blind mode kept duplicates: %d", len(out))
	}
	if out[0].Price != 8000 {
		t.Fatalf("expected mean 8000, got %d", out[0].Price)
	}
}

func TestSortDateBeatsEveryOtherKey(t *testing.T) {
	records := []models.CanonicalPriceRecord{
		rec("2025-01-14", "B시장", GradeStandard, 8000),
		rec("2025-01-15", "A시장", GradeLow, 5000),
	}
	SortRecords(records)
	if records[0].Date != "2025-01-15" {
		t.Fatalf("later date must sort first: %+v", records)
	}
}

func TestSortTieBreakOrder(t *testing.T) {
	records := []models.CanonicalPriceRecord{
		rec("2025-01-15", "나시장", GradeStandard, 9000),
		rec("2025-01-15", "가시장", GradeMid, 9000),
		rec("2025-01-15", "가시장", GradeStandard, 8000),
		rec("2025-01-15", "가시장", GradeStandard, 9500),
		rec("2025-01-14", "가시장", GradePremium, 99999),
	}
	SortRecords(records)

	want := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가시장", GradeStandard, 9500),
		rec("2025-01-15", "가시장", GradeStandard, 8000),
		rec("2025-01-15", "가시장", GradeMid, 9000),
		rec("2025-01-15", "나시장", GradeStandard, 9000),
		rec("2025-01-14", "가시장", GradePremium, 99999),
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("tie-break order wrong:\n got %+v\nwant %+v", records, want)
	}
}

func TestSortGradeRankNotLexicographic(t *testing.T) {
	// 상품 sorts before 중품 by rank even though lexicographic order of
	// the raw strings differs per collation.
	records := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가시장", GradeGeneric, 1),
		rec("2025-01-15", "가시장", GradePremium, 1),
		rec("2025-01-15", "가시장", GradeLow, 1),
		rec("2025-01-15", "가시장", GradeStandard, 1),
		rec("2025-01-15", "가시장", GradeMid, 1),
	}
	SortRecords(records)
	want := []string{GradePremium, GradeStandard, GradeMid, GradeLow, GradeGeneric}
	for i, g := range want {
		if records[i].Grade != g {
			t.Fatalf("position %d: got %s want %s", i, records[i].Grade, g)
		}
	}
}

func TestAveragePrice(t *testing.T) {
	if got := AveragePrice(nil); got != 0 {
		t.Fatalf("empty list average must be 0, got %d", got)
	}
	records := []models.CanonicalPriceRecord{
		rec("2025-01-15", "가시장", GradeStandard, 9000),
		rec("2025-01-15", "나시장", GradeStandard, 9401),
	}
	if got := AveragePrice(records); got != 9201 {
		t.Fatalf("expected rounded mean 9201, got %d", got)
	}
}
