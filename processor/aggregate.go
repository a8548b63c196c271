package processor

import (
	"math"
	"strings"

	"agriflow/models"
)

type aggregateBucket struct {
	record models.CanonicalPriceRecord
	sum    int
	count  int
}

// Deduplicate merges records quoting the same market on the same day.
// When gradeAware is set the grade participates in the key, so one
// market can legitimately quote 상품 and 중품 side by side; otherwise
// same-day duplicates collapse regardless of grade. Colliding prices
// merge into their arithmetic mean.
func Deduplicate(records []models.CanonicalPriceRecord, gradeAware bool) []models.CanonicalPriceRecord {
	buckets := make(map[string]*aggregateBucket, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		key := dedupKey(rec, gradeAware)
		b, ok := buckets[key]
		if !ok {
			buckets[key] = &aggregateBucket{record: rec, sum: rec.Price, count: 1}
			order = append(order, key)
			continue
		}
		b.sum += rec.Price
		b.count++
	}

	out := make([]models.CanonicalPriceRecord, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		rec := b.record
		rec.Price = int(math.Round(float64(b.sum) / float64(b.count)))
		out = append(out, rec)
	}
	return out
}

func dedupKey(rec models.CanonicalPriceRecord, gradeAware bool) string {
	parts := []string{rec.Date, rec.MarketName}
	if gradeAware {
		parts = append(parts, rec.Grade)
	}
	return strings.Join(parts, "|")
}

// AveragePrice is the rounded mean over the final record list, zero
// when the list is empty.
func AveragePrice(records []models.CanonicalPriceRecord) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, rec := range records {
		sum += rec.Price
	}
	return int(math.Round(float64(sum) / float64(len(records))))
}
