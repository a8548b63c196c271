package processor

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"agriflow/models"
)

// SortRecords orders the final record list by the fixed four-key
// comparator: date descending, market name ascending (locale-aware for
// the provider's Korean market names), grade rank best-first, then
// price descending. The order is a hard output contract.
func SortRecords(records []models.CanonicalPriceRecord) {
	// A collator is not safe for concurrent use, so each call owns one.
	collator := collate.New(language.Korean)

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if cmp := collator.CompareString(a.MarketName, b.MarketName); cmp != 0 {
			return cmp < 0
		}
		if ra, rb := GradeRank(a.Grade), GradeRank(b.Grade); ra != rb {
			return ra < rb
		}
		return a.Price > b.Price
	})
}
