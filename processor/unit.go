package processor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CanonicalUnit is the display unit box prices are converted into.
const CanonicalUnit = "1kg"

var (
	// compoundUnitRe matches descriptors like "20kg(1kg)": a box of
	// <box> kg holding <unit> kg retail units.
	compoundUnitRe = regexp.MustCompile(`^\s*(\d+)\s*[kK][gG]\s*\(\s*(\d+)\s*[kK][gG]\s*\)\s*$`)
	// simpleUnitRe matches plain count or weight descriptors such as
	// "1포기", "10개", "1상자", "1망", "1마리" or "5kg".
	simpleUnitRe = regexp.MustCompile(`^\s*(\d+)\s*(포기|개|마리|상자|망|단|kg|KG|Kg|g)\s*$`)
)

// NormalizeUnitPrice converts a resolved (price, unit descriptor) pair
// into a canonical (integer price, unit) pair.
//
// The box-to-kg decision infers intent from price magnitude: a box
// price far above normal per-kg retail range is assumed unconverted
// upstream, anything inside normal range is assumed already per-kg.
// That threshold heuristic mirrors observed upstream behaviour and is
// a known source of misclassification; it is kept as-is for
// compatibility. The parse -> classify -> convert -> override order is
// load-bearing: reordering changes output for ambiguous inputs.
func NormalizeUnitPrice(rawPrice, unitDescriptor, productHint string, highPriceThreshold int, countSoldKeywords []string) (int, string, error) {
	price, err := parsePrice(rawPrice)
	if err != nil {
		return 0, "", err
	}

	boxSize := 1
	verbatim := strings.TrimSpace(unitDescriptor)
	unit := verbatim

	if m := compoundUnitRe.FindStringSubmatch(unitDescriptor); m != nil {
		boxSize, _ = strconv.Atoi(m[1])
		unit = m[2] + "kg"
	} else if m := simpleUnitRe.FindStringSubmatch(unitDescriptor); m != nil {
		unit = m[1] + strings.ToLower(m[2])
	}

	if unit == "" {
		unit = CanonicalUnit
	}

	// Commodities customarily sold by head or count keep their quoted
	// price and unit verbatim.
	if matchesAny(productHint, countSoldKeywords) {
		if verbatim == "" {
			verbatim = CanonicalUnit
		}
		return price, verbatim, nil
	}

	if boxSize > 1 {
		if price > highPriceThreshold {
			price = int(math.Round(float64(price) / float64(boxSize)))
		}
		unit = CanonicalUnit
	}
	return price, unit, nil
}

// parsePrice strips thousands separators and parses a positive integer
// price. Anything else rejects the record.
func parsePrice(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "원")
	price, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("price %q is not numeric", raw)
	}
	if price <= 0 {
		return 0, fmt.Errorf("price %d is not positive", price)
	}
	return price, nil
}

func matchesAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
