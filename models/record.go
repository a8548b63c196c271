package models

import (
	"strconv"
	"strings"
)

// RawRecord is a single quote item exactly as the upstream returned it.
// No schema is assumed beyond "mapping"; the provider mixes field names,
// units and date formats between (and sometimes within) responses.
type RawRecord map[string]interface{}

// Placeholder values the upstream emits for "no value".
var placeholders = map[string]struct{}{
	"":   {},
	"-":  {},
	"[]": {},
}

// FirstNonEmpty scans the candidate keys in order and returns the first
// value that is present, non-empty and not a known placeholder after
// trimming. Array values yield their first element. The ordered fallback
// is what lets a single resolver tolerate every upstream dialect without
// branching on provider identity.
func (r RawRecord) FirstNonEmpty(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok {
			continue
		}
		s, ok := scalarString(v)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if _, placeholder := placeholders[s]; placeholder {
			continue
		}
		return s, true
	}
	return "", false
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []interface{}:
		if len(t) == 0 {
			return "", false
		}
		return scalarString(t[0])
	case float64:
		// encoding/json decodes every number to float64.
		return trimFloat(t), true
	case bool, nil:
		return "", false
	default:
		return "", false
	}
}

// trimFloat renders a JSON number without a trailing ".000000" when it
// is integral, matching how the upstream prints prices.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarketNameAggregate is the sentinel market name for records whose
// upstream item carried no market at all, typically nationwide average
// rows.
const MarketNameAggregate = "전국평균"

// CanonicalPriceRecord is the engine's schema-stable output unit. JSON
// tags are the caller-facing contract.
type CanonicalPriceRecord struct {
	MarketName  string `json:"market_name"`
	ProductName string `json:"product_name"`
	Grade       string `json:"grade"`
	Price       int    `json:"price"`
	Unit        string `json:"unit"`
	Date        string `json:"date"`
}

// Query identifies one engine invocation.
type Query struct {
	ProductName string `json:"product_name"`
	Region      string `json:"region,omitempty"`
}

// AggregateResult is the engine's complete answer for one Query. An
// upstream failure of any kind yields the zero value, never an error.
type AggregateResult struct {
	Records      []CanonicalPriceRecord `json:"records"`
	AveragePrice int                    `json:"averagePrice"`
	Count        int                    `json:"count"`
}

// Empty returns the fail-closed result every absorbed failure maps to.
func Empty() AggregateResult {
	return AggregateResult{Records: []CanonicalPriceRecord{}}
}
