package processor

import "strings"

// Generic market-type suffixes stripped before region matching, longest
// first so "도매시장" wins over "시장".
var marketSuffixes = []string{
	"농수산물도매시장",
	"도매시장",
	"공판장",
	"시장",
	"wholesale market",
	"market",
}

// MatchesRegion reports whether a market belongs to the requested
// region. An absent region matches everything; an unknown region or a
// market with no keyword hit excludes the record, it is never defaulted.
func MatchesRegion(marketName, region string, table map[string][]string) bool {
	if region == "" {
		return true
	}

	keywords := table[strings.ToLower(strings.TrimSpace(region))]
	if len(keywords) == 0 {
		return false
	}

	cleaned := cleanMarketForRegion(marketName)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(cleaned, kw) || strings.HasPrefix(kw, cleaned) && cleaned != "" {
			return true
		}
	}
	return false
}

func cleanMarketForRegion(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range marketSuffixes {
		cleaned = strings.TrimSuffix(cleaned, suffix)
	}
	return strings.TrimSpace(cleaned)
}
