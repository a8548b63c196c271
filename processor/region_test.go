package processor

import (
	"testing"

	"agriflow/config"
)

func TestMatchesRegionEmptyRegionMatchesAll(t *testing.T) {
	if !MatchesRegion("아무시장", "", config.DefaultRegionKeywords()) {
		t.Fatal("empty region must match everything")
	}
}

func TestMatchesRegionSuffixStripping(t *testing.T) {
	table := map[string][]string{"seoul": {"garak", "가락"}}
	if !MatchesRegion("Garak Wholesale Market", "seoul", table) {
		t.Fatal("suffix-stripped, case-insensitive match failed")
	}
	if !MatchesRegion("가락도매시장", "seoul", table) {
		t.Fatal("korean suffix strip failed")
	}
	if MatchesRegion("Busan Central Market", "seoul", table) {
		t.Fatal("wrong region matched")
	}
}

func TestMatchesRegionUnknownRegionExcludes(t *testing.T) {
	if MatchesRegion("가락도매시장", "atlantis", config.DefaultRegionKeywords()) {
		t.Fatal("unknown region must exclude, not default")
	}
}

func TestMatchesRegionIdentifierCase(t *testing.T) {
	if !MatchesRegion("가락도매시장", "Seoul", config.DefaultRegionKeywords()) {
		t.Fatal("region identifier should be case-insensitive")
	}
}
