package config

// Canonical field names used by the resolver. The candidate tables map
// each of these to the raw key spellings the upstream dialects use,
// tried in order. New dialects are handled by appending keys here, not
// by editing resolver control flow.
const (
	FieldMarketName  = "market_name"
	FieldProductName = "product_name"
	FieldPrice       = "price"
	FieldUnit        = "unit"
	FieldDate        = "date"
	FieldGrade       = "grade"
)

var canonicalFields = map[string]struct{}{
	FieldMarketName:  {},
	FieldProductName: {},
	FieldPrice:       {},
	FieldUnit:        {},
	FieldDate:        {},
	FieldGrade:       {},
}

func isCanonicalField(name string) bool {
	_, ok := canonicalFields[name]
	return ok
}

// DefaultFieldCandidates returns the raw-key fallback table observed
// across the provider's endpoint dialects.
func DefaultFieldCandidates() map[string][]string {
	return map[string][]string{
		FieldMarketName:  {"mrktNm", "marketname", "whsalMrktNm", "mrkt_nm", "wr_mrkt_nm"},
		FieldProductName: {"itemNm", "itemname", "item_name", "prdlstNm", "gds_nm"},
		FieldPrice:       {"price", "dpr1", "avgPrice", "trd_price", "untprc"},
		FieldUnit:        {"unit", "std_unit_nm", "unitname", "stdUnitNm", "untNm"},
		FieldDate:        {"regday", "trd_clcln_ymd", "yyyy", "examinDe", "lastest_day"},
		FieldGrade:       {"rank", "grade", "gradeNm", "lvlNm", "std_grd_nm"},
	}
}

// DefaultRegionKeywords maps a region identifier to locality-name
// fragments matched against the cleaned market name.
func DefaultRegionKeywords() map[string][]string {
	return map[string][]string{
		"seoul":   {"서울", "가락", "강서", "양재", "노량진", "garak", "seoul"},
		"busan":   {"부산", "엄궁", "반여", "busan"},
		"daegu":   {"대구", "북부", "daegu"},
		"incheon": {"인천", "삼산", "남촌", "incheon"},
		"gwangju": {"광주", "각화", "서부", "gwangju"},
		"daejeon": {"대전", "오정", "노은", "daejeon"},
	}
}

// DefaultCountSoldKeywords lists commodities customarily sold by head
// or count; the box-to-kg price conversion never applies to them.
func DefaultCountSoldKeywords() []string {
	return []string{"배추", "무", "수박", "참외", "오이", "호박", "달걀", "계란", "닭"}
}

// DefaultHighPriceThreshold is the price magnitude above which a box
// quote is assumed to still be a whole-box price. Values below it are
// treated as already per-kg. The threshold was measured against the
// live feed; it can misclassify and is kept for compatibility.
const DefaultHighPriceThreshold = 100000
