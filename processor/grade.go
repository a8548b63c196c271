package processor

import "strings"

// Canonical grade vocabulary, best first. GradeGeneric is the fallback
// when nothing in the record hints at quality.
const (
	GradePremium  = "특상"
	GradeStandard = "상품"
	GradeMid      = "중품"
	GradeLow      = "하품"
	GradeGeneric  = "등급없음"
)

// gradeRule pairs a keyword set with the grade it implies. Rules are
// evaluated top to bottom, most specific grade first, and scanning
// stops at the first hit; 특상 must come before 상품 because "특상품"
// contains both.
type gradeRule struct {
	keywords []string
	grade    string
}

var gradeRules = []gradeRule{
	{[]string{"특상", "특등", "특)", "(특"}, GradePremium},
	{[]string{"상품", "상등", "상)", "(상"}, GradeStandard},
	{[]string{"중품", "중등", "중)", "(중"}, GradeMid},
	{[]string{"하품", "하등", "하)", "(하"}, GradeLow},
}

// gradeRank orders grades best-first for the sort tie-break. Unknown
// grade strings rank with the generic fallback.
var gradeRank = map[string]int{
	GradePremium:  0,
	GradeStandard: 1,
	GradeMid:      2,
	GradeLow:      3,
	GradeGeneric:  4,
}

// GradeRank returns the sort rank of a grade string.
func GradeRank(grade string) int {
	if rank, ok := gradeRank[grade]; ok {
		return rank
	}
	return gradeRank[GradeGeneric]
}

// ClassifyGrade resolves a record's quality grade. Priority: the
// explicit grade field, then a "/" suffix inside the product name, then
// keyword rules over the auxiliary text, then the generic fallback.
func ClassifyGrade(explicitGrade, auxiliaryText, productName string) string {
	if g := strings.TrimSpace(explicitGrade); g != "" {
		return g
	}

	if idx := strings.LastIndex(productName, "/"); idx >= 0 {
		if g := strings.TrimSpace(productName[idx+1:]); g != "" {
			return g
		}
	}

	for _, rule := range gradeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(auxiliaryText, kw) {
				return rule.grade
			}
		}
	}
	return GradeGeneric
}
