package processor

import "testing"

func TestClassifyGradeExplicitFieldWins(t *testing.T) {
	if got := ClassifyGrade(" 중품 ", "특상급", "배추/하품"); got != "중품" {
		t.Fatalf("explicit field should win: %q", got)
	}
}

func TestClassifyGradeFromProductNameSlash(t *testing.T) {
	if got := ClassifyGrade("", "", "봄배추/상품"); got != "상품" {
		t.Fatalf("slash suffix not taken: %q", got)
	}
	// The substring after the LAST slash is the grade.
	if got := ClassifyGrade("", "", "배추/봄/특상"); got != "특상" {
		t.Fatalf("last slash not used: %q", got)
	}
}

func TestClassifyGradeKeywordPriority(t *testing.T) {
	// 특상품 contains both 특상 and 상품; the more specific grade must win.
	if got := ClassifyGrade("", "특상품", ""); got != GradePremium {
		t.Fatalf("expected premium for 특상품, got %q", got)
	}
	if got := ClassifyGrade("", "상품(10kg)", ""); got != GradeStandard {
		t.Fatalf("expected standard, got %q", got)
	}
	if got := ClassifyGrade("", "중품", ""); got != GradeMid {
		t.Fatalf("expected mid, got %q", got)
	}
	if got := ClassifyGrade("", "하품", ""); got != GradeLow {
		t.Fatalf("expected low, got %q", got)
	}
}

func TestClassifyGradeFallback(t *testing.T) {
	if got := ClassifyGrade("", "그냥 배추", "봄배추"); got != GradeGeneric {
		t.Fatalf("expected generic fallback, got %q", got)
	}
}

func TestGradeRankOrdering(t *testing.T) {
	grades := []string{GradePremium, GradeStandard, GradeMid, GradeLow, GradeGeneric}
	for i := 1; i < len(grades); i++ {
		if GradeRank(grades[i-1]) >= GradeRank(grades[i]) {
			t.Fatalf("rank order broken between %s and %s", grades[i-1], grades[i])
		}
	}
	if GradeRank("뭔가이상한등급") != GradeRank(GradeGeneric) {
		t.Fatal("unknown grade should rank with generic")
	}
}
