package processor

import (
	"testing"
	"time"
)

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestNormalizeDateISO(t *testing.T) {
	loc := seoul(t)
	if got := NormalizeDate("2025-01-15", loc); got != "2025-01-15" {
		t.Fatalf("iso date mangled: %s", got)
	}
	// Longer timestamps truncate to the date part.
	if got := NormalizeDate("2025-01-15 13:05:00", loc); got != "2025-01-15" {
		t.Fatalf("timestamp not truncated: %s", got)
	}
}

func TestNormalizeDateCompact(t *testing.T) {
	if got := NormalizeDate("20250115", seoul(t)); got != "2025-01-15" {
		t.Fatalf("compact date mangled: %s", got)
	}
}

func TestNormalizeDateMonthDay(t *testing.T) {
	loc := seoul(t)
	year := time.Now().In(loc).Year()
	want := time.Date(year, 1, 15, 0, 0, 0, 0, loc).Format("2006-01-02")
	if got := NormalizeDate("01/15", loc); got != want {
		t.Fatalf("month/day form: got %s want %s", got, want)
	}
	if got := NormalizeDate("1/5", loc); got == "" {
		t.Fatal("single digit month/day should parse")
	}
}

func TestNormalizeDateDefaultsToToday(t *testing.T) {
	loc := seoul(t)
	today := time.Now().In(loc).Format("2006-01-02")
	for _, raw := range []string{"", "  ", "next tuesday", "13/45", "2025men"} {
		if got := NormalizeDate(raw, loc); got != today {
			t.Errorf("raw %q: expected today %s, got %s", raw, today, got)
		}
	}
}

func TestNormalizeDateFutureKept(t *testing.T) {
	// A future date is suspicious but preserved; dropping it would hide
	// the dialect mismatch it signals.
	if got := NormalizeDate("2999-12-31", seoul(t)); got != "2999-12-31" {
		t.Fatalf("future date rewritten: %s", got)
	}
}
