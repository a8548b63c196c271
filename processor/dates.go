package processor

import (
	"strconv"
	"strings"
	"time"

	"agriflow/logger"
)

const isoDate = "2006-01-02"

// NormalizeDate converts any of the upstream date dialects into an ISO
// calendar date. "Today" is computed in the provider's timezone, not
// the host's; the upstream reports civil dates of its own market day.
func NormalizeDate(raw string, loc *time.Location) string {
	today := time.Now().In(loc)

	parsed, ok := parseDate(strings.TrimSpace(raw), today)
	if !ok {
		return today.Format(isoDate)
	}

	// A date after today signals a parsing dialect mismatch rather
	// than a real future quote. Keep the value, flag it.
	if parsed.Format(isoDate) > today.Format(isoDate) {
		logger.GetLogger().WithComponent("date_normalizer").WithFields(logger.Fields{
			"raw":    raw,
			"parsed": parsed.Format(isoDate),
			"today":  today.Format(isoDate),
		}).Warn("parsed date is in the future")
	}
	return parsed.Format(isoDate)
}

func parseDate(raw string, today time.Time) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	// ISO date, or a longer ISO timestamp truncated to its date part.
	if len(raw) >= 10 {
		if t, err := time.Parse(isoDate, raw[:10]); err == nil {
			return t, true
		}
	}

	// Compact 8-digit form.
	if len(raw) == 8 {
		if t, err := time.Parse("20060102", raw); err == nil {
			return t, true
		}
	}

	// MM/DD assumes the current year in the provider's timezone.
	if parts := strings.Split(raw, "/"); len(parts) == 2 {
		month, merr := strconv.Atoi(parts[0])
		day, derr := strconv.Atoi(parts[1])
		if merr == nil && derr == nil && month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(today.Year(), time.Month(month), day, 0, 0, 0, 0, today.Location()), true
		}
	}

	return time.Time{}, false
}
