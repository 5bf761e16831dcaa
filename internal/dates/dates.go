// Package dates normalizes every date representation the system meets
// (typed values, Excel serial day-counts, Indonesian free-text) into a single
// calendar-day form, YYYY-MM-DD. Lexicographic order of that form equals
// chronological order, so ledger code compares dates as plain strings.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Indonesian month names, index 0 = Januari.
var monthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonthIndex = map[string]int{
	"jan": 0, "feb": 1, "mar": 2, "apr": 3, "mei": 4, "jun": 5,
	"jul": 6, "agu": 7, "sep": 8, "okt": 9, "nov": 10, "des": 11,
}

// MonthName returns the Indonesian name for month index 0-11.
func MonthName(index int) string {
	if index < 0 || index > 11 {
		return ""
	}
	return monthNames[index]
}

// MonthIndex resolves a full Indonesian month name (case-insensitive) to its
// 0-based index.
func MonthIndex(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, m := range monthNames {
		if strings.ToLower(m) == name {
			return i, true
		}
	}
	return 0, false
}

// Format renders t as a calendar day.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD day.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Year extracts the calendar year of a YYYY-MM-DD day, 0 when malformed.
func Year(s string) int {
	t, err := Parse(s)
	if err != nil {
		return 0
	}
	return t.Year()
}

// Month extracts the 0-based month index of a YYYY-MM-DD day, -1 when
// malformed.
func Month(s string) int {
	t, err := Parse(s)
	if err != nil {
		return -1
	}
	return int(t.Month()) - 1
}

// EndOfMonth returns the last calendar day of (year, month index 0-11).
func EndOfMonth(year, month int) string {
	// day 0 of the next month
	t := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)
	return Format(t)
}

// excelEpochOffset is the serial number of 1970-01-01 in Excel's 1900 date
// system.
const excelEpochOffset = 25569

// Normalize coerces an imported cell into a calendar day. Accepted forms:
// a typed time value, an Excel serial day-count, YYYY-MM-DD, a handful of
// common numeric layouts, and Indonesian free text such as "31 Des 2023".
// Unparseable input falls back to today; imported rows are coerced, never
// dropped.
func Normalize(cell interface{}, now time.Time) string {
	switch v := cell.(type) {
	case time.Time:
		return Format(v)
	case float64:
		if v > 1 {
			return Format(time.Unix(int64((v-excelEpochOffset)*86400), 0).UTC())
		}
	case int:
		return Normalize(float64(v), now)
	case int64:
		return Normalize(float64(v), now)
	case string:
		if d, ok := normalizeString(v); ok {
			return d
		}
	}
	return Format(now)
}

func normalizeString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	layouts := []string{Layout, time.RFC3339, "2006-01-02T15:04:05", "02/01/2006", "2/1/2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Format(t), true
		}
	}

	// Indonesian free text: "31 Des 2023", "01 Januari 2024".
	cleaned := strings.ToLower(strings.NewReplacer(",", "", ".", "", "-", " ").Replace(s))
	parts := strings.Fields(cleaned)
	if len(parts) == 3 {
		month, ok := shortMonthIndex[truncate(parts[1], 3)]
		if ok {
			if t, err := time.Parse(Layout, fmt.Sprintf("%s-%02d-%s", parts[2], month+1, pad2(parts[0]))); err == nil {
				return Format(t), true
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
