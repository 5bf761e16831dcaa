package loan

import (
	"strings"

	"github.com/bacolgede83-big/Gede23/internal/dates"
)

// uraianPrefix introduces the covered-month list in a deposit description,
// e.g. "Setoran bulan Februari" or "Setoran bulan Januari, Februari [auto]".
const uraianPrefix = "setoran bulan "

// CoveredMonths derives which months (0-11) a deposit pays for from its
// description. When the description does not carry a parseable month list
// the deposit's own calendar month is used, so a deposit always covers at
// least one month.
func CoveredMonths(uraian, tanggal string) []int {
	lower := strings.ToLower(uraian)
	if idx := strings.Index(lower, uraianPrefix); idx >= 0 {
		rest := lower[idx+len(uraianPrefix):]
		var indices []int
		for _, name := range strings.Split(rest, ",") {
			name = strings.TrimSpace(strings.ReplaceAll(name, "[auto]", ""))
			if m, ok := dates.MonthIndex(name); ok {
				indices = append(indices, m)
			}
		}
		if len(indices) > 0 {
			return indices
		}
	}

	m := dates.Month(tanggal)
	if m < 0 {
		m = 0
	}
	return []int{m}
}

// DescribeMonths renders a covered-month list back into the canonical
// description form that CoveredMonths parses.
func DescribeMonths(months []int) string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		if name := dates.MonthName(m); name != "" {
			names = append(names, name)
		}
	}
	return "Setoran bulan " + strings.Join(names, ", ")
}
