package dates

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cell interface{}
		want string
	}{
		{"typed time", time.Date(2023, 12, 31, 9, 30, 0, 0, time.UTC), "2023-12-31"},
		{"excel serial", 45292.0, "2024-01-01"},
		{"excel serial int", 45292, "2024-01-01"},
		{"iso day", "2024-03-05", "2024-03-05"},
		{"iso datetime", "2024-03-05T08:00:00", "2024-03-05"},
		{"slash layout", "15/06/2024", "2024-06-15"},
		{"indonesian short", "31 Des 2023", "2023-12-31"},
		{"indonesian full", "1 Januari 2024", "2024-01-01"},
		{"indonesian dashes", "17-Agu-2024", "2024-08-17"},
		{"garbage falls back to today", "kemarin sore", "2024-06-15"},
		{"empty falls back to today", "", "2024-06-15"},
		{"nil falls back to today", nil, "2024-06-15"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.cell, now); got != tt.want {
			t.Errorf("%s: Normalize(%v) = %q, want %q", tt.name, tt.cell, got, tt.want)
		}
	}
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2024, 0, "2024-01-31"},
		{2024, 1, "2024-02-29"}, // leap year
		{2023, 1, "2023-02-28"},
		{2023, 11, "2023-12-31"},
	}
	for _, tt := range tests {
		if got := EndOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("EndOfMonth(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthNameAndIndex(t *testing.T) {
	if MonthName(0) != "Januari" || MonthName(11) != "Desember" {
		t.Error("month name boundaries wrong")
	}
	if MonthName(12) != "" || MonthName(-1) != "" {
		t.Error("out-of-range month name should be empty")
	}

	if i, ok := MonthIndex("februari"); !ok || i != 1 {
		t.Errorf("MonthIndex(februari) = %d, %v", i, ok)
	}
	if i, ok := MonthIndex(" Agustus "); !ok || i != 7 {
		t.Errorf("MonthIndex(Agustus) = %d, %v", i, ok)
	}
	if _, ok := MonthIndex("smarch"); ok {
		t.Error("invalid month accepted")
	}
}

func TestYearAndMonthExtraction(t *testing.T) {
	if Year("2024-05-20") != 2024 {
		t.Error("Year extraction wrong")
	}
	if Year("nonsense") != 0 {
		t.Error("malformed year should be 0")
	}
	if Month("2024-05-20") != 4 {
		t.Error("Month extraction wrong")
	}
	if Month("nonsense") != -1 {
		t.Error("malformed month should be -1")
	}
}
