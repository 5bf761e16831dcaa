package loan

import (
	"reflect"
	"testing"
)

func TestCoveredMonthsFromDescription(t *testing.T) {
	tests := []struct {
		uraian  string
		tanggal string
		want    []int
	}{
		{"Setoran bulan Februari", "2024-02-05", []int{1}},
		{"Setoran bulan Januari, Februari", "2024-03-05", []int{0, 1}},
		{"setoran bulan november, desember [auto]", "2024-12-28", []int{10, 11}},
		{"Pembayaran angsuran", "2024-05-20", []int{4}}, // fallback to the deposit's month
		{"", "2024-07-01", []int{6}},
		{"", "bukan-tanggal", []int{0}},
	}

	for _, tt := range tests {
		got := CoveredMonths(tt.uraian, tt.tanggal)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CoveredMonths(%q, %q) = %v, want %v", tt.uraian, tt.tanggal, got, tt.want)
		}
	}
}

func TestDescribeMonthsRoundTrip(t *testing.T) {
	uraian := DescribeMonths([]int{0, 1})
	if uraian != "Setoran bulan Januari, Februari" {
		t.Fatalf("DescribeMonths = %q", uraian)
	}
	if got := CoveredMonths(uraian, "2024-03-01"); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("round trip = %v, want [0 1]", got)
	}
}

func TestDescribeMonthsSkipsInvalid(t *testing.T) {
	if got := DescribeMonths([]int{3, 99}); got != "Setoran bulan April" {
		t.Errorf("DescribeMonths = %q", got)
	}
}
