package handler

import (
	"testing"

	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

func TestBkuRowsExcludeRollupRows(t *testing.T) {
	general := []models.GeneralEntry{
		{ID: "g1", Tanggal: "2024-03-01", Kode: "TRX-1", Uraian: "modal awal", Penerimaan: 500000},
	}
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-03-10", Kategori: "Bunga Uang", Debet: 20000},
	}

	rows := bkuRows(ledger.Synchronize(detail, general))
	if len(rows) != 1 {
		t.Fatalf("len = %d, want only the stored row", len(rows))
	}
	if rows[0][1] != "TRX-1" {
		t.Errorf("kode = %v, want the stored row's code", rows[0][1])
	}
}

func TestIsSyncKode(t *testing.T) {
	cases := []struct {
		kode string
		want bool
	}{
		{ledger.SyncKodeInPrefix + "202403-BungaUang", true},
		{ledger.SyncKodeOutPrefix + "202403-Operasional", true},
		{"TRX-1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isSyncKode(tc.kode); got != tc.want {
			t.Errorf("isSyncKode(%q) = %v, want %v", tc.kode, got, tc.want)
		}
	}
}
