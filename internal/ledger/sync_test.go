package ledger

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/models"
)

func findEntry(items []models.GeneralEntry, id string) *models.GeneralEntry {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func TestSynchronizeRollsUpMonthlyCategory(t *testing.T) {
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-03-05", Kategori: "Operasional", Debet: 50000},
		{ID: "d2", Tanggal: "2024-03-20", Kategori: "Operasional", Debet: 50000},
	}

	out := Synchronize(detail, nil)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}

	row := out[0]
	if row.ID != "SYNC-IN-2024-2-Operasional" {
		t.Errorf("ID = %q", row.ID)
	}
	if row.Tanggal != "2024-03-31" {
		t.Errorf("tanggal = %q, want last day of March", row.Tanggal)
	}
	if row.Penerimaan != 100000 {
		t.Errorf("penerimaan = %v, want 100000", row.Penerimaan)
	}
	if row.Source != models.SourceBkpSync {
		t.Errorf("source = %q", row.Source)
	}
	if row.Uraian != "Rekap Penerimaan BKP (Operasional) - Maret 2024" {
		t.Errorf("uraian = %q", row.Uraian)
	}
}

func TestSynchronizeSeparatesInAndOut(t *testing.T) {
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-01-05", Kategori: "Operasional", Debet: 75000},
		{ID: "d2", Tanggal: "2024-01-10", Kategori: "Operasional", Kredit: 30000},
	}

	out := Synchronize(detail, nil)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	in := findEntry(out, "SYNC-IN-2024-0-Operasional")
	if in == nil || in.Penerimaan != 75000 {
		t.Errorf("SYNC-IN row missing or wrong: %+v", in)
	}
	outRow := findEntry(out, "SYNC-OUT-2024-0-Operasional")
	if outRow == nil || outRow.Pengeluaran != 30000 {
		t.Errorf("SYNC-OUT row missing or wrong: %+v", outRow)
	}
}

func TestSynchronizeBucketsBlankCategory(t *testing.T) {
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-06-01", Kategori: "  ", Debet: 10000},
	}

	out := Synchronize(detail, nil)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].ID != "SYNC-IN-2024-5-"+UncategorizedBucket {
		t.Errorf("ID = %q", out[0].ID)
	}
	if out[0].Kategori != UncategorizedBucket {
		t.Errorf("kategori = %q", out[0].Kategori)
	}
}

func TestSynchronizeCoercesMalformedDate(t *testing.T) {
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "kemarin sore", Kategori: "Operasional", Debet: 10000},
	}

	out := Synchronize(detail, nil)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1; a malformed date coerces, the row is kept", len(out))
	}
	now := time.Now()
	wantID := fmt.Sprintf("SYNC-IN-%d-%d-Operasional", now.Year(), int(now.Month())-1)
	if out[0].ID != wantID {
		t.Errorf("ID = %q, want %q", out[0].ID, wantID)
	}
	if out[0].Penerimaan != 10000 {
		t.Errorf("penerimaan = %v, want 10000", out[0].Penerimaan)
	}
}

func TestSynchronizeMergesWithStoredRows(t *testing.T) {
	general := []models.GeneralEntry{
		{ID: "g1", Tanggal: "2024-03-01", Uraian: "modal awal", Penerimaan: 500000},
	}
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-03-10", Kategori: "Bunga Uang", Debet: 20000},
	}

	out := Synchronize(detail, general)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// synthetic row is dated month-end, so it closes the ledger
	if out[0].Saldo != 520000 {
		t.Errorf("closing saldo = %v, want 520000", out[0].Saldo)
	}
}

func TestSynchronizeIdempotent(t *testing.T) {
	general := []models.GeneralEntry{
		{ID: "g1", Tanggal: "2024-03-01", Uraian: "modal awal", Penerimaan: 500000},
	}
	detail := []models.DetailEntry{
		{ID: "d1", Tanggal: "2024-03-10", Kategori: "Bunga Uang", Debet: 20000},
		{ID: "d2", Tanggal: "2024-04-02", Kategori: "Operasional", Kredit: 5000},
	}

	first := Synchronize(detail, general)
	second := Synchronize(detail, first)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass diverged:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
