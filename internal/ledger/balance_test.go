package ledger

import (
	"testing"

	"github.com/bacolgede83-big/Gede23/internal/models"
)

func TestGeneralRunningBalance(t *testing.T) {
	entries := []models.GeneralEntry{
		{ID: "b", Tanggal: "2024-01-10", Uraian: "bayar listrik", Pengeluaran: 40000},
		{ID: "a", Tanggal: "2024-01-05", Uraian: "simpanan wajib", Penerimaan: 100000},
		{ID: "c", Tanggal: "2024-01-20", Uraian: "simpanan pokok", Penerimaan: 25000},
	}

	out := General(entries)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}

	// newest first
	if out[0].ID != "c" || out[1].ID != "b" || out[2].ID != "a" {
		t.Fatalf("presentation order = %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}

	// accumulated oldest to newest: 100000, 60000, 85000
	if out[2].Saldo != 100000 {
		t.Errorf("saldo[a] = %v, want 100000", out[2].Saldo)
	}
	if out[1].Saldo != 60000 {
		t.Errorf("saldo[b] = %v, want 60000", out[1].Saldo)
	}
	if out[0].Saldo != 85000 {
		t.Errorf("saldo[c] = %v, want 85000", out[0].Saldo)
	}
}

func TestGeneralSameDayOrdersByUraian(t *testing.T) {
	entries := []models.GeneralEntry{
		{ID: "x", Tanggal: "2024-03-01", Uraian: "zakat", Pengeluaran: 10000},
		{ID: "y", Tanggal: "2024-03-01", Uraian: "arisan", Penerimaan: 50000},
	}

	out := General(entries)
	// "arisan" accumulates first, "zakat" last; presentation is reversed
	if out[0].ID != "x" {
		t.Fatalf("first presented = %s, want x", out[0].ID)
	}
	if out[1].Saldo != 50000 {
		t.Errorf("saldo[y] = %v, want 50000", out[1].Saldo)
	}
	if out[0].Saldo != 40000 {
		t.Errorf("saldo[x] = %v, want 40000", out[0].Saldo)
	}
}

func TestGeneralAssignsMissingIDs(t *testing.T) {
	entries := []models.GeneralEntry{
		{Tanggal: "2024-01-05", Uraian: "tanpa id", Penerimaan: 1000},
	}
	out := General(entries)
	if out[0].ID == "" {
		t.Error("missing ID was not assigned")
	}
	if entries[0].ID != "" {
		t.Error("input slice was modified")
	}
}

func TestGeneralEmptyInput(t *testing.T) {
	if out := General(nil); len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestDetailRunningBalance(t *testing.T) {
	entries := []models.DetailEntry{
		{ID: "d2", Tanggal: "2024-02-10", Uraian: "pokok pinjaman", Debet: 100000},
		{ID: "d1", Tanggal: "2024-02-05", Uraian: "bunga uang", Debet: 20000},
		{ID: "d3", Tanggal: "2024-02-15", Uraian: "biaya materai", Kredit: 10000},
	}

	out := Detail(entries)
	if out[0].ID != "d3" {
		t.Fatalf("first presented = %s, want d3", out[0].ID)
	}
	if out[0].Saldo != 110000 {
		t.Errorf("closing saldo = %v, want 110000", out[0].Saldo)
	}
	if out[2].Saldo != 20000 {
		t.Errorf("opening saldo = %v, want 20000", out[2].Saldo)
	}
}
