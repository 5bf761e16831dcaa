package recon

import (
	"testing"

	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

func TestReconcileMatchedPeriod(t *testing.T) {
	general := ledger.General([]models.GeneralEntry{
		{ID: "g1", Tanggal: "2024-01-10", Uraian: "simpanan", Penerimaan: 500000},
	})
	detail := ledger.Detail([]models.DetailEntry{
		{ID: "d1", Tanggal: "2024-01-10", Uraian: "simpanan", Debet: 500000},
	})

	r := Reconcile(general, detail, 2024, 1, 400000, 100000, 0)

	if r.SaldoAkhirBku != 500000 || r.SaldoAkhirBkp != 500000 {
		t.Errorf("closing = %v / %v, want 500000 both", r.SaldoAkhirBku, r.SaldoAkhirBkp)
	}
	if r.Selisih != 0 || r.Status != models.ReconStatusMatched {
		t.Errorf("selisih=%v status=%q", r.Selisih, r.Status)
	}
	if r.CashTotal != 500000 {
		t.Errorf("cash total = %v, want 500000", r.CashTotal)
	}
	if r.SelisihKasFisik != 0 {
		t.Errorf("selisih kas fisik = %v, want 0", r.SelisihKasFisik)
	}
	if r.SuggestedCashOnHand != 400000 {
		t.Errorf("suggested cash on hand = %v, want 400000", r.SuggestedCashOnHand)
	}
}

func TestReconcileVariance(t *testing.T) {
	general := ledger.General([]models.GeneralEntry{
		{ID: "g1", Tanggal: "2024-01-10", Penerimaan: 500000},
	})
	detail := ledger.Detail([]models.DetailEntry{
		{ID: "d1", Tanggal: "2024-01-10", Debet: 450000},
	})

	r := Reconcile(general, detail, 2024, 1, 0, 0, 0)
	if r.Selisih != 50000 || r.Status != models.ReconStatusVariance {
		t.Errorf("selisih=%v status=%q, want 50000 / %q", r.Selisih, r.Status, models.ReconStatusVariance)
	}
}

func TestReconcileOpeningBalanceFromEarlierMonths(t *testing.T) {
	general := ledger.General([]models.GeneralEntry{
		{ID: "g0", Tanggal: "2023-12-20", Penerimaan: 100000},
		{ID: "g1", Tanggal: "2024-01-05", Penerimaan: 50000},
		{ID: "g2", Tanggal: "2024-01-15", Pengeluaran: 30000},
		{ID: "g3", Tanggal: "2024-02-01", Penerimaan: 999999}, // outside the period
	})

	r := Reconcile(general, nil, 2024, 1, 0, 0, 0)
	// opening 100000 + in 50000 - out 30000
	if r.SaldoAkhirBku != 120000 {
		t.Errorf("closing bku = %v, want 120000", r.SaldoAkhirBku)
	}
	// empty detail book closes at zero and differs
	if r.Status != models.ReconStatusVariance {
		t.Errorf("status = %q, want %q", r.Status, models.ReconStatusVariance)
	}
}

func TestReconcileTotalExposure(t *testing.T) {
	r := Reconcile(nil, nil, 2024, 3, 200000, 300000, 1250000)
	if r.CashTotal != 500000 {
		t.Errorf("cash total = %v", r.CashTotal)
	}
	if r.TotalCashKeseluruhan != 1750000 {
		t.Errorf("total keseluruhan = %v, want 1750000", r.TotalCashKeseluruhan)
	}
}

func TestRecordKeyAndFields(t *testing.T) {
	r := Reconcile(nil, nil, 2024, 1, 0, 0, 0)
	rec := r.Record(7)

	if rec.ID != "2024-01" {
		t.Errorf("ID = %q, want 2024-01", rec.ID)
	}
	if rec.Year != "2024" || rec.Month != "01" {
		t.Errorf("year/month = %q/%q", rec.Year, rec.Month)
	}
	if rec.UserID != 7 {
		t.Errorf("user id = %d, want 7", rec.UserID)
	}
	if rec.Status != models.ReconStatusMatched {
		t.Errorf("status = %q", rec.Status)
	}
}
