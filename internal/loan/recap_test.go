package loan

import (
	"reflect"
	"testing"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/models"
)

func TestRecapPaidAndMissedMonths(t *testing.T) {
	l := testLoan() // originated 2024-01-10, active
	deposits := []models.Deposit{
		{ID: "S1", PeminjamID: "L1", Tanggal: "2024-02-05", Uraian: "Setoran bulan Februari",
			JumlahSetoran: 120000, Bunga: 20000, Pokok: 100000},
	}
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	recaps, orphans := RecapAll([]models.Loan{l}, deposits, nil, 2024, now)
	if len(orphans) != 0 {
		t.Fatalf("orphans = %d, want 0", len(orphans))
	}
	if len(recaps) != 1 {
		t.Fatalf("recaps = %d, want 1", len(recaps))
	}

	r := recaps[0]
	if !reflect.DeepEqual(r.PaidMonths, []string{"Februari"}) {
		t.Errorf("paid months = %v", r.PaidMonths)
	}
	// counted from the month after origination through the current month
	if !reflect.DeepEqual(r.MissedMonths, []string{"Maret", "April"}) {
		t.Errorf("missed months = %v", r.MissedMonths)
	}
	if r.JumlahTidakBayar != 2 {
		t.Errorf("jumlah tidak bayar = %d, want 2", r.JumlahTidakBayar)
	}
	if r.SisaHutang != 900000 {
		t.Errorf("sisa hutang = %v, want 900000", r.SisaHutang)
	}
	if r.JumlahTransaksi != 1 {
		t.Errorf("jumlah transaksi = %d, want 1", r.JumlahTransaksi)
	}
}

func TestRecapManualMarkerCountsAsPaid(t *testing.T) {
	l := testLoan()
	manual := []models.ManualPayment{
		{PeminjamID: "L1", PaymentID: "L1-2024-1", Year: 2024, Month: 1},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	recaps, _ := RecapAll([]models.Loan{l}, nil, manual, 2024, now)
	r := recaps[0]
	if !reflect.DeepEqual(r.PaidMonths, []string{"Februari"}) {
		t.Errorf("paid months = %v", r.PaidMonths)
	}
	if !reflect.DeepEqual(r.MissedMonths, []string{"Maret"}) {
		t.Errorf("missed months = %v", r.MissedMonths)
	}
}

func TestRecapSettledLoanHasNoMissedMonths(t *testing.T) {
	l := testLoan()
	l.Status = models.LoanStatusSettled
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	recaps, _ := RecapAll([]models.Loan{l}, nil, nil, 2024, now)
	if n := recaps[0].JumlahTidakBayar; n != 0 {
		t.Errorf("jumlah tidak bayar = %d, want 0", n)
	}
	if recaps[0].MissedMonths != nil {
		t.Errorf("missed months = %v, want none", recaps[0].MissedMonths)
	}
}

func TestRecapPastYearRunsToDecember(t *testing.T) {
	l := testLoan()
	l.Tanggal = "2023-10-05"
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	recaps, _ := RecapAll([]models.Loan{l}, nil, nil, 2023, now)
	// November and December of the analyzed year
	if !reflect.DeepEqual(recaps[0].MissedMonths, []string{"November", "Desember"}) {
		t.Errorf("missed months = %v", recaps[0].MissedMonths)
	}
}

func TestRecapAllReportsOrphanDeposits(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{ID: "S1", PeminjamID: "L1", Tanggal: "2024-02-05", JumlahSetoran: 100000},
		{ID: "S2", PeminjamID: "hilang", Tanggal: "2024-02-10", NamaPeminjam: "Ketut", JumlahSetoran: 50000},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	recaps, orphans := RecapAll([]models.Loan{l}, deposits, nil, 2024, now)
	if len(orphans) != 1 || orphans[0].ID != "S2" {
		t.Fatalf("orphans = %+v, want S2 only", orphans)
	}
	// the orphan takes part in no recap
	if recaps[0].TotalSetoran != 100000 {
		t.Errorf("total setoran = %v, want 100000", recaps[0].TotalSetoran)
	}
}
