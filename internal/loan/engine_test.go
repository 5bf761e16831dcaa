package loan

import (
	"testing"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/models"
)

func testLoan() models.Loan {
	return models.Loan{
		ID:             "L1",
		Tanggal:        "2024-01-10",
		Nama:           "Wayan",
		JumlahPinjaman: 1000000,
		Bunga:          20000,
		Status:         models.LoanStatusActive,
	}
}

func TestComponents(t *testing.T) {
	l := testLoan()

	bunga, pokok := Components(l, 120000, 1)
	if bunga != 20000 || pokok != 100000 {
		t.Errorf("single month: bunga=%v pokok=%v, want 20000/100000", bunga, pokok)
	}

	// zero covered months still charges one month of interest
	bunga, pokok = Components(l, 120000, 0)
	if bunga != 20000 || pokok != 100000 {
		t.Errorf("zero months: bunga=%v pokok=%v, want 20000/100000", bunga, pokok)
	}

	// a payment below the interest due goes negative on principal
	bunga, pokok = Components(l, 50000, 3)
	if bunga != 60000 || pokok != -10000 {
		t.Errorf("three months: bunga=%v pokok=%v, want 60000/-10000", bunga, pokok)
	}
}

func TestBreakdownGrid(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{
			ID:            "S1",
			PeminjamID:    "L1",
			Tanggal:       "2024-02-05",
			Uraian:        "Setoran bulan Februari",
			JumlahSetoran: 120000,
			Bunga:         20000,
			Pokok:         100000,
		},
	}
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	grid, sum := Breakdown(l, deposits, nil, 2024, now)

	// repayment starts the month after origination, so January is out
	if grid[0].Status != StatusNotApplicable || grid[0].Payable {
		t.Errorf("Januari = %+v, want not applicable", grid[0])
	}
	// February is covered by the deposit
	feb := grid[1]
	if feb.Status != StatusPaid || feb.Reversible {
		t.Errorf("Februari = %+v, want paid, not reversible", feb)
	}
	if feb.Setoran != 120000 || feb.Bunga != 20000 || feb.Pokok != 100000 {
		t.Errorf("Februari amounts = %v/%v/%v", feb.Setoran, feb.Bunga, feb.Pokok)
	}
	// March has begun but has no payment
	if grid[2].Status != StatusUnpaid {
		t.Errorf("Maret = %q, want %q", grid[2].Status, StatusUnpaid)
	}
	// April onward has not started
	for m := 3; m < 12; m++ {
		if grid[m].Status != StatusNotApplicable {
			t.Errorf("month %d = %q, want %q", m, grid[m].Status, StatusNotApplicable)
		}
	}

	if sum.TotalSetoran != 120000 || sum.TotalBunga != 20000 || sum.TotalPokok != 100000 {
		t.Errorf("totals = %+v", sum)
	}
	if sum.SisaHutang != 900000 {
		t.Errorf("sisa hutang = %v, want 900000", sum.SisaHutang)
	}
}

func TestBreakdownDepositOverridesMonthMask(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{ID: "S1", PeminjamID: "L1", Tanggal: "2024-01-20", Uraian: "Setoran bulan Januari",
			JumlahSetoran: 120000, Bunga: 20000, Pokok: 100000},
	}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	grid, _ := Breakdown(l, deposits, nil, 2024, now)
	// a deposit attributed to the origination month still shows paid
	if grid[0].Status != StatusPaid {
		t.Errorf("Januari = %q, want %q", grid[0].Status, StatusPaid)
	}
	if grid[0].Setoran != 120000 {
		t.Errorf("setoran = %v, want 120000", grid[0].Setoran)
	}
}

func TestBreakdownManualMarker(t *testing.T) {
	l := testLoan()
	manual := []models.ManualPayment{
		{PeminjamID: "L1", PaymentID: "L1-2024-2", Year: 2024, Month: 2},
	}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	grid, _ := Breakdown(l, nil, manual, 2024, now)
	mar := grid[2]
	if mar.Status != StatusPaid || !mar.Reversible {
		t.Fatalf("Maret = %+v, want paid via reversible marker", mar)
	}
	// a marker records the month's interest with no principal movement
	if mar.Setoran != 20000 || mar.Bunga != 20000 || mar.Pokok != 0 {
		t.Errorf("Maret amounts = %v/%v/%v", mar.Setoran, mar.Bunga, mar.Pokok)
	}
}

func TestBreakdownDepositWinsOverMarker(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{ID: "S1", PeminjamID: "L1", Tanggal: "2024-02-05", Uraian: "Setoran bulan Februari",
			JumlahSetoran: 120000, Bunga: 20000, Pokok: 100000},
	}
	manual := []models.ManualPayment{
		{PeminjamID: "L1", PaymentID: "L1-2024-1", Year: 2024, Month: 1},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	grid, _ := Breakdown(l, deposits, manual, 2024, now)
	if grid[1].Reversible {
		t.Error("deposit-backed month must not be reversible")
	}
	if grid[1].Setoran != 120000 {
		t.Errorf("setoran = %v, want the deposit amount", grid[1].Setoran)
	}
}

func TestBreakdownMultiMonthDepositSplitsEvenly(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{ID: "S1", PeminjamID: "L1", Tanggal: "2024-03-10", Uraian: "Setoran bulan Februari, Maret",
			JumlahSetoran: 240000, Bunga: 40000, Pokok: 200000},
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	grid, sum := Breakdown(l, deposits, nil, 2024, now)
	for _, m := range []int{1, 2} {
		if grid[m].Status != StatusPaid {
			t.Errorf("month %d = %q, want paid", m, grid[m].Status)
		}
		if grid[m].Setoran != 120000 || grid[m].Bunga != 20000 || grid[m].Pokok != 100000 {
			t.Errorf("month %d share = %v/%v/%v", m, grid[m].Setoran, grid[m].Bunga, grid[m].Pokok)
		}
	}
	if sum.SetoranTahun != 240000 {
		t.Errorf("setoran tahun = %v, want 240000", sum.SetoranTahun)
	}
}

func TestBreakdownSettledLoanHasNoUnpaidMonths(t *testing.T) {
	l := testLoan()
	l.Status = models.LoanStatusSettled
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	grid, _ := Breakdown(l, nil, nil, 2024, now)
	for m := 0; m < 12; m++ {
		if grid[m].Status == StatusUnpaid {
			t.Errorf("month %d unpaid on a settled loan", m)
		}
	}
}

func TestBreakdownIgnoresOtherLoans(t *testing.T) {
	l := testLoan()
	deposits := []models.Deposit{
		{ID: "S9", PeminjamID: "L9", Tanggal: "2024-02-05", JumlahSetoran: 999999, Bunga: 1, Pokok: 999998},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, sum := Breakdown(l, deposits, nil, 2024, now)
	if sum.TotalSetoran != 0 {
		t.Errorf("total setoran = %v, want 0", sum.TotalSetoran)
	}
	if sum.SisaHutang != 1000000 {
		t.Errorf("sisa hutang = %v, want untouched principal", sum.SisaHutang)
	}
}

func TestOutstandingTotal(t *testing.T) {
	loans := []models.Loan{
		{ID: "a", JumlahPinjaman: 1000000, Status: models.LoanStatusActive},
		{ID: "b", JumlahPinjaman: 500000, Status: models.LoanStatusSettled},
		{ID: "c", JumlahPinjaman: 250000, Status: models.LoanStatusActive},
	}
	if got := OutstandingTotal(loans); got != 1250000 {
		t.Errorf("OutstandingTotal = %v, want 1250000", got)
	}
}
