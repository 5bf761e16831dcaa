// Package loan derives loan repayment state: the 12-month payment grid,
// lifetime aggregates, yearly recaps and cascade deletion plans. All
// functions are pure; the reference instant is passed in so "future month"
// and "missed month" decisions are deterministic under test.
//
// A loan's status is never derived from its remaining debt, not even when
// the debt reaches zero or below; settling is an explicit edit.
package loan

import (
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

// Month status values shown on the payment grid.
const (
	StatusPaid          = "Di bayar"
	StatusUnpaid        = "Tidak Bayar"
	StatusNotApplicable = "-"
)

// MonthlyStatus is one row of the payment grid for a (loan, year).
type MonthlyStatus struct {
	MonthIndex int     `json:"monthIndex"`
	MonthName  string  `json:"monthName"`
	Status     string  `json:"status"`
	Payable    bool    `json:"payable"`    // unpaid and open for a manual marker
	Reversible bool    `json:"reversible"` // paid via manual marker only; may be untoggled
	Setoran    float64 `json:"jumlahSetoran"`
	Bunga      float64 `json:"bunga"`
	Pokok      float64 `json:"pokok"`
}

// Summary aggregates a loan's deposits. The Total* and SisaHutang fields
// cover the loan's entire history; the *Tahun fields are scoped to the
// requested year's grid. SisaHutang is not clamped: a deposit smaller than
// the interest due yields negative principal and silently reduces the
// remaining debt. Displays that must not show negative debt clamp at the
// edge.
type Summary struct {
	TotalSetoran float64 `json:"totalSetoran"`
	TotalBunga   float64 `json:"totalBunga"`
	TotalPokok   float64 `json:"totalPokok"`
	SisaHutang   float64 `json:"sisaHutang"`
	SetoranTahun float64 `json:"setoranTahun"`
	BungaTahun   float64 `json:"bungaTahun"`
	PokokTahun   float64 `json:"pokokTahun"`
}

// Components splits a repayment into interest and principal. The interest
// component charges the loan's fixed per-month interest once per covered
// month (minimum one); whatever remains is principal, negative when the
// payment does not even cover the interest.
func Components(l models.Loan, amount float64, coveredMonths int) (bunga, pokok float64) {
	if coveredMonths < 1 {
		coveredMonths = 1
	}
	bunga = l.Bunga * float64(coveredMonths)
	return bunga, amount - bunga
}

type monthPayment struct {
	setoran float64
	bunga   float64
	pokok   float64
}

// Breakdown computes the payment grid for one loan and year plus the loan's
// aggregate summary. Deposits referencing other loans are ignored. A deposit
// covering several months contributes an even share of its amount, interest
// and principal to each.
func Breakdown(l models.Loan, deposits []models.Deposit, manual []models.ManualPayment, year int, now time.Time) ([12]MonthlyStatus, Summary) {
	var sum Summary

	paid := make(map[int]*monthPayment)
	for _, d := range deposits {
		if d.PeminjamID != l.ID {
			continue
		}
		sum.TotalSetoran += d.JumlahSetoran
		sum.TotalBunga += d.Bunga
		sum.TotalPokok += d.Pokok

		if dates.Year(d.Tanggal) != year {
			continue
		}
		covered := CoveredMonths(d.Uraian, d.Tanggal)
		share := float64(len(covered))
		for _, m := range covered {
			p, ok := paid[m]
			if !ok {
				p = &monthPayment{}
				paid[m] = p
			}
			p.setoran += d.JumlahSetoran / share
			p.bunga += d.Bunga / share
			p.pokok += d.Pokok / share
		}
	}
	sum.SisaHutang = l.JumlahPinjaman - sum.TotalPokok
	for _, p := range paid {
		sum.SetoranTahun += p.setoran
		sum.BungaTahun += p.bunga
		sum.PokokTahun += p.pokok
	}

	manualSet := make(map[int]bool)
	for _, mp := range manual {
		if mp.PeminjamID == l.ID && mp.Year == year {
			manualSet[mp.Month] = true
		}
	}

	loanStart, startErr := dates.Parse(l.Tanggal)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var grid [12]MonthlyStatus
	for m := 0; m < 12; m++ {
		row := MonthlyStatus{
			MonthIndex: m,
			MonthName:  dates.MonthName(m),
			Status:     StatusNotApplicable,
		}
		monthStart := time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		future := monthStart.After(today)
		// Repayment starts the month after origination; the origination
		// month itself is never payable.
		beforeLoan := startErr == nil &&
			monthStart.Before(time.Date(loanStart.Year(), loanStart.Month()+1, 1, 0, 0, 0, 0, time.UTC))

		switch {
		case paid[m] != nil:
			p := paid[m]
			row.Status = StatusPaid
			row.Setoran, row.Bunga, row.Pokok = p.setoran, p.bunga, p.pokok
		case future || beforeLoan:
			// not applicable
		case manualSet[m]:
			// Synthetic amounts: a marker records the month's interest as
			// paid with no principal movement.
			row.Status = StatusPaid
			row.Reversible = true
			row.Setoran, row.Bunga = l.Bunga, l.Bunga
		case l.Status == models.LoanStatusActive:
			row.Status = StatusUnpaid
			row.Payable = true
		}
		grid[m] = row
	}

	return grid, sum
}
