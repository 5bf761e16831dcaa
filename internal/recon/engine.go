// Package recon computes the period-end comparison between the two cash
// books and against physically counted cash. Inputs are balanced ledger
// snapshots (descending presentation order, as produced by the ledger
// package); the computation itself is pure.
package recon

import (
	"fmt"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

// Result carries the reconciliation of one period plus the physical-cash
// comparison fields.
type Result struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12

	SaldoAkhirBku float64 `json:"saldoAkhirBku"`
	SaldoAkhirBkp float64 `json:"saldoAkhirBkp"`
	Selisih       float64 `json:"selisih"`
	Status        string  `json:"status"`

	CashOnHand           float64 `json:"cashOnHand"`
	CashInBank           float64 `json:"cashInBank"`
	CashTotal            float64 `json:"cashTotal"`
	SuggestedCashOnHand  float64 `json:"suggestedCashOnHand"`
	SelisihKasFisik      float64 `json:"selisihKasFisik"`
	TotalPinjaman        float64 `json:"totalPinjaman"`
	TotalCashKeseluruhan float64 `json:"totalCashKeseluruhan"`
}

// Reconcile closes (year, month) over both balanced ledgers. The opening
// balance of each book is the saldo of its latest entry strictly before the
// period start (zero when the book has no earlier entry); the closing
// balance adds the period's increases and subtracts its decreases.
// totalPinjaman is the outstanding-loan principal supplied by the caller.
func Reconcile(general []models.GeneralEntry, detail []models.DetailEntry, year, month int, cashOnHand, cashInBank, totalPinjaman float64) Result {
	periodStart := fmt.Sprintf("%04d-%02d-01", year, month)

	openBku := 0.0
	for _, e := range general { // descending: first match is the latest
		if e.Tanggal < periodStart {
			openBku = e.Saldo
			break
		}
	}
	var inBku, outBku float64
	for _, e := range general {
		if dates.Year(e.Tanggal) == year && dates.Month(e.Tanggal) == month-1 {
			inBku += e.Penerimaan
			outBku += e.Pengeluaran
		}
	}
	closeBku := openBku + inBku - outBku

	openBkp := 0.0
	for _, e := range detail {
		if e.Tanggal < periodStart {
			openBkp = e.Saldo
			break
		}
	}
	var inBkp, outBkp float64
	for _, e := range detail {
		if dates.Year(e.Tanggal) == year && dates.Month(e.Tanggal) == month-1 {
			inBkp += e.Debet
			outBkp += e.Kredit
		}
	}
	closeBkp := openBkp + inBkp - outBkp

	selisih := closeBku - closeBkp
	status := models.ReconStatusVariance
	if selisih == 0 {
		status = models.ReconStatusMatched
	}

	cashTotal := cashOnHand + cashInBank
	return Result{
		Year:                 year,
		Month:                month,
		SaldoAkhirBku:        closeBku,
		SaldoAkhirBkp:        closeBkp,
		Selisih:              selisih,
		Status:               status,
		CashOnHand:           cashOnHand,
		CashInBank:           cashInBank,
		CashTotal:            cashTotal,
		SuggestedCashOnHand:  closeBku - cashInBank,
		SelisihKasFisik:      cashTotal - closeBku,
		TotalPinjaman:        totalPinjaman,
		TotalCashKeseluruhan: cashTotal + totalPinjaman,
	}
}

// Record materializes the result as the persistable period record, keyed by
// YYYY-MM so a later save for the same period overwrites in place.
func (r Result) Record(userID uint) models.ReconciliationRecord {
	return models.ReconciliationRecord{
		ID:             fmt.Sprintf("%04d-%02d", r.Year, r.Month),
		UserID:         userID,
		Year:           fmt.Sprintf("%04d", r.Year),
		Month:          fmt.Sprintf("%02d", r.Month),
		SaldoAkhirBuku: r.SaldoAkhirBku,
		SaldoAkhirBank: r.SaldoAkhirBkp,
		Selisih:        r.Selisih,
		Status:         r.Status,
	}
}
