package loan

import (
	"sort"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

// Recap summarizes one borrower's repayment activity for a year, on top of
// the loan's lifetime financial totals.
type Recap struct {
	PeminjamID       string   `json:"peminjamId"`
	NamaPeminjam     string   `json:"namaPeminjam"`
	TotalSetoran     float64  `json:"totalSetoran"`
	TotalBunga       float64  `json:"totalBunga"`
	TotalPokok       float64  `json:"totalPokok"`
	SisaHutang       float64  `json:"sisaHutang"`
	JumlahTransaksi  int      `json:"jumlahTransaksi"`
	JumlahTidakBayar int      `json:"jumlahTidakBayar"`
	PaidMonths       []string `json:"paidMonths"`
	MissedMonths     []string `json:"missedMonths"`
}

// RecapAll builds the yearly recap for every loan. Deposits referencing a
// loan that no longer exists take part in no recap; they are returned
// separately so the caller can surface a warning instead of failing.
func RecapAll(loans []models.Loan, deposits []models.Deposit, manual []models.ManualPayment, year int, now time.Time) ([]Recap, []models.Deposit) {
	known := make(map[string]bool, len(loans))
	for _, l := range loans {
		known[l.ID] = true
	}
	var orphans []models.Deposit
	for _, d := range deposits {
		if !known[d.PeminjamID] {
			orphans = append(orphans, d)
		}
	}

	recaps := make([]Recap, 0, len(loans))
	for _, l := range loans {
		recaps = append(recaps, recapOne(l, deposits, manual, year, now))
	}
	return recaps, orphans
}

func recapOne(l models.Loan, deposits []models.Deposit, manual []models.ManualPayment, year int, now time.Time) Recap {
	r := Recap{PeminjamID: l.ID, NamaPeminjam: l.Nama}

	paidSet := make(map[int]bool)
	for _, d := range deposits {
		if d.PeminjamID != l.ID {
			continue
		}
		r.TotalSetoran += d.JumlahSetoran
		r.TotalBunga += d.Bunga
		r.TotalPokok += d.Pokok
		if dates.Year(d.Tanggal) == year {
			for _, m := range CoveredMonths(d.Uraian, d.Tanggal) {
				paidSet[m] = true
			}
		}
	}
	for _, mp := range manual {
		if mp.PeminjamID == l.ID && mp.Year == year {
			paidSet[mp.Month] = true
		}
	}

	r.SisaHutang = l.JumlahPinjaman - r.TotalPokok
	r.JumlahTransaksi = len(paidSet)

	paid := make([]int, 0, len(paidSet))
	for m := range paidSet {
		paid = append(paid, m)
	}
	sort.Ints(paid)
	for _, m := range paid {
		r.PaidMonths = append(r.PaidMonths, dates.MonthName(m))
	}

	// Missed months: only for active loans, starting the month after
	// origination when the loan began in the analyzed year, and stopping at
	// the current month when analyzing the current year.
	startYear, startMonth := dates.Year(l.Tanggal), dates.Month(l.Tanggal)
	if startYear <= year && l.Status == models.LoanStatusActive && startMonth >= 0 {
		from := 0
		if startYear == year {
			from = startMonth + 1
		}
		to := 11
		if year == now.Year() {
			to = int(now.Month()) - 1
		}
		for m := from; m <= to; m++ {
			if !paidSet[m] {
				r.MissedMonths = append(r.MissedMonths, dates.MonthName(m))
			}
		}
		r.JumlahTidakBayar = len(r.MissedMonths)
	}

	return r
}
