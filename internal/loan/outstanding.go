package loan

import "github.com/bacolgede83-big/Gede23/internal/models"

// OutstandingTotal sums the principal of every loan still marked active.
// The reconciliation view counts disbursed principal, not remaining debt.
func OutstandingTotal(loans []models.Loan) float64 {
	var total float64
	for _, l := range loans {
		if l.Status == models.LoanStatusActive {
			total += l.JumlahPinjaman
		}
	}
	return total
}
