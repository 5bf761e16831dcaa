// Package ledger holds the pure computations over the two cash books: the
// running-balance pass and the detail-to-general synchronization. Functions
// here never touch storage; callers fetch records, run the pass and decide
// what to persist.
package ledger

import (
	"sort"

	"github.com/bacolgede83-big/Gede23/internal/models"

	"github.com/google/uuid"
)

// General annotates general-ledger rows with their running balance.
// Rows are accumulated in ascending (tanggal, uraian) order starting from
// zero, then returned in descending order for presentation with the computed
// saldo carried unchanged. Rows without an ID are assigned one. The input
// slice is not modified.
func General(entries []models.GeneralEntry) []models.GeneralEntry {
	out := make([]models.GeneralEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tanggal != out[j].Tanggal {
			return out[i].Tanggal < out[j].Tanggal
		}
		return out[i].Uraian < out[j].Uraian
	})

	saldo := 0.0
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		saldo += out[i].Penerimaan - out[i].Pengeluaran
		out[i].Saldo = saldo
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tanggal != out[j].Tanggal {
			return out[i].Tanggal > out[j].Tanggal
		}
		return out[i].Uraian > out[j].Uraian
	})
	return out
}

// Detail is the running-balance pass for the auxiliary cash book, with debet
// increasing and kredit decreasing the balance.
func Detail(entries []models.DetailEntry) []models.DetailEntry {
	out := make([]models.DetailEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tanggal != out[j].Tanggal {
			return out[i].Tanggal < out[j].Tanggal
		}
		return out[i].Uraian < out[j].Uraian
	})

	saldo := 0.0
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		saldo += out[i].Debet - out[i].Kredit
		out[i].Saldo = saldo
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tanggal != out[j].Tanggal {
			return out[i].Tanggal > out[j].Tanggal
		}
		return out[i].Uraian > out[j].Uraian
	})
	return out
}
