package loan

import "github.com/bacolgede83-big/Gede23/internal/models"

// Collections a deletion step can target.
const (
	CollectionSetoran  = "setoran"
	CollectionBkp      = "bkp"
	CollectionPeminjam = "peminjam"
)

// DeletionStep is one persistence call of a cascade.
type DeletionStep struct {
	Collection string
	ID         string
}

// DeletionPlan computes the ordered persistence calls that remove a loan and
// everything hanging off it: its deposits first, then the detail-ledger rows
// those deposits generated, then the loan itself. The caller executes the
// steps one by one; there is no rollback, so a failed step leaves earlier
// deletions in place (log the step and identifier for manual repair).
func DeletionPlan(loanID string, deposits []models.Deposit, detail []models.DetailEntry) []DeletionStep {
	var steps []DeletionStep

	owned := make(map[string]bool)
	for _, d := range deposits {
		if d.PeminjamID == loanID {
			owned[d.ID] = true
			steps = append(steps, DeletionStep{Collection: CollectionSetoran, ID: d.ID})
		}
	}
	for _, e := range detail {
		if e.SourceID != "" && owned[e.SourceID] {
			steps = append(steps, DeletionStep{Collection: CollectionBkp, ID: e.ID})
		}
	}
	return append(steps, DeletionStep{Collection: CollectionPeminjam, ID: loanID})
}
