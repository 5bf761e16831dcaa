package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/models"
)

// UncategorizedBucket collects detail rows whose category is blank so they
// still roll up instead of being dropped.
const UncategorizedBucket = "Tanpa Kategori"

// Transaction code prefixes carried by synthetic rollup rows. Exports and
// imports recognize them so derived rows never round-trip into storage.
const (
	SyncKodeInPrefix  = "BKP-IN-"
	SyncKodeOutPrefix = "BKP-OUT-"
)

type syncKey struct {
	year     int
	month    int // 0-11
	kategori string
}

type syncGroup struct {
	debet  float64
	kredit float64
}

// Synchronize rolls the detail ledger up into the general one. Balanced
// detail rows are grouped by (year, month, category); each group with a
// positive debet or kredit sum becomes one synthetic general row dated on
// the last day of its month, tagged models.SourceBkpSync. Synthetic rows
// carry identifiers derived from their group key, so re-running with the
// same input reproduces them byte for byte. The synthesized rows are merged
// with the stored (non-synthetic) general rows and the union is balanced.
func Synchronize(detail []models.DetailEntry, general []models.GeneralEntry) []models.GeneralEntry {
	balanced := Detail(detail)

	groups := make(map[syncKey]*syncGroup)
	for _, d := range balanced {
		kategori := strings.TrimSpace(d.Kategori)
		if kategori == "" {
			kategori = UncategorizedBucket
		}
		key := syncKey{year: dates.Year(d.Tanggal), month: dates.Month(d.Tanggal), kategori: kategori}
		if key.month < 0 {
			// malformed dates coerce to today, the row is never dropped
			coerced := dates.Normalize(d.Tanggal, time.Now())
			key.year, key.month = dates.Year(coerced), dates.Month(coerced)
		}
		g, ok := groups[key]
		if !ok {
			g = &syncGroup{}
			groups[key] = g
		}
		g.debet += d.Debet
		g.kredit += d.Kredit
	}

	keys := make([]syncKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].kategori < keys[j].kategori
	})

	merged := make([]models.GeneralEntry, 0, len(general)+2*len(keys))
	for _, e := range general {
		// Stored rows only; stale synthetic rows from a previous pass are
		// rebuilt below, which keeps overlapping recomputes convergent.
		if e.Source != models.SourceBkpSync {
			merged = append(merged, e)
		}
	}

	for _, key := range keys {
		g := groups[key]
		tanggal := dates.EndOfMonth(key.year, key.month)
		periode := fmt.Sprintf("%s %d", dates.MonthName(key.month), key.year)
		kodeSuffix := fmt.Sprintf("%d%02d-%s", key.year, key.month+1, strings.ReplaceAll(key.kategori, " ", ""))

		if g.debet > 0 {
			merged = append(merged, models.GeneralEntry{
				ID:         fmt.Sprintf("SYNC-IN-%d-%d-%s", key.year, key.month, key.kategori),
				Tanggal:    tanggal,
				Kode:       SyncKodeInPrefix + kodeSuffix,
				Uraian:     fmt.Sprintf("Rekap Penerimaan BKP (%s) - %s", key.kategori, periode),
				Kategori:   key.kategori,
				Penerimaan: g.debet,
				Source:     models.SourceBkpSync,
			})
		}
		if g.kredit > 0 {
			merged = append(merged, models.GeneralEntry{
				ID:          fmt.Sprintf("SYNC-OUT-%d-%d-%s", key.year, key.month, key.kategori),
				Tanggal:     tanggal,
				Kode:        SyncKodeOutPrefix + kodeSuffix,
				Uraian:      fmt.Sprintf("Rekap Pengeluaran BKP (%s) - %s", key.kategori, periode),
				Kategori:    key.kategori,
				Pengeluaran: g.kredit,
				Source:      models.SourceBkpSync,
			})
		}
	}

	return General(merged)
}
