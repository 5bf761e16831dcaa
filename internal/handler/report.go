package handler

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the saldo akhir year report over the synchronized
// general ledger.
type ReportHandler struct {
	Store *store.Store
}

func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{Store: s}
}

type monthlyFlow struct {
	Bulan       string  `json:"bulan"`
	Penerimaan  float64 `json:"penerimaan"`
	Pengeluaran float64 `json:"pengeluaran"`
	Neto        float64 `json:"neto"`
}

type categoryFlow struct {
	Kategori    string  `json:"kategori"`
	Penerimaan  float64 `json:"penerimaan"`
	Pengeluaran float64 `json:"pengeluaran"`
}

// YearReport summarizes one calendar year of the general ledger.
func (h *ReportHandler) YearReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if s := c.Query("tahun"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2200 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Tahun tidak valid")
			return
		}
		year = y
	}

	ledgerHandler := LedgerHandler{Store: h.Store}
	items, err := ledgerHandler.synchronizedGeneral(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas umum")
		return
	}

	yearEnd := fmt.Sprintf("%04d-12-31", year)
	var saldoAkhir float64
	for i := range items { // descending: first entry on or before year end
		if items[i].Tanggal <= yearEnd {
			saldoAkhir = items[i].Saldo
			break
		}
	}

	var totalPenerimaan, totalPengeluaran float64
	monthly := make([]monthlyFlow, 12)
	for i := range monthly {
		monthly[i].Bulan = dates.MonthName(i)
	}
	byCategory := make(map[string]*categoryFlow)

	for i := range items {
		e := &items[i]
		if dates.Year(e.Tanggal) != year {
			continue
		}
		totalPenerimaan += e.Penerimaan
		totalPengeluaran += e.Pengeluaran

		if m := dates.Month(e.Tanggal); m >= 0 {
			monthly[m].Penerimaan += e.Penerimaan
			monthly[m].Pengeluaran += e.Pengeluaran
		}

		kategori := e.Kategori
		if kategori == "" {
			kategori = ledger.UncategorizedBucket
		}
		cf, found := byCategory[kategori]
		if !found {
			cf = &categoryFlow{Kategori: kategori}
			byCategory[kategori] = cf
		}
		cf.Penerimaan += e.Penerimaan
		cf.Pengeluaran += e.Pengeluaran
	}
	for i := range monthly {
		monthly[i].Neto = monthly[i].Penerimaan - monthly[i].Pengeluaran
	}

	categories := make([]categoryFlow, 0, len(byCategory))
	for _, cf := range byCategory {
		categories = append(categories, *cf)
	}
	sort.Slice(categories, func(i, j int) bool {
		vi := categories[i].Penerimaan + categories[i].Pengeluaran
		vj := categories[j].Penerimaan + categories[j].Pengeluaran
		if vi != vj {
			return vi > vj
		}
		return categories[i].Kategori < categories[j].Kategori
	})

	top := categories
	if len(top) > 5 {
		top = top[:5]
	}

	util.Success(c, util.Response{
		"tahun":            year,
		"totalPenerimaan":  totalPenerimaan,
		"totalPengeluaran": totalPengeluaran,
		"surplus":          totalPenerimaan - totalPengeluaran,
		"saldoAkhir":       saldoAkhir,
		"perBulan":         monthly,
		"perKategori":      categories,
		"kategoriTeratas":  top,
	})
}
