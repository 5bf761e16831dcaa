package handler

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/models"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LedgerHandler serves both cash books: BKU (buku kas umum) and BKP
// (buku kas pembantu). Every BKU read returns the synchronized view, with
// the monthly BKP rollups merged in.
type LedgerHandler struct {
	Store *store.Store
}

func NewLedgerHandler(s *store.Store) *LedgerHandler {
	return &LedgerHandler{Store: s}
}

// defaultCategories seeds the category list; observed categories from both
// ledgers are merged in.
var defaultCategories = []string{
	"Operasional",
	"Simpanan Pokok",
	"Simpanan Wajib",
	"Simpanan Sukarela",
	"Bunga Uang",
	"Pokok Pinjaman",
	"Pinjaman",
	"Lain-lain",
}

// ---------- requests ----------

type generalEntryReq struct {
	Tanggal     string  `json:"tanggal" binding:"required"`
	Kode        string  `json:"kode" binding:"max=64"`
	Uraian      string  `json:"uraian" binding:"max=255"`
	Kategori    string  `json:"kategori" binding:"max=64"`
	Penerimaan  float64 `json:"penerimaan"`
	Pengeluaran float64 `json:"pengeluaran"`
}

type detailEntryReq struct {
	Tanggal  string  `json:"tanggal" binding:"required"`
	Kode     string  `json:"kode" binding:"max=64"`
	Bukti    string  `json:"bukti" binding:"max=16"`
	Uraian   string  `json:"uraian" binding:"max=255"`
	Kategori string  `json:"kategori" binding:"max=64"`
	Debet    float64 `json:"debet"`
	Kredit   float64 `json:"kredit"`
}

func (r *generalEntryReq) validate() error {
	if err := util.ValidateDate(r.Tanggal); err != nil {
		return err
	}
	if err := util.ValidateAmount(r.Penerimaan); err != nil {
		return err
	}
	return util.ValidateAmount(r.Pengeluaran)
}

func (r *detailEntryReq) validate() error {
	if err := util.ValidateDate(r.Tanggal); err != nil {
		return err
	}
	if err := util.ValidateAmount(r.Debet); err != nil {
		return err
	}
	return util.ValidateAmount(r.Kredit)
}

// synchronizedGeneral loads both books and returns the merged, balanced BKU.
func (h *LedgerHandler) synchronizedGeneral(userID uint) ([]models.GeneralEntry, error) {
	general, err := h.Store.GeneralEntries(userID)
	if err != nil {
		return nil, err
	}
	detail, err := h.Store.DetailEntries(userID)
	if err != nil {
		return nil, err
	}
	return ledger.Synchronize(detail, general), nil
}

func generalTotals(items []models.GeneralEntry) (penerimaan, pengeluaran, saldoAkhir float64) {
	for i := range items {
		penerimaan += items[i].Penerimaan
		pengeluaran += items[i].Pengeluaran
	}
	if len(items) > 0 {
		// items are presentation-ordered, newest first
		saldoAkhir = items[0].Saldo
	}
	return
}

func detailTotals(items []models.DetailEntry) (debet, kredit, saldoAkhir float64) {
	for i := range items {
		debet += items[i].Debet
		kredit += items[i].Kredit
	}
	if len(items) > 0 {
		saldoAkhir = items[0].Saldo
	}
	return
}

// ---------- BKU ----------

func (h *LedgerHandler) ListGeneral(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.synchronizedGeneral(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas umum")
		return
	}

	penerimaan, pengeluaran, saldoAkhir := generalTotals(items)
	util.Success(c, util.Response{
		"items":            items,
		"totalPenerimaan":  penerimaan,
		"totalPengeluaran": pengeluaran,
		"saldoAkhir":       saldoAkhir,
	})
}

func (h *LedgerHandler) CreateGeneral(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req generalEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	entry := models.GeneralEntry{
		UserID:      user.ID,
		Tanggal:     req.Tanggal,
		Kode:        strings.TrimSpace(req.Kode),
		Uraian:      strings.TrimSpace(req.Uraian),
		Kategori:    strings.TrimSpace(req.Kategori),
		Penerimaan:  req.Penerimaan,
		Pengeluaran: req.Pengeluaran,
	}
	if err := h.Store.CreateGeneralEntry(&entry); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan transaksi")
		return
	}

	items, err := h.synchronizedGeneral(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas umum")
		return
	}
	util.Success(c, util.Response{
		"entry": entry,
		"items": items,
	})
}

func (h *LedgerHandler) UpdateGeneral(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if strings.HasPrefix(id, "SYNC-") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Baris sinkronisasi tidak dapat diubah")
		return
	}

	var req generalEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	entry := models.GeneralEntry{
		ID:          id,
		UserID:      user.ID,
		Tanggal:     req.Tanggal,
		Kode:        strings.TrimSpace(req.Kode),
		Uraian:      strings.TrimSpace(req.Uraian),
		Kategori:    strings.TrimSpace(req.Kategori),
		Penerimaan:  req.Penerimaan,
		Pengeluaran: req.Pengeluaran,
	}
	if err := h.Store.UpdateGeneralEntry(&entry); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transaksi tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan transaksi")
		}
		return
	}

	items, err := h.synchronizedGeneral(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas umum")
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *LedgerHandler) DeleteGeneral(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if strings.HasPrefix(id, "SYNC-") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Baris sinkronisasi tidak dapat dihapus")
		return
	}

	if err := h.Store.DeleteGeneralEntry(user.ID, id); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus transaksi")
		return
	}
	util.Success(c, util.Response{"message": "Transaksi dihapus"})
}

// ---------- BKP ----------

func (h *LedgerHandler) ListDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	raw, err := h.Store.DetailEntries(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas pembantu")
		return
	}

	items := ledger.Detail(raw)
	debet, kredit, saldoAkhir := detailTotals(items)
	util.Success(c, util.Response{
		"items":       items,
		"totalDebet":  debet,
		"totalKredit": kredit,
		"saldoAkhir":  saldoAkhir,
	})
}

func (h *LedgerHandler) CreateDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req detailEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	bukti := strings.TrimSpace(req.Bukti)
	if bukti == "" {
		n, err := h.Store.CountDetailOnDate(user.ID, req.Tanggal)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menentukan nomor bukti")
			return
		}
		bukti = fmt.Sprintf("%03d", n+1)
	}

	entry := models.DetailEntry{
		UserID:   user.ID,
		Tanggal:  req.Tanggal,
		Kode:     strings.TrimSpace(req.Kode),
		Bukti:    bukti,
		Uraian:   strings.TrimSpace(req.Uraian),
		Kategori: strings.TrimSpace(req.Kategori),
		Debet:    req.Debet,
		Kredit:   req.Kredit,
	}
	if err := h.Store.CreateDetailEntry(&entry); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan transaksi")
		return
	}
	util.Success(c, util.Response{"entry": entry})
}

func (h *LedgerHandler) UpdateDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var req detailEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	entry := models.DetailEntry{
		ID:       id,
		UserID:   user.ID,
		Tanggal:  req.Tanggal,
		Kode:     strings.TrimSpace(req.Kode),
		Bukti:    strings.TrimSpace(req.Bukti),
		Uraian:   strings.TrimSpace(req.Uraian),
		Kategori: strings.TrimSpace(req.Kategori),
		Debet:    req.Debet,
		Kredit:   req.Kredit,
	}
	if err := h.Store.UpdateDetailEntry(&entry); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transaksi tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan transaksi")
		}
		return
	}
	util.Success(c, util.Response{"message": "Transaksi diperbarui"})
}

func (h *LedgerHandler) DeleteDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteDetailEntry(user.ID, c.Param("id")); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus transaksi")
		return
	}
	util.Success(c, util.Response{"message": "Transaksi dihapus"})
}

// ---------- categories ----------

// ListCategories returns the default set merged with every category that
// appears in either cash book.
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	general, err := h.Store.GeneralEntries(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat kategori")
		return
	}
	detail, err := h.Store.DetailEntries(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat kategori")
		return
	}

	seen := make(map[string]bool, len(defaultCategories))
	for _, cat := range defaultCategories {
		seen[cat] = true
	}
	for i := range general {
		if k := strings.TrimSpace(general[i].Kategori); k != "" {
			seen[k] = true
		}
	}
	for i := range detail {
		if k := strings.TrimSpace(detail[i].Kategori); k != "" {
			seen[k] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	util.Success(c, util.Response{"categories": categories})
}
