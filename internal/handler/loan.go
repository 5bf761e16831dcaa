package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/loan"
	"github.com/bacolgede83-big/Gede23/internal/models"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoanHandler serves borrower (peminjam) records and the yearly recap.
type LoanHandler struct {
	Store *store.Store
}

func NewLoanHandler(s *store.Store) *LoanHandler {
	return &LoanHandler{Store: s}
}

type loanReq struct {
	Tanggal        string  `json:"tanggal" binding:"required"`
	KodeRekening   string  `json:"kodeRekening" binding:"max=64"`
	Nama           string  `json:"nama" binding:"required,max=128"`
	JumlahPinjaman float64 `json:"jumlahPinjaman" binding:"required"`
	Status         string  `json:"status"`
	Uraian         string  `json:"uraian" binding:"max=255"`
}

func (r *loanReq) validate() error {
	if err := util.ValidateDate(r.Tanggal); err != nil {
		return err
	}
	if err := util.ValidateName(r.Nama); err != nil {
		return err
	}
	return util.ValidatePositiveAmount(r.JumlahPinjaman)
}

func normalizeLoanStatus(s string) string {
	if s == models.LoanStatusSettled {
		return models.LoanStatusSettled
	}
	return models.LoanStatusActive
}

func (h *LoanHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	loans, err := h.Store.Loans(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data peminjam")
		return
	}
	util.Success(c, util.Response{
		"items":          loans,
		"totalPinjaman":  loan.OutstandingTotal(loans),
		"jumlahPeminjam": len(loans),
	})
}

func (h *LoanHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	l := models.Loan{
		UserID:         user.ID,
		Tanggal:        req.Tanggal,
		KodeRekening:   strings.TrimSpace(req.KodeRekening),
		Nama:           strings.TrimSpace(req.Nama),
		JumlahPinjaman: req.JumlahPinjaman,
		Bunga:          req.JumlahPinjaman * models.InterestRate,
		Status:         normalizeLoanStatus(req.Status),
		Uraian:         strings.TrimSpace(req.Uraian),
	}
	if err := h.Store.CreateLoan(&l); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan peminjam")
		return
	}
	util.Success(c, util.Response{"peminjam": l})
}

func (h *LoanHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	l := models.Loan{
		ID:             c.Param("id"),
		UserID:         user.ID,
		Tanggal:        req.Tanggal,
		KodeRekening:   strings.TrimSpace(req.KodeRekening),
		Nama:           strings.TrimSpace(req.Nama),
		JumlahPinjaman: req.JumlahPinjaman,
		// interest follows the principal, always
		Bunga:  req.JumlahPinjaman * models.InterestRate,
		Status: normalizeLoanStatus(req.Status),
		Uraian: strings.TrimSpace(req.Uraian),
	}
	if err := h.Store.UpdateLoan(&l); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan peminjam")
		}
		return
	}
	util.Success(c, util.Response{"peminjam": l})
}

// Delete removes a loan and everything hanging off it: its deposits, then
// the detail-ledger rows those deposits generated, then the loan itself.
// Steps run in order without rollback; a failure aborts and leaves earlier
// deletions in place, with the failed step logged for manual repair.
func (h *LoanHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	loanID := c.Param("id")

	if _, err := h.Store.Loan(user.ID, loanID); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
		return
	}

	deposits, err := h.Store.Deposits(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat setoran")
		return
	}
	detail, err := h.Store.DetailEntries(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat buku kas pembantu")
		return
	}

	steps := loan.DeletionPlan(loanID, deposits, detail)
	for _, step := range steps {
		log.Printf("cascade delete peminjam=%s step=%s id=%s", loanID, step.Collection, step.ID)
		if err := h.Store.DeleteInCollection(step.Collection, user.ID, step.ID); err != nil {
			log.Printf("cascade delete aborted peminjam=%s step=%s id=%s err=%v", loanID, step.Collection, step.ID, err)
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus peminjam, sebagian data mungkin sudah terhapus")
			return
		}
	}

	util.Success(c, util.Response{
		"message":      "Peminjam dihapus",
		"deletedSteps": len(steps),
	})
}

// Recap serves the per-loan yearly recap.
func (h *LoanHandler) Recap(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now()
	year := now.Year()
	if s := c.Query("tahun"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2200 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Tahun tidak valid")
			return
		}
		year = y
	}

	loans, err := h.Store.Loans(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data peminjam")
		return
	}
	deposits, err := h.Store.Deposits(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat setoran")
		return
	}
	manual, err := h.Store.ManualPayments(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat pembayaran manual")
		return
	}

	recaps, orphans := loan.RecapAll(loans, deposits, manual, year, now)

	warnings := make([]string, 0, len(orphans))
	for _, d := range orphans {
		warnings = append(warnings, "Setoran "+d.Tanggal+" atas nama "+d.NamaPeminjam+" tidak memiliki data peminjam")
	}

	util.Success(c, util.Response{
		"tahun":    year,
		"items":    recaps,
		"warnings": warnings,
	})
}
