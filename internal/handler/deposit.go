package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bacolgede83-big/Gede23/internal/loan"
	"github.com/bacolgede83-big/Gede23/internal/models"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Detail-ledger categories of the two rows a deposit generates.
const (
	categoryInterest  = "Bunga Uang"
	categoryPrincipal = "Pokok Pinjaman"
)

// DepositHandler serves repayments (setoran). Every deposit write keeps the
// detail ledger in step: two generated rows (interest and principal) tagged
// with the deposit's ID.
type DepositHandler struct {
	Store *store.Store
}

func NewDepositHandler(s *store.Store) *DepositHandler {
	return &DepositHandler{Store: s}
}

type depositReq struct {
	Tanggal       string  `json:"tanggal" binding:"required"`
	KodeRekening  string  `json:"kodeRekening" binding:"max=64"`
	PeminjamID    string  `json:"peminjamId" binding:"required"`
	JumlahSetoran float64 `json:"jumlahSetoran" binding:"required"`
	Uraian        string  `json:"uraian" binding:"max=255"`
}

func (r *depositReq) validate() error {
	if err := util.ValidateDate(r.Tanggal); err != nil {
		return err
	}
	return util.ValidatePositiveAmount(r.JumlahSetoran)
}

func (h *DepositHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	deposits, err := h.Store.Deposits(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat setoran")
		return
	}

	var totalSetoran, totalBunga, totalPokok float64
	for i := range deposits {
		totalSetoran += deposits[i].JumlahSetoran
		totalBunga += deposits[i].Bunga
		totalPokok += deposits[i].Pokok
	}
	util.Success(c, util.Response{
		"items":        deposits,
		"totalSetoran": totalSetoran,
		"totalBunga":   totalBunga,
		"totalPokok":   totalPokok,
	})
}

// buildDeposit resolves the loan and splits the amount into interest and
// principal over the months the description covers.
func (h *DepositHandler) buildDeposit(userID uint, req *depositReq) (*models.Deposit, error) {
	l, err := h.Store.Loan(userID, req.PeminjamID)
	if err != nil {
		return nil, err
	}

	months := loan.CoveredMonths(req.Uraian, req.Tanggal)
	bunga, pokok := loan.Components(*l, req.JumlahSetoran, len(months))

	kode := strings.TrimSpace(req.KodeRekening)
	if kode == "" {
		kode = l.KodeRekening
	}

	return &models.Deposit{
		ID:             uuid.NewString(),
		UserID:         userID,
		Tanggal:        req.Tanggal,
		KodeRekening:   kode,
		PeminjamID:     l.ID,
		NamaPeminjam:   l.Nama,
		JumlahPinjaman: l.JumlahPinjaman,
		Bunga:          bunga,
		JumlahSetoran:  req.JumlahSetoran,
		Pokok:          pokok,
		Uraian:         strings.TrimSpace(req.Uraian),
	}, nil
}

// writeGeneratedRows creates the interest and principal detail rows for a
// deposit, numbering their vouchers after the date's existing rows.
func (h *DepositHandler) writeGeneratedRows(d *models.Deposit) error {
	n, err := h.Store.CountDetailOnDate(d.UserID, d.Tanggal)
	if err != nil {
		return err
	}

	months := loan.CoveredMonths(d.Uraian, d.Tanggal)
	span := loan.DescribeMonths(months)

	rows := []models.DetailEntry{
		{
			ID:       uuid.NewString(),
			UserID:   d.UserID,
			Tanggal:  d.Tanggal,
			Kode:     d.KodeRekening,
			Bukti:    fmt.Sprintf("%03d", n+1),
			Uraian:   "Bunga pinjaman " + d.NamaPeminjam + " (" + span + ")",
			Kategori: categoryInterest,
			Debet:    d.Bunga,
			SourceID: d.ID,
		},
		{
			ID:       uuid.NewString(),
			UserID:   d.UserID,
			Tanggal:  d.Tanggal,
			Kode:     d.KodeRekening,
			Bukti:    fmt.Sprintf("%03d", n+2),
			Uraian:   "Pokok pinjaman " + d.NamaPeminjam + " (" + span + ")",
			Kategori: categoryPrincipal,
			Debet:    d.Pokok,
			SourceID: d.ID,
		},
	}
	for i := range rows {
		if err := h.Store.CreateDetailEntry(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (h *DepositHandler) dropGeneratedRows(userID uint, depositID string) error {
	rows, err := h.Store.DetailEntriesBySource(userID, depositID)
	if err != nil {
		return err
	}
	for i := range rows {
		if err := h.Store.DeleteDetailEntry(userID, rows[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (h *DepositHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req depositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	deposit, err := h.buildDeposit(user.ID, &req)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
		return
	}

	if err := h.Store.CreateDeposit(deposit); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan setoran")
		return
	}
	if err := h.writeGeneratedRows(deposit); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menulis buku kas pembantu")
		return
	}

	util.Success(c, util.Response{"setoran": deposit})
}

func (h *DepositHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req depositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	rebuilt, err := h.buildDeposit(user.ID, &req)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
		return
	}
	rebuilt.ID = id

	if err := h.Store.UpdateDeposit(rebuilt); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Setoran tidak ditemukan")
		return
	}

	// regenerate the two detail rows to match the new split
	if err := h.dropGeneratedRows(user.ID, id); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memperbarui buku kas pembantu")
		return
	}
	if err := h.writeGeneratedRows(rebuilt); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menulis buku kas pembantu")
		return
	}

	util.Success(c, util.Response{"setoran": rebuilt})
}

func (h *DepositHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := h.dropGeneratedRows(user.ID, id); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus buku kas pembantu")
		return
	}
	if err := h.Store.DeleteDeposit(user.ID, id); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus setoran")
		return
	}
	util.Success(c, util.Response{"message": "Setoran dihapus"})
}
