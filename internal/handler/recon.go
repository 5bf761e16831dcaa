package handler

import (
	"net/http"
	"strconv"

	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/loan"
	"github.com/bacolgede83-big/Gede23/internal/recon"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
)

// ReconHandler closes periods: it compares the two cash books against each
// other and against counted cash, and keeps the saved history (LRA).
type ReconHandler struct {
	Store *store.Store
}

func NewReconHandler(s *store.Store) *ReconHandler {
	return &ReconHandler{Store: s}
}

type reconParams struct {
	Year       int
	Month      int
	CashOnHand float64
	CashInBank float64
}

func parseReconQuery(c *gin.Context) (reconParams, bool) {
	var p reconParams
	var err error

	p.Year, err = strconv.Atoi(c.Query("tahun"))
	if err != nil || p.Year < 2000 || p.Year > 2200 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Tahun tidak valid")
		return p, false
	}
	p.Month, err = strconv.Atoi(c.Query("bulan"))
	if err != nil || p.Month < 1 || p.Month > 12 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Bulan harus 1-12")
		return p, false
	}
	if s := c.Query("kas"); s != "" {
		if p.CashOnHand, err = strconv.ParseFloat(s, 64); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Nilai kas tidak valid")
			return p, false
		}
	}
	if s := c.Query("bank"); s != "" {
		if p.CashInBank, err = strconv.ParseFloat(s, 64); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Nilai bank tidak valid")
			return p, false
		}
	}
	return p, true
}

// reconcile loads both balanced books plus the outstanding-loan total and
// runs the period computation.
func (h *ReconHandler) reconcile(userID uint, p reconParams) (recon.Result, error) {
	general, err := h.Store.GeneralEntries(userID)
	if err != nil {
		return recon.Result{}, err
	}
	detail, err := h.Store.DetailEntries(userID)
	if err != nil {
		return recon.Result{}, err
	}
	loans, err := h.Store.Loans(userID)
	if err != nil {
		return recon.Result{}, err
	}

	synchronized := ledger.Synchronize(detail, general)
	balanced := ledger.Detail(detail)
	total := loan.OutstandingTotal(loans)
	return recon.Reconcile(synchronized, balanced, p.Year, p.Month, p.CashOnHand, p.CashInBank, total), nil
}

// Compute runs the reconciliation without persisting anything.
func (h *ReconHandler) Compute(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p, ok := parseReconQuery(c)
	if !ok {
		return
	}

	result, err := h.reconcile(user.ID, p)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghitung rekonsiliasi")
		return
	}
	util.Success(c, util.Response{"rekonsiliasi": result})
}

type saveReconReq struct {
	Tahun int     `json:"tahun" binding:"required"`
	Bulan int     `json:"bulan" binding:"required"`
	Kas   float64 `json:"kas"`
	Bank  float64 `json:"bank"`
}

// Save recomputes the period and upserts its record; a period saved twice
// keeps only the latest outcome.
func (h *ReconHandler) Save(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req saveReconReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	if req.Tahun < 2000 || req.Tahun > 2200 || req.Bulan < 1 || req.Bulan > 12 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Periode tidak valid")
		return
	}

	p := reconParams{Year: req.Tahun, Month: req.Bulan, CashOnHand: req.Kas, CashInBank: req.Bank}
	result, err := h.reconcile(user.ID, p)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghitung rekonsiliasi")
		return
	}

	record := result.Record(user.ID)
	if err := h.Store.SaveReconciliation(&record); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan rekonsiliasi")
		return
	}

	util.Success(c, util.Response{
		"rekonsiliasi": result,
		"record":       record,
	})
}

// History lists the saved period records, newest first.
func (h *ReconHandler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.Store.Reconciliations(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat riwayat rekonsiliasi")
		return
	}
	util.Success(c, util.Response{"items": records})
}
