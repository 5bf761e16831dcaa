package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/loan"
	"github.com/bacolgede83-big/Gede23/internal/models"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PaymentHandler serves the 12-month payment grid, the manual payment
// marker toggle, and the grid import.
type PaymentHandler struct {
	Store *store.Store
}

func NewPaymentHandler(s *store.Store) *PaymentHandler {
	return &PaymentHandler{Store: s}
}

func paymentID(peminjamID string, year, month int) string {
	return fmt.Sprintf("%s-%d-%d", peminjamID, year, month)
}

// Grid returns the month-by-month status of one loan for one year.
func (h *PaymentHandler) Grid(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	peminjamID := c.Query("peminjam")
	if peminjamID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter peminjam wajib diisi")
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

	l, err := h.Store.Loan(user.ID, peminjamID)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
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

	grid, summary := loan.Breakdown(*l, deposits, manual, year, now)
	util.Success(c, util.Response{
		"peminjam":  l,
		"tahun":     year,
		"bulan":     grid,
		"ringkasan": summary,
	})
}

// ---------- manual marker toggle ----------

type toggleReq struct {
	PeminjamID string `json:"peminjamId" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Month      *int   `json:"month" binding:"required"` // 0-11, pointer so January binds
}

// Toggle flips the manual marker of one (loan, year, month): present gets
// removed, absent gets created. Idempotent pairs cancel out.
func (h *PaymentHandler) Toggle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Month == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parameter tidak valid")
		return
	}
	month := *req.Month
	if month < 0 || month > 11 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Bulan harus 0-11")
		return
	}

	if _, err := h.Store.Loan(user.ID, req.PeminjamID); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Peminjam tidak ditemukan")
		return
	}

	pid := paymentID(req.PeminjamID, req.Year, month)
	existing, err := h.Store.FindManualPayment(user.ID, pid)
	switch {
	case err == nil:
		if err := h.Store.DeleteManualPayment(user.ID, existing.ID); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menghapus tanda pembayaran")
			return
		}
		util.Success(c, util.Response{"paymentId": pid, "marked": false})
	case err == gorm.ErrRecordNotFound:
		mp := models.ManualPayment{
			UserID:     user.ID,
			PaymentID:  pid,
			PeminjamID: req.PeminjamID,
			Year:       req.Year,
			Month:      month,
		}
		if err := h.Store.CreateManualPayment(&mp); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menyimpan tanda pembayaran")
			return
		}
		util.Success(c, util.Response{"paymentId": pid, "marked": true})
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat tanda pembayaran")
	}
}

// ---------- grid import ----------

// Import reads an xlsx of manual markers. Expected columns: Nama, Tahun,
// Bulan, Status. Borrowers are matched by name; "Di bayar" sets the marker,
// anything else clears it. The whole operation is idempotent.
func (h *PaymentHandler) Import(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Berkas tidak ditemukan")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Berkas tidak dapat dibuka")
		return
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Berkas bukan xlsx yang valid")
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Lembar kosong atau tidak terbaca")
		return
	}

	loans, err := h.Store.Loans(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data peminjam")
		return
	}
	byName := make(map[string]string, len(loans))
	for _, l := range loans {
		byName[strings.ToLower(strings.TrimSpace(l.Nama))] = l.ID
	}

	cols := headerIndex(rows[0])
	for _, k := range []string{"nama", "tahun", "bulan", "status"} {
		if _, found := cols[k]; !found {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Kolom wajib: Nama, Tahun, Bulan, Status")
			return
		}
	}

	var marked, cleared, skipped int
	var warnings []string

	for i, row := range rows[1:] {
		nama := strings.TrimSpace(cellAt(row, cols["nama"]))
		if nama == "" {
			skipped++
			continue
		}
		loanID, found := byName[strings.ToLower(nama)]
		if !found {
			warnings = append(warnings, fmt.Sprintf("Baris %d: peminjam %q tidak ditemukan", i+2, nama))
			skipped++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(cellAt(row, cols["tahun"])))
		if err != nil {
			skipped++
			continue
		}
		month, found := dates.MonthIndex(cellAt(row, cols["bulan"]))
		if !found {
			skipped++
			continue
		}

		pid := paymentID(loanID, year, month)
		existing, err := h.Store.FindManualPayment(user.ID, pid)
		wantPaid := strings.EqualFold(strings.TrimSpace(cellAt(row, cols["status"])), loan.StatusPaid)

		switch {
		case err != nil && err != gorm.ErrRecordNotFound:
			warnings = append(warnings, fmt.Sprintf("Baris %d: gagal memeriksa pembayaran %s", i+2, nama))
			skipped++
		case wantPaid && err == gorm.ErrRecordNotFound:
			mp := models.ManualPayment{
				UserID:     user.ID,
				PaymentID:  pid,
				PeminjamID: loanID,
				Year:       year,
				Month:      month,
			}
			if err := h.Store.CreateManualPayment(&mp); err == nil {
				marked++
			} else {
				warnings = append(warnings, fmt.Sprintf("Baris %d: gagal menandai pembayaran %s", i+2, nama))
				skipped++
			}
		case !wantPaid && err == nil:
			if err := h.Store.DeleteManualPayment(user.ID, existing.ID); err == nil {
				cleared++
			} else {
				warnings = append(warnings, fmt.Sprintf("Baris %d: gagal menghapus penanda pembayaran %s", i+2, nama))
				skipped++
			}
		default:
			// already in the requested state
		}
	}

	util.Success(c, util.Response{
		"marked":   marked,
		"cleared":  cleared,
		"skipped":  skipped,
		"warnings": warnings,
	})
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
