package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bacolgede83-big/Gede23/internal/dates"
	"github.com/bacolgede83-big/Gede23/internal/ledger"
	"github.com/bacolgede83-big/Gede23/internal/models"
	"github.com/bacolgede83-big/Gede23/internal/store"
	"github.com/bacolgede83-big/Gede23/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Importable/exportable collections and their sheet layouts, matching the
// spreadsheets the bookkeeper already works with.
const (
	collectionBku      = "bku"
	collectionBkp      = "bkp"
	collectionPeminjam = "peminjam"
	collectionSetoran  = "setoran"
)

var sheetHeaders = map[string][]string{
	collectionBku:      {"Tanggal", "Kode Transaksi", "Uraian", "Kategori", "Penerimaan", "Pengeluaran", "Saldo"},
	collectionBkp:      {"Tanggal", "Kode Transaksi", "No Bukti", "Uraian", "Kategori", "Debet (Penerimaan)", "Kredit (Pengeluaran)", "Saldo"},
	collectionPeminjam: {"Tanggal", "Kode Rekening", "Nama Peminjam", "Jumlah Pinjaman", "Bunga", "Status", "Uraian"},
	collectionSetoran:  {"Tanggal", "Kode Rekening", "Nama Peminjam", "Jumlah Pinjaman", "Bunga", "Jumlah Setoran", "Pokok", "Uraian"},
}

var sheetTitles = map[string]string{
	collectionBku:      "Buku Kas Umum",
	collectionBkp:      "Buku Kas Pembantu",
	collectionPeminjam: "Data Peminjam",
	collectionSetoran:  "Data Setoran",
}

type ImportExportHandler struct {
	Store *store.Store
}

func NewImportExportHandler(s *store.Store) *ImportExportHandler {
	return &ImportExportHandler{Store: s}
}

// ---------- sheet building ----------

// bkuRows flattens the balanced general ledger into sheet rows. Rollup rows
// are derived state and stay out of the export; re-importing them would
// double-count once the rollup is regenerated.
func bkuRows(items []models.GeneralEntry) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for i := range items {
		e := &items[i]
		if e.Source == models.SourceBkpSync {
			continue
		}
		rows = append(rows, []interface{}{e.Tanggal, e.Kode, e.Uraian, e.Kategori, e.Penerimaan, e.Pengeluaran, e.Saldo})
	}
	return rows
}

// isSyncKode reports whether a transaction code marks a synthetic rollup row
// from a workbook written before those rows were excluded from the export.
func isSyncKode(kode string) bool {
	return strings.HasPrefix(kode, ledger.SyncKodeInPrefix) ||
		strings.HasPrefix(kode, ledger.SyncKodeOutPrefix)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *ImportExportHandler) collectionRows(userID uint, collection string) ([][]interface{}, error) {
	switch collection {
	case collectionBku:
		general, err := h.Store.GeneralEntries(userID)
		if err != nil {
			return nil, err
		}
		detail, err := h.Store.DetailEntries(userID)
		if err != nil {
			return nil, err
		}
		return bkuRows(ledger.Synchronize(detail, general)), nil
	case collectionBkp:
		raw, err := h.Store.DetailEntries(userID)
		if err != nil {
			return nil, err
		}
		items := ledger.Detail(raw)
		rows := make([][]interface{}, 0, len(items))
		for i := range items {
			e := &items[i]
			rows = append(rows, []interface{}{e.Tanggal, e.Kode, e.Bukti, e.Uraian, e.Kategori, e.Debet, e.Kredit, e.Saldo})
		}
		return rows, nil
	case collectionPeminjam:
		loans, err := h.Store.Loans(userID)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(loans))
		for _, l := range loans {
			rows = append(rows, []interface{}{l.Tanggal, l.KodeRekening, l.Nama, l.JumlahPinjaman, l.Bunga, l.Status, l.Uraian})
		}
		return rows, nil
	case collectionSetoran:
		deposits, err := h.Store.Deposits(userID)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(deposits))
		for _, d := range deposits {
			rows = append(rows, []interface{}{d.Tanggal, d.KodeRekening, d.NamaPeminjam, d.JumlahPinjaman, d.Bunga, d.JumlahSetoran, d.Pokok, d.Uraian})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown collection %q", collection)
}

// ---------- export ----------

// Export writes one collection as an xlsx download.
func (h *ImportExportHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	collection := c.Param("collection")
	headers, known := sheetHeaders[collection]
	if !known {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Jenis data tidak dikenal")
		return
	}

	rows, err := h.collectionRows(user.ID, collection)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetTitles[collection]
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal membuat lembar kerja")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	if err := writeSheet(f, sheet, headers, rows); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menulis lembar kerja")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"",
		collection, time.Now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal mengekspor data")
	}
}

// Backup writes every collection into one multi-sheet workbook.
func (h *ImportExportHandler) Backup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, collection := range []string{collectionBku, collectionBkp, collectionPeminjam, collectionSetoran} {
		rows, err := h.collectionRows(user.ID, collection)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data")
			return
		}
		sheet := sheetTitles[collection]
		index, err := f.NewSheet(sheet)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal membuat lembar kerja")
			return
		}
		if first {
			f.SetActiveSheet(index)
			_ = f.DeleteSheet("Sheet1")
			first = false
		}
		if err := writeSheet(f, sheet, sheetHeaders[collection], rows); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menulis lembar kerja")
			return
		}
	}

	// reconciliation history rides along
	records, err := h.Store.Reconciliations(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat rekonsiliasi")
		return
	}
	if _, err := f.NewSheet("Rekonsiliasi"); err == nil {
		rows := make([][]interface{}, 0, len(records))
		for _, r := range records {
			rows = append(rows, []interface{}{r.Year, r.Month, r.SaldoAkhirBuku, r.SaldoAkhirBank, r.Selisih, r.Status})
		}
		headers := []string{"Tahun", "Bulan", "Saldo Akhir Buku", "Saldo Akhir Bank", "Selisih", "Status"}
		if err := writeSheet(f, "Rekonsiliasi", headers, rows); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal menulis lembar kerja")
			return
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"backup_kas_%s.xlsx\"",
		time.Now().Format("20060102_150405")))
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal mengekspor cadangan")
	}
}

// ---------- import ----------

// parseAmount coerces a cell into a number; non-numeric input becomes zero,
// the row is never dropped.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Import reads an uploaded xlsx into one collection. Dates normalize through
// every representation the spreadsheets use; deposits re-link to loans by
// borrower name, and rows whose borrower is missing import with an unknown
// reference plus a warning instead of being dropped.
func (h *ImportExportHandler) Import(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	collection := c.Param("collection")
	if _, known := sheetHeaders[collection]; !known {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Jenis data tidak dikenal")
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

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Lembar kosong atau tidak terbaca")
		return
	}

	now := time.Now()
	var imported, skipped int
	var warnings []string

	switch collection {
	case collectionBku:
		for _, row := range rows[1:] {
			if len(row) == 0 {
				skipped++
				continue
			}
			kode := strings.TrimSpace(cellAt(row, 1))
			if isSyncKode(kode) {
				skipped++
				continue
			}
			entry := models.GeneralEntry{
				UserID:      user.ID,
				Tanggal:     dates.Normalize(cellAt(row, 0), now),
				Kode:        kode,
				Uraian:      strings.TrimSpace(cellAt(row, 2)),
				Kategori:    strings.TrimSpace(cellAt(row, 3)),
				Penerimaan:  parseAmount(cellAt(row, 4)),
				Pengeluaran: parseAmount(cellAt(row, 5)),
			}
			if err := h.Store.CreateGeneralEntry(&entry); err == nil {
				imported++
			} else {
				skipped++
			}
		}
	case collectionBkp:
		for _, row := range rows[1:] {
			if len(row) == 0 {
				skipped++
				continue
			}
			entry := models.DetailEntry{
				UserID:   user.ID,
				Tanggal:  dates.Normalize(cellAt(row, 0), now),
				Kode:     strings.TrimSpace(cellAt(row, 1)),
				Bukti:    strings.TrimSpace(cellAt(row, 2)),
				Uraian:   strings.TrimSpace(cellAt(row, 3)),
				Kategori: strings.TrimSpace(cellAt(row, 4)),
				Debet:    parseAmount(cellAt(row, 5)),
				Kredit:   parseAmount(cellAt(row, 6)),
			}
			if err := h.Store.CreateDetailEntry(&entry); err == nil {
				imported++
			} else {
				skipped++
			}
		}
	case collectionPeminjam:
		for _, row := range rows[1:] {
			nama := strings.TrimSpace(cellAt(row, 2))
			if nama == "" {
				skipped++
				continue
			}
			principal := parseAmount(cellAt(row, 3))
			l := models.Loan{
				UserID:         user.ID,
				Tanggal:        dates.Normalize(cellAt(row, 0), now),
				KodeRekening:   strings.TrimSpace(cellAt(row, 1)),
				Nama:           nama,
				JumlahPinjaman: principal,
				Bunga:          principal * models.InterestRate,
				Status:         normalizeLoanStatus(strings.TrimSpace(cellAt(row, 5))),
				Uraian:         strings.TrimSpace(cellAt(row, 6)),
			}
			if err := h.Store.CreateLoan(&l); err == nil {
				imported++
			} else {
				skipped++
			}
		}
	case collectionSetoran:
		loans, err := h.Store.Loans(user.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal memuat data peminjam")
			return
		}
		byName := make(map[string]*models.Loan, len(loans))
		for i := range loans {
			byName[strings.ToLower(strings.TrimSpace(loans[i].Nama))] = &loans[i]
		}
		for i, row := range rows[1:] {
			nama := strings.TrimSpace(cellAt(row, 2))
			if nama == "" {
				skipped++
				continue
			}
			d := models.Deposit{
				UserID:         user.ID,
				Tanggal:        dates.Normalize(cellAt(row, 0), now),
				KodeRekening:   strings.TrimSpace(cellAt(row, 1)),
				NamaPeminjam:   nama,
				JumlahPinjaman: parseAmount(cellAt(row, 3)),
				Bunga:          parseAmount(cellAt(row, 4)),
				JumlahSetoran:  parseAmount(cellAt(row, 5)),
				Pokok:          parseAmount(cellAt(row, 6)),
				Uraian:         strings.TrimSpace(cellAt(row, 7)),
			}
			if l, found := byName[strings.ToLower(nama)]; found {
				d.PeminjamID = l.ID
			} else {
				d.PeminjamID = "unknown"
				warnings = append(warnings, fmt.Sprintf("Baris %d: peminjam %q tidak ditemukan", i+2, nama))
			}
			if err := h.Store.CreateDeposit(&d); err == nil {
				imported++
			} else {
				skipped++
			}
		}
	}

	util.Success(c, util.Response{
		"imported": imported,
		"skipped":  skipped,
		"warnings": warnings,
	})
}

// Reset wipes every record collection of the authenticated user.
func (h *ImportExportHandler) Reset(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Store.Wipe(user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Gagal mengosongkan data")
		return
	}
	util.Success(c, util.Response{"message": "Seluruh data berhasil dikosongkan"})
}
