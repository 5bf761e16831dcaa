// Package store is the persistence collaborator: owner-scoped CRUD over the
// record collections in sqlite. It performs no computation and no
// authorization beyond the owner scope; errors from gorm propagate wrapped,
// never swallowed.
package store

import (
	"fmt"

	"github.com/bacolgede83-big/Gede23/internal/loan"
	"github.com/bacolgede83-big/Gede23/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ---------- general ledger (BKU) ----------

func (s *Store) GeneralEntries(userID uint) ([]models.GeneralEntry, error) {
	var out []models.GeneralEntry
	if err := s.db.Where("user_id = ?", userID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch bku: %w", err)
	}
	return out, nil
}

func (s *Store) CreateGeneralEntry(e *models.GeneralEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("create bku: %w", err)
	}
	return nil
}

func (s *Store) UpdateGeneralEntry(e *models.GeneralEntry) error {
	res := s.db.Model(&models.GeneralEntry{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Select("Tanggal", "Kode", "Uraian", "Kategori", "Penerimaan", "Pengeluaran").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("update bku: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteGeneralEntry(userID uint, id string) error {
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.GeneralEntry{}).Error; err != nil {
		return fmt.Errorf("delete bku: %w", err)
	}
	return nil
}

// ---------- detail ledger (BKP) ----------

func (s *Store) DetailEntries(userID uint) ([]models.DetailEntry, error) {
	var out []models.DetailEntry
	if err := s.db.Where("user_id = ?", userID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch bkp: %w", err)
	}
	return out, nil
}

func (s *Store) CreateDetailEntry(e *models.DetailEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("create bkp: %w", err)
	}
	return nil
}

func (s *Store) UpdateDetailEntry(e *models.DetailEntry) error {
	res := s.db.Model(&models.DetailEntry{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Select("Tanggal", "Kode", "Bukti", "Uraian", "Kategori", "Debet", "Kredit").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("update bkp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteDetailEntry(userID uint, id string) error {
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.DetailEntry{}).Error; err != nil {
		return fmt.Errorf("delete bkp: %w", err)
	}
	return nil
}

// DetailEntriesBySource returns the detail rows a deposit generated.
func (s *Store) DetailEntriesBySource(userID uint, sourceID string) ([]models.DetailEntry, error) {
	var out []models.DetailEntry
	if err := s.db.Where("user_id = ? AND source_id = ?", userID, sourceID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch bkp by source: %w", err)
	}
	return out, nil
}

// CountDetailOnDate is used for voucher (bukti) sequencing: generated rows
// get the next free sequence numbers among the date's existing rows.
func (s *Store) CountDetailOnDate(userID uint, tanggal string) (int64, error) {
	var n int64
	if err := s.db.Model(&models.DetailEntry{}).
		Where("user_id = ? AND tanggal = ?", userID, tanggal).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bkp: %w", err)
	}
	return n, nil
}

// ---------- loans (peminjam) ----------

func (s *Store) Loans(userID uint) ([]models.Loan, error) {
	var out []models.Loan
	if err := s.db.Where("user_id = ?", userID).
		Order("tanggal DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch peminjam: %w", err)
	}
	return out, nil
}

func (s *Store) Loan(userID uint, id string) (*models.Loan, error) {
	var l models.Loan
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&l).Error; err != nil {
		return nil, fmt.Errorf("fetch peminjam %s: %w", id, err)
	}
	return &l, nil
}

func (s *Store) CreateLoan(l *models.Loan) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.db.Create(l).Error; err != nil {
		return fmt.Errorf("create peminjam: %w", err)
	}
	return nil
}

func (s *Store) UpdateLoan(l *models.Loan) error {
	res := s.db.Model(&models.Loan{}).
		Where("id = ? AND user_id = ?", l.ID, l.UserID).
		Select("Tanggal", "KodeRekening", "Nama", "JumlahPinjaman", "Bunga", "Status", "Uraian").
		Updates(l)
	if res.Error != nil {
		return fmt.Errorf("update peminjam: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---------- deposits (setoran) ----------

func (s *Store) Deposits(userID uint) ([]models.Deposit, error) {
	var out []models.Deposit
	if err := s.db.Where("user_id = ?", userID).
		Order("tanggal DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch setoran: %w", err)
	}
	return out, nil
}

func (s *Store) CreateDeposit(d *models.Deposit) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := s.db.Create(d).Error; err != nil {
		return fmt.Errorf("create setoran: %w", err)
	}
	return nil
}

func (s *Store) UpdateDeposit(d *models.Deposit) error {
	res := s.db.Model(&models.Deposit{}).
		Where("id = ? AND user_id = ?", d.ID, d.UserID).
		Select("Tanggal", "KodeRekening", "PeminjamID", "NamaPeminjam",
			"JumlahPinjaman", "Bunga", "JumlahSetoran", "Pokok", "Uraian").
		Updates(d)
	if res.Error != nil {
		return fmt.Errorf("update setoran: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteDeposit(userID uint, id string) error {
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Deposit{}).Error; err != nil {
		return fmt.Errorf("delete setoran: %w", err)
	}
	return nil
}

// ---------- manual payment markers ----------

func (s *Store) ManualPayments(userID uint) ([]models.ManualPayment, error) {
	var out []models.ManualPayment
	if err := s.db.Where("user_id = ?", userID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch manual payments: %w", err)
	}
	return out, nil
}

func (s *Store) FindManualPayment(userID uint, paymentID string) (*models.ManualPayment, error) {
	var mp models.ManualPayment
	err := s.db.Where("user_id = ? AND payment_id = ?", userID, paymentID).First(&mp).Error
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

func (s *Store) CreateManualPayment(mp *models.ManualPayment) error {
	if mp.ID == "" {
		mp.ID = uuid.NewString()
	}
	if err := s.db.Create(mp).Error; err != nil {
		return fmt.Errorf("create manual payment: %w", err)
	}
	return nil
}

func (s *Store) DeleteManualPayment(userID uint, id string) error {
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ManualPayment{}).Error; err != nil {
		return fmt.Errorf("delete manual payment: %w", err)
	}
	return nil
}

// ---------- reconciliation records ----------

func (s *Store) Reconciliations(userID uint) ([]models.ReconciliationRecord, error) {
	var out []models.ReconciliationRecord
	if err := s.db.Where("user_id = ?", userID).
		Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch reconciliation: %w", err)
	}
	return out, nil
}

// SaveReconciliation upserts the one record a period may have.
func (s *Store) SaveReconciliation(rec *models.ReconciliationRecord) error {
	var existing models.ReconciliationRecord
	err := s.db.Where("id = ? AND user_id = ?", rec.ID, rec.UserID).First(&existing).Error
	switch {
	case err == nil:
		res := s.db.Model(&models.ReconciliationRecord{}).
			Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
			Select("Year", "Month", "SaldoAkhirBuku", "SaldoAkhirBank", "Selisih", "Status").
			Updates(rec)
		if res.Error != nil {
			return fmt.Errorf("update reconciliation: %w", res.Error)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		if err := s.db.Create(rec).Error; err != nil {
			return fmt.Errorf("create reconciliation: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("fetch reconciliation %s: %w", rec.ID, err)
	}
}

// ---------- cascade and wipe ----------

// DeleteInCollection dispatches one cascade-plan step.
func (s *Store) DeleteInCollection(collection string, userID uint, id string) error {
	switch collection {
	case loan.CollectionSetoran:
		return s.DeleteDeposit(userID, id)
	case loan.CollectionBkp:
		return s.DeleteDetailEntry(userID, id)
	case loan.CollectionPeminjam:
		if err := s.db.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Loan{}).Error; err != nil {
			return fmt.Errorf("delete peminjam: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
}

// Wipe removes every record collection for one owner (hard reset).
func (s *Store) Wipe(userID uint) error {
	for _, m := range []interface{}{
		&models.GeneralEntry{},
		&models.DetailEntry{},
		&models.Deposit{},
		&models.ManualPayment{},
		&models.Loan{},
		&models.ReconciliationRecord{},
	} {
		if err := s.db.Where("user_id = ?", userID).Delete(m).Error; err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
	}
	return nil
}
