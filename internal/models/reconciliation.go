package models

import "time"

// Reconciliation outcome for a closed period.
const (
	ReconStatusMatched  = "Terekonsiliasi"
	ReconStatusVariance = "Selisih"
)

// ReconciliationRecord stores the period-end comparison between the two cash
// books. ID is the period key YYYY-MM; saving a period again overwrites the
// existing record in place.
type ReconciliationRecord struct {
	ID             string    `gorm:"primaryKey;size:8" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"-"`
	Year           string    `gorm:"size:4;not null" json:"year"`
	Month          string    `gorm:"size:2;not null" json:"month"`
	SaldoAkhirBuku float64   `gorm:"not null" json:"saldoAkhirBuku"`
	SaldoAkhirBank float64   `gorm:"not null" json:"saldoAkhirBank"`
	Selisih        float64   `gorm:"not null" json:"selisih"`
	Status         string    `gorm:"size:16;not null" json:"status"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
