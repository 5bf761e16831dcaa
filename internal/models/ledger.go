package models

import "time"

// SourceBkpSync tags general-ledger rows synthesized from detail-ledger
// aggregates. Synthesized rows are never persisted and never hand-edited;
// they are rebuilt wholesale on every read.
const SourceBkpSync = "BKP_SYNC"

// GeneralEntry is one row of the Buku Kas Umum (general cash book).
// Tanggal is a calendar day stored as YYYY-MM-DD; lexicographic order equals
// chronological order. Saldo is derived by a full balance pass and never
// persisted.
type GeneralEntry struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	Tanggal     string    `gorm:"size:10;index;not null" json:"tanggal"`
	Kode        string    `gorm:"size:64" json:"kode"`
	Uraian      string    `gorm:"size:255" json:"uraian"`
	Kategori    string    `gorm:"size:64;index" json:"kategori"`
	Penerimaan  float64   `gorm:"not null" json:"penerimaan"`
	Pengeluaran float64   `gorm:"not null" json:"pengeluaran"`
	Saldo       float64   `gorm:"-" json:"saldo"`
	Source      string    `gorm:"-" json:"source,omitempty"` // "" or SourceBkpSync
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// DetailEntry is one row of the Buku Kas Pembantu (auxiliary cash book).
// SourceID back-references the deposit that generated the row; hand-entered
// rows leave it empty.
type DetailEntry struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Tanggal   string    `gorm:"size:10;index;not null" json:"tanggal"`
	Kode      string    `gorm:"size:64" json:"kode"`
	Bukti     string    `gorm:"size:16" json:"bukti"`
	Uraian    string    `gorm:"size:255" json:"uraian"`
	Kategori  string    `gorm:"size:64;index" json:"kategori"`
	Debet     float64   `gorm:"not null" json:"debet"`
	Kredit    float64   `gorm:"not null" json:"kredit"`
	Saldo     float64   `gorm:"-" json:"saldo"`
	SourceID  string    `gorm:"size:64;index" json:"sourceId,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
