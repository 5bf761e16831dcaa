package models

import "time"

// Loan lifecycle status. Status is never derived from the remaining debt;
// it changes only through an explicit edit.
const (
	LoanStatusActive  = "Belum Lunas"
	LoanStatusSettled = "Lunas"
)

// InterestRate is the fixed monthly interest rate applied to the loan
// principal at creation (and recomputed when the principal is edited).
const InterestRate = 0.02

// Loan (peminjam) is a disbursement to a borrower. Bunga is the interest due
// per calendar month, fixed as JumlahPinjaman * InterestRate.
type Loan struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"-"`
	Tanggal        string    `gorm:"size:10;index;not null" json:"tanggal"`
	KodeRekening   string    `gorm:"size:64" json:"kodeRekening"`
	Nama           string    `gorm:"size:128;not null" json:"nama"`
	JumlahPinjaman float64   `gorm:"not null" json:"jumlahPinjaman"`
	Bunga          float64   `gorm:"not null" json:"bunga"`
	Status         string    `gorm:"size:16;index;not null" json:"status"`
	Uraian         string    `gorm:"size:255" json:"uraian"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Deposit (setoran) is a borrower's repayment, split into an interest and a
// principal component. Pokok may be negative when the payment is smaller
// than the interest due; it is deliberately not clamped.
type Deposit struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"-"`
	Tanggal        string    `gorm:"size:10;index;not null" json:"tanggal"`
	KodeRekening   string    `gorm:"size:64" json:"kodeRekening"`
	PeminjamID     string    `gorm:"size:64;index;not null" json:"peminjamId"`
	NamaPeminjam   string    `gorm:"size:128" json:"namaPeminjam"`
	JumlahPinjaman float64   `gorm:"not null" json:"jumlahPinjaman"`
	Bunga          float64   `gorm:"not null" json:"bunga"`
	JumlahSetoran  float64   `gorm:"not null" json:"jumlahSetoran"`
	Pokok          float64   `gorm:"not null" json:"pokok"`
	Uraian         string    `gorm:"size:255" json:"uraian"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// ManualPayment marks a month as paid without a formal deposit. PaymentID is
// the composite key peminjamId-year-month; at most one marker exists per
// combination.
type ManualPayment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	PaymentID  string    `gorm:"size:96;uniqueIndex;not null" json:"paymentId"`
	PeminjamID string    `gorm:"size:64;index;not null" json:"peminjamId"`
	Year       int       `gorm:"not null" json:"year"`
	Month      int       `gorm:"not null" json:"month"` // 0-11
	CreatedAt  time.Time `json:"-"`
}
