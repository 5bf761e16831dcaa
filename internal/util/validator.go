package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmount rejects negative or absurdly large inputs. Zero is legal:
// a ledger row usually fills only one of its two amount columns.
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("jumlah tidak boleh negatif: %f", amount)
	}
	if amount >= 100000000000 { // 100 miliar
		return fmt.Errorf("jumlah terlalu besar: %f", amount)
	}
	return nil
}

// ValidatePositiveAmount is the stricter form for loan principals and
// deposit amounts, which must be greater than zero.
func ValidatePositiveAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("jumlah harus lebih dari nol: %f", amount)
	}
	return ValidateAmount(amount)
}

// ValidateDate requires the canonical YYYY-MM-DD form.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("tanggal kosong")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("format tanggal tidak valid: %w", err)
	}
	return nil
}

// ValidateName requires a non-blank name of sane length.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("nama kosong")
	}
	if len(name) > 100 {
		return fmt.Errorf("nama terlalu panjang, maksimal 100 karakter")
	}
	return nil
}

// ValidateEmail does a cheap structural check, full RFC parsing is overkill
// for a login form.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email kosong")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("format email tidak valid")
	}
	return nil
}

// ValidatePassword enforces the minimum length only.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("kata sandi minimal 6 karakter")
	}
	if len(password) > 72 { // bcrypt input limit
		return fmt.Errorf("kata sandi terlalu panjang")
	}
	return nil
}
