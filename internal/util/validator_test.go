package util

import "testing"

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(0); err != nil {
		t.Errorf("zero should be allowed: %v", err)
	}
	if err := ValidateAmount(250000); err != nil {
		t.Errorf("normal amount rejected: %v", err)
	}
	if err := ValidateAmount(-1); err == nil {
		t.Error("negative amount accepted")
	}
	if err := ValidateAmount(100000000000); err == nil {
		t.Error("oversized amount accepted")
	}
}

func TestValidatePositiveAmount(t *testing.T) {
	if err := ValidatePositiveAmount(0); err == nil {
		t.Error("zero accepted for positive amount")
	}
	if err := ValidatePositiveAmount(1000000); err != nil {
		t.Errorf("valid principal rejected: %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2024-01-01", "2023-12-31", "2024-02-29"}
	for _, d := range valid {
		if err := ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%q): %v", d, err)
		}
	}
	invalid := []string{"", "01-01-2024", "2024/01/01", "2023-02-29", "kemarin"}
	for _, d := range invalid {
		if err := ValidateDate(d); err == nil {
			t.Errorf("ValidateDate(%q) accepted", d)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("bendahara@koperasi.id"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	for _, e := range []string{"", "@x.id", "a@", "a@nodot", "plain"} {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) accepted", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("rahasia1"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("abc"); err == nil {
		t.Error("short password accepted")
	}
}
