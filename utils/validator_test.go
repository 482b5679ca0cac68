package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@company.co.th",
		"admin+test@portal.local.org",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
	}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Errorf("short password accepted: ok=%v msg=%q", ok, msg)
	}
	if ok, msg := ValidatePassword("longenough"); !ok || msg != "" {
		t.Errorf("valid password rejected: ok=%v msg=%q", ok, msg)
	}
}

func TestValidateExtension(t *testing.T) {
	valid := []string{"12", "1234", "123456"}
	invalid := []string{"", "1", "1234567", "12a4", "12 34"}

	for _, ext := range valid {
		if !ValidateExtension(ext) {
			t.Errorf("ValidateExtension(%q) = false, want true", ext)
		}
	}
	for _, ext := range invalid {
		if ValidateExtension(ext) {
			t.Errorf("ValidateExtension(%q) = true, want false", ext)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello  "); got != "hello" {
		t.Errorf("SanitizeInput trim = %q", got)
	}
	if got := SanitizeInput("a\x00b"); got != "ab" {
		t.Errorf("SanitizeInput null bytes = %q", got)
	}
}
