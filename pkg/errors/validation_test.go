package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"isbn13", "9780316769488", false},
		{"isbn10", "0316769487", false},
		{"isbn10 with X", "080442957X", false},
		{"hyphenated", "978-0-316-76948-8", false},
		{"surrounding whitespace", "  9780316769488 ", false},
		{"not checked for checksum", "1234567890", false},
		{"free text", "not an isbn", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("9", 65), true},
		{"null byte", "978\x00316", true},
		{"control char", "978\x01316", true},
		{"newline", "978\n316", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIdentifier) {
				t.Errorf("ValidateIdentifier(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidIdentifier)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://www.googleapis.com/books/v1/volumes", false},
		{"http", "http://localhost:8080/volumes", false},

		{"empty", "", true},
		{"no scheme", "www.googleapis.com/books/v1/volumes", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
