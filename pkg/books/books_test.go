package books

import (
	"encoding/json"
	"testing"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "9780316769488", "9780316769488"},
		{"surrounding whitespace", "  9780316769488\t\n", "9780316769488"},
		{"isbn10 check digit X", "080442957X", "080442957x"},
		{"inner spaces kept", "978 0 316", "978 0 316"},
		{"hyphens kept", "978-0-316-76948-8", "978-0-316-76948-8"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIdentifier(tt.input); got != tt.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentifierIdempotent(t *testing.T) {
	inputs := []string{
		"9780316769488",
		" 080442957X ",
		"ISBN 978-0-316",
		"\tMiXeD CaSe\n",
		"",
		"ÉCOLE",
	}

	for _, in := range inputs {
		once := NormalizeIdentifier(in)
		twice := NormalizeIdentifier(once)
		if once != twice {
			t.Errorf("NormalizeIdentifier not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestResultMarshalJSON(t *testing.T) {
	t.Run("record", func(t *testing.T) {
		desc := "D"
		res := Found(&Record{
			Title:       "T",
			Authors:     []string{"A"},
			Description: &desc,
			PageCount:   10,
		})

		data, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("Marshal() error: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		if got["title"] != "T" {
			t.Errorf("title = %v, want T", got["title"])
		}
		if got["shortDescription"] != nil {
			t.Errorf("shortDescription = %v, want null", got["shortDescription"])
		}
		if got["subtitle"] != "" {
			t.Errorf("subtitle = %v, want empty string", got["subtitle"])
		}
		if _, ok := got["code"]; ok {
			t.Error("record result should not carry a code field")
		}
	})

	t.Run("lookup error", func(t *testing.T) {
		res := Failed(0, "invalid request")
		if res.OK() {
			t.Error("Failed() result should not be OK")
		}

		data, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("Marshal() error: %v", err)
		}
		want := `{"code":0,"error":"invalid request"}`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}
	})
}

func TestLookupErrorString(t *testing.T) {
	if got := (&LookupError{Message: "gone"}).String(); got != "gone" {
		t.Errorf("String() = %q, want %q", got, "gone")
	}
	if got := (&LookupError{Code: NotFoundCode, Message: "gone"}).String(); got != "gone (code 404)" {
		t.Errorf("String() = %q, want %q", got, "gone (code 404)")
	}
}
