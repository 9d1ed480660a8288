package publication

import "testing"

var validISSNs = []string{
	"0378-5955",
	"0028-0836",
	"0036-8075",
	"0006-808X",
	"0016-7568",
	"0022-1694",
	"0044-7447",
	"0264-9381",
	"0950-9232",
	"1234-5679",
}

var invalidISSNs = []string{
	"0378-5954", // wrong check digit
	"0028-0837",
	"0036-8074",
	"0006-8081",
	"1234-5678",
	"1234-567X", // check digit of 1234-567 is 9, not X
	"123-4567",  // too short
	"12345-6789",
	"ABCD-1234",
	"",
	"N/A",
	"****-****",
	"0",
}

func TestNormalizeISSN_Valid(t *testing.T) {
	for _, raw := range validISSNs {
		t.Run(raw, func(t *testing.T) {
			issn, ok := NormalizeISSN(raw)
			if !ok {
				t.Fatalf("NormalizeISSN(%q) rejected valid ISSN", raw)
			}
			if issn.String() != raw {
				t.Errorf("String() = %q, want %q", issn.String(), raw)
			}
		})
	}
}

func TestNormalizeISSN_Invalid(t *testing.T) {
	for _, raw := range invalidISSNs {
		t.Run(raw, func(t *testing.T) {
			if _, ok := NormalizeISSN(raw); ok {
				t.Errorf("NormalizeISSN(%q) accepted invalid ISSN", raw)
			}
		})
	}
}

func TestNormalizeISSN_Cleanup(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercase check char", "0006-808x", "0006-808X"},
		{"no dash", "03785955", "0378-5955"},
		{"surrounding space", "  0378-5955 ", "0378-5955"},
		{"embedded space", "0378 5955", "0378-5955"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issn, ok := NormalizeISSN(tt.raw)
			if !ok {
				t.Fatalf("NormalizeISSN(%q) rejected", tt.raw)
			}
			if issn.String() != tt.want {
				t.Errorf("NormalizeISSN(%q) = %q, want %q", tt.raw, issn.String(), tt.want)
			}
		})
	}
}

func TestNormalizeISSN_Idempotent(t *testing.T) {
	for _, raw := range validISSNs {
		first, ok := NormalizeISSN(raw)
		if !ok {
			t.Fatalf("NormalizeISSN(%q) rejected", raw)
		}
		second, ok := NormalizeISSN(first.String())
		if !ok {
			t.Fatalf("NormalizeISSN(%q) rejected its own output", first)
		}
		if first != second {
			t.Errorf("normalize not idempotent: %q -> %q", first, second)
		}
	}
}
