package publication

import "testing"

func TestParseDOI_Valid(t *testing.T) {
	valid := []string{
		"10.1000/182",
		"10.1000/xyz123",
		"10.1016/j.cell.2019.05.001",
		"10.1038/nphys1170",
		"10.1126/science.169.3946.635",
		"10.1093/mind/LIX.236.433",
		"10.1007/s00134-020-06050-2",
		"10.1145/3375637.3392412",
		"10.1371/journal.pone.0152612",
		"10.1000/<>?",
		"10.1000//1234",
	}

	for _, raw := range valid {
		t.Run(raw, func(t *testing.T) {
			doi, ok := ParseDOI(raw)
			if !ok {
				t.Fatalf("ParseDOI(%q) rejected valid DOI", raw)
			}
			if doi.String() != lowercaseASCII(raw) {
				t.Errorf("String() = %q, want %q", doi.String(), lowercaseASCII(raw))
			}
			if doi.Display() != "doi:"+lowercaseASCII(raw) {
				t.Errorf("Display() = %q", doi.Display())
			}
		})
	}
}

func TestParseDOI_Invalid(t *testing.T) {
	invalid := []string{
		"11.1000/182",
		"10.abc/12345",
		"10.1000",
		"10.1000/",
		"10./12345",
		"10.1000/white space",
		"",
		"   ",
	}

	for _, raw := range invalid {
		t.Run(raw, func(t *testing.T) {
			if _, ok := ParseDOI(raw); ok {
				t.Errorf("ParseDOI(%q) accepted invalid DOI", raw)
			}
		})
	}
}

func TestParseDOI_StripsPrefixes(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"doi:10.1000/182", "10.1000/182"},
		{"DOI:10.1000/182", "10.1000/182"},
		{"https://doi.org/10.1000/182", "10.1000/182"},
		{"http://doi.org/10.1000/182", "10.1000/182"},
	}

	for _, tt := range tests {
		doi, ok := ParseDOI(tt.raw)
		if !ok {
			t.Fatalf("ParseDOI(%q) rejected", tt.raw)
		}
		if doi.String() != tt.want {
			t.Errorf("ParseDOI(%q) = %q, want %q", tt.raw, doi, tt.want)
		}
	}
}

func TestParseDOI_CaseInsensitiveEquality(t *testing.T) {
	a, _ := ParseDOI("10.1093/mind/LIX.236.433")
	b, _ := ParseDOI("10.1093/mind/lix.236.433")
	if a != b {
		t.Errorf("DOIs differing only in ASCII letter case should be equal: %v != %v", a, b)
	}
}

func TestDOI_URL(t *testing.T) {
	doi, ok := ParseDOI("10.1000/<>?")
	if !ok {
		t.Fatal("ParseDOI rejected")
	}
	want := "https://doi.org/10.1000/%3C%3E%3F"
	if doi.URL() != want {
		t.Errorf("URL() = %q, want %q", doi.URL(), want)
	}
}
