package publication

import (
	"fmt"
	"net/url"
	"strings"
)

// DOIResolver is the base URL used to build resolvable DOI links.
const DOIResolver = "https://doi.org"

// DOI is a parsed Digital Object Identifier, split into its handle prefix
// ("10.NNNN") and suffix.
type DOI struct {
	Registrant string
	Item       string
}

// String returns the "10.NNNN/suffix" form.
func (d DOI) String() string {
	return fmt.Sprintf("10.%s/%s", d.Registrant, d.Item)
}

// Display returns the "doi:" prefixed display form.
func (d DOI) Display() string {
	return "doi:" + d.String()
}

// URL returns a resolvable link for the DOI, with the suffix escaped.
func (d DOI) URL() string {
	return fmt.Sprintf("%s/10.%s/%s", DOIResolver, d.Registrant, url.QueryEscape(d.Item))
}

// IsZero reports whether the DOI is unset.
func (d DOI) IsZero() bool {
	return d.Registrant == "" && d.Item == ""
}

// MarshalText serializes the "10.NNNN/suffix" form.
func (d DOI) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a serialized DOI through ParseDOI.
func (d *DOI) UnmarshalText(text []byte) error {
	doi, ok := ParseDOI(string(text))
	if !ok {
		return fmt.Errorf("malformed DOI %q", text)
	}
	*d = doi
	return nil
}

// lowercaseASCII lowercases only ASCII letters, leaving all other code
// points untouched. Per the DOI Handbook, Section 3.4.4, two DOIs are
// equivalent if their code points match except for ASCII letter case.
func lowercaseASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		if ch >= 'A' && ch <= 'Z' {
			ch += 32
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// ParseDOI parses and canonicalizes a raw DOI string. Common resolver
// prefixes ("https://doi.org/", "doi:") are stripped, ASCII letters are
// lowercased, and the handle structure is validated: the prefix must be
// "10.NNNN" with a four-digit registrant, and the suffix must be non-empty
// with no whitespace or control characters.
//
// Returns false for empty or malformed input; parsing never panics.
func ParseDOI(raw string) (DOI, bool) {
	text := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "DOI:", "doi:"} {
		text = strings.TrimPrefix(text, prefix)
	}

	if text == "" || !strings.Contains(text, "/") {
		return DOI{}, false
	}

	prefix, suffix, _ := strings.Cut(text, "/")
	namespace, registrant, ok := strings.Cut(prefix, ".")
	if !ok || namespace != "10" {
		return DOI{}, false
	}

	if len(registrant) != 4 || !isDigits(registrant) {
		return DOI{}, false
	}

	if suffix == "" {
		return DOI{}, false
	}
	for _, ch := range suffix {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			return DOI{}, false
		}
		if ch < 32 || ch == 127 {
			return DOI{}, false
		}
	}

	return DOI{Registrant: registrant, Item: lowercaseASCII(suffix)}, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
