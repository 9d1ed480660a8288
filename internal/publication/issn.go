package publication

import (
	"fmt"
	"strings"
)

// Placeholder values that appear in place of a real ISSN in published
// journal lists and some exports.
var emptyISSN = map[string]bool{
	"":          true,
	"0":         true,
	"N/A":       true,
	"****-****": true,
}

// ISSN is a normalized serial identifier in NNNN-NNNC form, where the check
// character C is a digit or X.
type ISSN struct {
	value string
}

// String returns the canonical NNNN-NNNC form.
func (s ISSN) String() string {
	return s.value
}

// MarshalText serializes the canonical form.
func (s ISSN) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// UnmarshalText parses a serialized ISSN through normalization.
func (s *ISSN) UnmarshalText(text []byte) error {
	issn, ok := NormalizeISSN(string(text))
	if !ok {
		return fmt.Errorf("malformed ISSN %q", text)
	}
	*s = issn
	return nil
}

// NormalizeISSN canonicalizes a raw ISSN string: whitespace and punctuation
// are stripped, letters uppercased, and the check digit verified. Returns
// false for empty input, placeholder values, or anything that fails
// structural or check-digit validation. Malformed input is expected and is
// never an error.
//
// Normalizing an already-normalized value returns it unchanged.
func NormalizeISSN(raw string) (ISSN, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if emptyISSN[cleaned] {
		return ISSN{}, false
	}

	var digits strings.Builder
	for _, ch := range cleaned {
		switch {
		case ch >= '0' && ch <= '9', ch == 'X':
			digits.WriteRune(ch)
		case ch == '-', ch == ' ', ch == '–':
			// separator, skip
		default:
			return ISSN{}, false
		}
	}

	compact := digits.String()
	if len(compact) != 8 {
		return ISSN{}, false
	}
	if !validISSNCheckDigit(compact) {
		return ISSN{}, false
	}

	return ISSN{value: compact[:4] + "-" + compact[4:]}, true
}

// validISSNCheckDigit verifies the final character of an 8-character compact
// ISSN against the weighted sum of the first seven digits.
func validISSNCheckDigit(compact string) bool {
	total := 0
	for i := 0; i < 7; i++ {
		ch := compact[i]
		if ch < '0' || ch > '9' {
			return false
		}
		total += int(ch-'0') * (8 - i)
	}

	check := 11 - total%11
	var expected byte
	switch check {
	case 11:
		expected = '0'
	case 10:
		expected = 'X'
	default:
		expected = byte('0' + check)
	}

	return compact[7] == expected
}
