package publication

import (
	"fmt"
	"strings"
	"unicode"
)

// Key is the canonical identity of a publication. Two records with equal
// keys refer to the same publication regardless of surface-text differences.
//
// Resolution order: normalized DOI, then accession number, then normalized
// ISSN, then eISSN, then a folded (title, year, first-author-surname) tuple.
// Exactly one path applies per record.
func (p *Publication) Key() Key {
	if p.DOI != nil {
		return Key{Kind: KeyDOI, Value: p.DOI.String()}
	}
	if p.Accession != "" {
		return Key{Kind: KeyAccession, Value: p.Accession}
	}
	if p.ISSN != nil {
		return Key{Kind: KeyISSN, Value: p.ISSN.String()}
	}
	if p.EISSN != nil {
		return Key{Kind: KeyISSN, Value: p.EISSN.String()}
	}
	return Key{
		Kind:  KeyTitleTuple,
		Value: fmt.Sprintf("%s|%d|%s", Fold(p.Title), p.Year, Fold(p.FirstAuthorSurname())),
	}
}

// KeyKind names the identifier path a Key was resolved through.
type KeyKind string

const (
	KeyDOI        KeyKind = "doi"
	KeyAccession  KeyKind = "accession"
	KeyISSN       KeyKind = "issn"
	KeyTitleTuple KeyKind = "title"
)

// Key is a comparable canonical identity value.
type Key struct {
	Kind  KeyKind
	Value string
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Value
}

// Fold normalizes surface text for identity comparison: lowercased, marks
// and punctuation dropped, runs of whitespace collapsed to single spaces.
// "Méthode d'Analyse" and "methode danalyse" fold to the same value.
func Fold(text string) string {
	var b strings.Builder
	space := false
	for _, ch := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(stripDiacritic(ch))
		case unicode.IsSpace(ch):
			space = true
		default:
			// punctuation, marks: dropped
		}
	}
	return b.String()
}

// stripDiacritic maps common Latin-1 and Romanian diacritics to their ASCII
// base letter. Titles in the exports are ASCII-mostly, so a small table
// beats pulling in a full transliteration pass.
func stripDiacritic(ch rune) rune {
	switch ch {
	case 'à', 'á', 'â', 'ã', 'ä', 'å', 'ă':
		return 'a'
	case 'è', 'é', 'ê', 'ë':
		return 'e'
	case 'ì', 'í', 'î', 'ï':
		return 'i'
	case 'ò', 'ó', 'ô', 'õ', 'ö':
		return 'o'
	case 'ù', 'ú', 'û', 'ü':
		return 'u'
	case 'ç':
		return 'c'
	case 'ñ':
		return 'n'
	case 'ș', 'ş':
		return 's'
	case 'ț', 'ţ':
		return 't'
	}
	return ch
}
