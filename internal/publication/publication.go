// Package publication defines the canonical record model for bibliographic
// exports: publications, authors, cited references, and the normalized
// identifiers (ISSN, DOI) used to join them against scored-journal lists.
package publication

// DocumentType classifies a publication for accreditation scoring.
type DocumentType int

const (
	Other DocumentType = iota
	Article
	Review
	Proceedings
	Book
	BookChapter
)

var documentTypeNames = map[DocumentType]string{
	Other:       "other",
	Article:     "article",
	Review:      "review",
	Proceedings: "proceedings",
	Book:        "book",
	BookChapter: "book-chapter",
}

func (t DocumentType) String() string {
	if name, ok := documentTypeNames[t]; ok {
		return name
	}
	return "other"
}

// SourceFormat tags which export grammar a record was parsed from.
type SourceFormat string

const (
	SourceTab    SourceFormat = "tab"
	SourceBibTeX SourceFormat = "bibtex"
)

// Author is one author of a publication, with optional researcher
// identifiers when the export carries them.
type Author struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ResearcherID string `json:"researcherid,omitempty"`
	ORCID        string `json:"orcid,omitempty"`
}

// Pages is a page range with an optional derived count.
type Pages struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Count int    `json:"count,omitempty"`
}

// CitedRef is one entry of a publication's cited-reference list: the work a
// citing publication points back to, as far as the export encodes it.
type CitedRef struct {
	FirstAuthor string `json:"first_author"`
	Journal     string `json:"journal"`
	Year        int    `json:"year"`
	DOI         DOI    `json:"doi"`
}

// Publication is the canonical, format-independent representation of one
// exported record. Optional fields that the export did not carry stay at
// their zero values; ISSN and EISSN are nil when absent or malformed.
// Records are never mutated after parsing.
type Publication struct {
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
	Year    int      `json:"year"`
	Journal string   `json:"journal"`

	ISSN  *ISSN `json:"issn,omitempty"`
	EISSN *ISSN `json:"eissn,omitempty"`
	DOI   *DOI  `json:"doi,omitempty"`

	Source    SourceFormat `json:"source,omitempty"`
	DocType   DocumentType `json:"document_type"`
	Publisher string       `json:"publisher,omitempty"`
	Volume    string       `json:"volume,omitempty"`
	Issue     string       `json:"issue,omitempty"`
	Pages     Pages        `json:"pages,omitempty"`

	Categories []string `json:"categories,omitempty"`

	// Accession is the export's own record identifier (the WoS UT field or
	// the BibTeX entry key).
	Accession string `json:"accession,omitempty"`

	// CitedByCount is the citation count claimed by the export (TC field).
	CitedByCount int `json:"cited_by_count"`

	// CitedRefs maps normalized cited DOIs to the parsed cited-reference
	// entries (CR field), when the export carries them.
	CitedRefs map[string]CitedRef `json:"cited_refs,omitempty"`
}

// FirstAuthorSurname returns the surname of the first author, or "" when
// the author list is empty.
func (p *Publication) FirstAuthorSurname() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0].LastName
}

// Identifier returns the best available normalized identifier string for
// registry matching: ISSN first, then eISSN.
func (p *Publication) Identifier() (ISSN, bool) {
	if p.ISSN != nil {
		return *p.ISSN, true
	}
	if p.EISSN != nil {
		return *p.EISSN, true
	}
	return ISSN{}, false
}

// FieldCount counts populated optional fields, used by the merger to prefer
// the more complete of two duplicate records.
func (p *Publication) FieldCount() int {
	n := 0
	if p.ISSN != nil {
		n++
	}
	if p.EISSN != nil {
		n++
	}
	if p.DOI != nil {
		n++
	}
	if p.Publisher != "" {
		n++
	}
	if p.Volume != "" {
		n++
	}
	if p.Issue != "" {
		n++
	}
	if p.Pages.Start != "" {
		n++
	}
	if p.Accession != "" {
		n++
	}
	if len(p.Categories) > 0 {
		n++
	}
	if len(p.CitedRefs) > 0 {
		n++
	}
	if len(p.Authors) > 0 {
		n++
	}
	return n
}
