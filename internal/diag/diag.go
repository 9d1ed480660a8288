// Package diag accumulates recoverable issues encountered while parsing,
// merging, and matching records. A Report travels alongside the primary
// result of each pipeline stage so nothing recoverable is silently dropped.
package diag

import "fmt"

// Code identifies the class of a diagnostic.
type Code string

const (
	// ParseRow is a row or entry that could not be parsed and was skipped.
	ParseRow Code = "parse-row"
	// BadIdentifier is an identifier that failed normalization and was
	// treated as absent.
	BadIdentifier Code = "bad-identifier"
	// MergeConflict is two records sharing a canonical key but disagreeing
	// on core fields.
	MergeConflict Code = "merge-conflict"
	// LookupAmbiguity is a registry lookup resolved through the year
	// tie-break rather than an exact year hit.
	LookupAmbiguity Code = "lookup-ambiguity"
	// UnknownValue is a recognized field carrying a value outside the known
	// vocabulary (e.g. an undocumented document type).
	UnknownValue Code = "unknown-value"
)

// Diagnostic is one recoverable issue, tied to its origin when known.
type Diagnostic struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Row     int    `json:"row,omitempty"` // 1-based; 0 when not row-scoped
}

func (d Diagnostic) String() string {
	switch {
	case d.File != "" && d.Row > 0:
		return fmt.Sprintf("%s: %s:%d: %s", d.Code, d.File, d.Row, d.Message)
	case d.File != "":
		return fmt.Sprintf("%s: %s: %s", d.Code, d.File, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
}

// Report collects diagnostics in the order they were produced.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Add appends a diagnostic built from a format string.
func (r *Report) Add(code Code, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddRow appends a row-scoped diagnostic.
func (r *Report) AddRow(code Code, file string, row int, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Row:     row,
	})
}

// Merge appends all diagnostics from another report.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Count returns the number of diagnostics with the given code.
func (r *Report) Count(code Code) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Empty reports whether the report carries no diagnostics.
func (r *Report) Empty() bool {
	return len(r.Diagnostics) == 0
}
