package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// latexReplacer escapes the characters LaTeX treats specially in the text
// fields that come out of the exports.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func latexEscape(text string) string {
	return latexReplacer.Replace(text)
}

// WriteMetricsLaTeX writes an itemized publication list for the dossier
// document. The candidate's surname is bolded in author lists; matched
// publications carry their points.
func WriteMetricsLaTeX(w io.Writer, pubs []publication.Publication, metrics []enrich.Metric, candidate string) error {
	if len(pubs) != len(metrics) {
		return fmt.Errorf("publication and metric counts disagree: %d vs %d", len(pubs), len(metrics))
	}

	if _, err := fmt.Fprintln(w, `\begin{enumerate}`); err != nil {
		return err
	}

	for i := range pubs {
		if _, err := fmt.Fprintf(w, "  \\item %s\n", latexReference(&pubs[i], candidate)); err != nil {
			return err
		}

		m := &metrics[i]
		if m.Matched {
			if _, err := fmt.Fprintf(w, "    \\hfill (%.3f puncte)\n", m.Points); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, `\end{enumerate}`); err != nil {
		return err
	}

	total := enrich.Total(metrics)
	_, err := fmt.Fprintf(w, "\n\\noindent\\textbf{Total: %.3f puncte}\n", total)
	return err
}

// latexReference renders one publication as a LaTeX reference line.
func latexReference(pub *publication.Publication, candidate string) string {
	var parts []string

	if authors := formatAuthors(pub.Authors, candidate); authors != "" {
		parts = append(parts, authors)
	}
	parts = append(parts, `\enquote{`+latexEscape(pub.Title)+`}`)
	parts = append(parts, `\textit{`+latexEscape(pub.Journal)+`}`)

	if pub.Volume != "" {
		parts = append(parts, fmt.Sprintf(`vol.\ %s (%d)`, latexEscape(pub.Volume), pub.Year))
	} else {
		parts = append(parts, fmt.Sprintf("%d", pub.Year))
	}

	if pub.Pages.Start != "" && pub.Pages.End != "" {
		parts = append(parts, fmt.Sprintf(`pp.\ %s--%s`, pub.Pages.Start, pub.Pages.End))
	}

	if pub.DOI != nil {
		parts = append(parts, fmt.Sprintf(`DOI: \href{%s}{\ttfamily %s}`,
			pub.DOI.URL(), latexEscape(pub.DOI.String())))
	}

	return strings.Join(parts, ", ")
}
