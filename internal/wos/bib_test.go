package wos

import (
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

const bibSample = `
@Article{WOS:000100,
   author = {Lovelace, Ada and Babbage, Charles},
   title = {{On Analytical Engines}},
   journal = {{Journal of Computation}},
   year = {2020},
   volume = {12},
   number = {3},
   pages = {101-110},
   doi = {10.1000/182},
   issn = {0378-5955},
   eissn = {0028-0836},
   unique-id = {WOS:000100},
   times-cited = {4},
   web-of-science-categories = {Computer Science, Theory; Mathematics},
   custom-nonstandard-field = {kept but ignored},
}

@inproceedings{conf2019,
   author = {Doe, Jane},
   title = {A Conference Paper},
   booktitle = {Proceedings of Something},
   year = "2019",
}
`

func TestBibParser_Detect(t *testing.T) {
	p := &BibParser{}
	if !p.Detect([]byte(bibSample)) {
		t.Error("Detect rejected BibTeX content")
	}
	if p.Detect([]byte("AU\tTI\tSO\tPY\tDT\n")) {
		t.Error("Detect accepted tab-delimited content")
	}
}

func TestBibParser_Parse(t *testing.T) {
	pubs, report, err := (&BibParser{}).Parse("savedrecs.bib", []byte(bibSample), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !report.Empty() {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics)
	}
	if len(pubs) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(pubs))
	}

	pub := pubs[0]
	if pub.Title != "On Analytical Engines" {
		t.Errorf("Title = %q", pub.Title)
	}
	if len(pub.Authors) != 2 || pub.Authors[1].LastName != "Babbage" {
		t.Errorf("Authors = %+v", pub.Authors)
	}
	if pub.Journal != "Journal of Computation" {
		t.Errorf("Journal = %q", pub.Journal)
	}
	if pub.DOI == nil || pub.DOI.String() != "10.1000/182" {
		t.Errorf("DOI = %v", pub.DOI)
	}
	if pub.ISSN == nil || pub.ISSN.String() != "0378-5955" {
		t.Errorf("ISSN = %v", pub.ISSN)
	}
	if pub.Accession != "WOS:000100" {
		t.Errorf("Accession = %q", pub.Accession)
	}
	if pub.Pages.Count != 10 {
		t.Errorf("Pages.Count = %d, want 10", pub.Pages.Count)
	}
	if pub.Source != publication.SourceBibTeX {
		t.Errorf("Source = %q", pub.Source)
	}

	conf := pubs[1]
	if conf.DocType != publication.Proceedings {
		t.Errorf("DocType = %v, want proceedings", conf.DocType)
	}
	if conf.Journal != "Proceedings of Something" {
		t.Errorf("Journal = %q, booktitle fallback failed", conf.Journal)
	}
	if conf.Year != 2019 {
		t.Errorf("Year = %d, quoted value failed", conf.Year)
	}
	if conf.ISSN != nil {
		t.Errorf("absent ISSN should be nil, got %v", conf.ISSN)
	}
}

func TestBibParser_MalformedEntrySkipped(t *testing.T) {
	data := []byte(`
@Article{broken-no-year,
   author = {Doe, Jane},
   title = {No Year Here},
}

@Article{fine2021,
   author = {Doe, Jane},
   title = {A Fine Record},
   journal = {Some Journal},
   year = {2021},
}
`)

	pubs, report, err := (&BibParser{}).Parse("savedrecs.bib", data, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "A Fine Record" {
		t.Fatalf("Parse() = %+v, want only the valid record", pubs)
	}
	if report.Count(diag.ParseRow) != 1 {
		t.Errorf("want one parse-row diagnostic, got %v", report.Diagnostics)
	}
}

func TestBibParser_NoEntries(t *testing.T) {
	if _, _, err := (&BibParser{}).Parse("empty.bib", []byte("@"), Options{}); err == nil {
		t.Error("Parse() should fail when no entries can be scanned")
	}
}

func TestBibParser_Restartable(t *testing.T) {
	p := &BibParser{}
	a, _, err := p.Parse("savedrecs.bib", []byte(bibSample), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := p.Parse("savedrecs.bib", []byte(bibSample), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) || a[0].Key() != b[0].Key() {
		t.Error("repeated Parse calls disagree")
	}
}

func TestParserFor(t *testing.T) {
	if p, err := ParserFor([]byte(bibSample)); err != nil || p.Format() != publication.SourceBibTeX {
		t.Errorf("ParserFor(bib) = %v, %v", p, err)
	}

	tab := tabExport(tabHeader, tabRow(nil))
	if p, err := ParserFor(tab); err != nil || p.Format() != publication.SourceTab {
		t.Errorf("ParserFor(tab) = %v, %v", p, err)
	}

	if _, err := ParserFor([]byte("neither format")); err == nil {
		t.Error("ParserFor should reject unknown content")
	}
}
