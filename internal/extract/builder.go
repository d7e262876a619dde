package extract

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/parser"
)

// Report records what each stage found for one document.
type Report struct {
	Filename      string          `json:"filename"`
	IssueDate     Outcome         `json:"issue_date"`
	BookletNumber Outcome         `json:"booklet_number"`
	ContentLine   Landmark        `json:"content_line"`
	CaseFileLine  Landmark        `json:"case_file_line"`
	ChamberBand   Outcome         `json:"chamber_band"`
	Chambers      []ChamberReport `json:"chambers"`
	Index         Outcome         `json:"index"`
	IndexEntries  int             `json:"index_entries"`
	IndexMatched  int             `json:"index_matched"`
}

// ChamberReport is the per-chamber part of a Report.
type ChamberReport struct {
	Name     string         `json:"name"`
	Title    Outcome        `json:"title"`
	Assembly AssemblyResult `json:"assembly"`
}

// Builder runs the extraction stages over one document at a time.
type Builder struct {
	bodyStart float64
	log       *slog.Logger
}

// NewBuilder creates a Builder. bodyStart <= 0 selects DefaultBodyStart.
func NewBuilder(bodyStart float64, log *slog.Logger) *Builder {
	if bodyStart <= 0 {
		bodyStart = DefaultBodyStart
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{bodyStart: bodyStart, log: log}
}

// BuildFile opens the PDF at path, builds its booklet and closes the file.
func (b *Builder) BuildFile(path string) (*booklet.Booklet, *Report, error) {
	doc, err := parser.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()
	return b.Build(doc, filepath.Base(path))
}

// BuildBytes builds the booklet of a PDF held in memory.
func (b *Builder) BuildBytes(data []byte, filename string) (*booklet.Booklet, *Report, error) {
	doc, err := parser.FromBytes(data)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()
	return b.Build(doc, filename)
}

// Build extracts the booklet structure of doc. Stages that find nothing
// leave their part of the booklet empty; only read failures are errors.
func (b *Builder) Build(doc parser.Document, filename string) (*booklet.Booklet, *Report, error) {
	log := b.log.With("file", filename)
	pages := doc.NumPage()
	if pages < 1 {
		return nil, nil, fmt.Errorf("%s: document has no pages", filename)
	}

	pc := NewParseContext(filename, pages)
	rep := &Report{Filename: filename}
	bk := &booklet.Booklet{Filename: filename, Pages: pages}

	if date, ok := ParseIssueDate(filename); ok {
		bk.IssueDate, bk.HasIssueDate = date, true
		rep.IssueDate = Found
	}

	number, err := ScanThresholds(doc, pc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	bk.Number = number
	if pc.BookletLine.Found {
		rep.BookletNumber = Found
	}
	rep.ContentLine, rep.CaseFileLine = pc.ContentLine, pc.CaseFileLine

	chambers, err := ParseChamberIndex(doc, pc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	if _, _, ok := pc.ChamberBand(); ok {
		rep.ChamberBand = Found
	}
	for _, ch := range chambers {
		bk.AddChamber(ch)
	}
	log.Info("chamber index parsed", "booklet", number, "chambers", len(chambers), "band", rep.ChamberBand)

	titles, err := LocateChamberTitles(doc, bk.Chambers, log)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}

	for i, ch := range bk.Chambers {
		res, err := AssembleCaseFiles(doc, ch, b.bodyStart, log)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", filename, err)
		}
		rep.Chambers = append(rep.Chambers, ChamberReport{Name: ch.Name, Title: titles[i], Assembly: res})
		log.Debug("chamber assembled", "chamber", ch.Name, "case_files", len(ch.CaseFiles), "end_page", res.EndPage)
	}

	if len(bk.Chambers) > 0 {
		text, err := doc.PageText(pages)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: index page: %w", filename, err)
		}
		entries := ParseIndexPage(text)
		rep.IndexEntries = len(entries)
		if len(entries) > 0 {
			rep.Index = Found
		}
		rep.IndexMatched = AssociateIndex(bk.Chambers, entries)
	} else {
		rep.Index = Skipped
	}

	log.Info("booklet built",
		"booklet", bk.Number,
		"issue_date", bk.IssueDateString(),
		"chambers", len(bk.Chambers),
		"case_files", bk.CaseFileCount(),
		"index_entries", rep.IndexEntries,
	)
	return bk, rep, nil
}
