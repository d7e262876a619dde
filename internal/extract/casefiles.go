package extract

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/parser"
)

// DefaultBodyStart is the y-coordinate under which the body of a
// continuation page begins; running headers print above it.
const DefaultBodyStart = 710

// AssemblyResult describes how a chamber's case files were found.
type AssemblyResult struct {
	PhaseA  Outcome `json:"phase_a"`
	PhaseB  Outcome `json:"phase_b"`
	EndPage int     `json:"end_page"`
	Found   int     `json:"found"`
}

type assembler struct {
	chamber *booklet.Chamber
	cont    Continuation
	log     *slog.Logger
}

func (a *assembler) feed(frags iter.Seq[parser.Fragment]) int {
	added := 0
	for f := range frags {
		line := normalizeLine(f.Text)
		cf, ok := a.cont.Feed(line)
		if !ok {
			a.log.Debug("line dropped", "text", line)
			continue
		}
		a.log.Debug("case file matched", "code", cf.Code, "page", cf.Page)
		a.chamber.AddCaseFile(cf)
		added++
	}
	return added
}

// AssembleCaseFiles builds the chamber's case-file list. Phase A scans the
// starting page below the chamber title; Phase B scans the following pages
// up to the page of the first case file found in Phase A, keeping only
// fragments below bodyStart. Phase B is skipped when Phase A found nothing.
func AssembleCaseFiles(doc parser.Document, ch *booklet.Chamber, bodyStart float64, log *slog.Logger) (AssemblyResult, error) {
	a := &assembler{chamber: ch, log: log.With("chamber", ch.Name)}
	var res AssemblyResult

	frags, ok, err := pageFragments(doc, ch.StartingPage)
	if err != nil {
		return res, fmt.Errorf("assemble %q page %d: %w", ch.Name, ch.StartingPage, err)
	}
	if !ok {
		res.PhaseA, res.PhaseB = Skipped, Skipped
		return res, nil
	}
	if n := a.feed(below(frags, ch.TitleLine)); n > 0 {
		res.PhaseA = Found
		res.Found += n
	}

	if len(ch.CaseFiles) == 0 {
		a.log.Info("no case files on starting page, skipping continuation pages")
		res.PhaseB = Skipped
		return res, nil
	}

	res.EndPage = min(ch.CaseFiles[0].Page, doc.NumPage())
	for page := ch.StartingPage + 1; page <= res.EndPage; page++ {
		frags, ok, err := pageFragments(doc, page)
		if err != nil {
			return res, fmt.Errorf("assemble %q page %d: %w", ch.Name, page, err)
		}
		if !ok {
			break
		}
		if n := a.feed(below(frags, bodyStart)); n > 0 {
			res.PhaseB = Found
			res.Found += n
		}
	}
	return res, nil
}
