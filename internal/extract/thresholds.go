package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/casgest/internal/parser"
)

var (
	bookletNumberPattern   = regexp.MustCompile(`Año [A-Z]* / N[º°] (\d+)`)
	contentHeadingPattern  = regexp.MustCompile(`^contenido`)
	caseFileHeadingPattern = regexp.MustCompile(`casac.*?\sn.\s`)
)

type thresholdScan struct {
	number string
	pc     *ParseContext
}

func (s thresholdScan) step(f parser.Fragment) thresholdScan {
	if m := bookletNumberPattern.FindStringSubmatch(f.Text); m != nil {
		s.number = m[1]
		s.pc.BookletLine.set(f.Y)
	}
	lower := strings.ToLower(f.Text)
	if contentHeadingPattern.MatchString(lower) {
		s.pc.ContentLine.set(f.Y)
	}
	if !s.pc.FirstCaseFileSeen && caseFileHeadingPattern.MatchString(lower) {
		s.pc.CaseFileLine.set(f.Y)
		s.pc.FirstCaseFileSeen = true
	}
	return s
}

// ScanThresholds reads the first page once, returning the booklet number
// and recording the booklet, contents and first case-file landmarks in pc.
// A missing booklet number yields "" and is not an error.
func ScanThresholds(doc parser.Document, pc *ParseContext) (string, error) {
	frags, ok, err := pageFragments(doc, 1)
	if err != nil {
		return "", fmt.Errorf("scan thresholds: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("scan thresholds: document has no pages")
	}
	res := fold(frags, thresholdScan{pc: pc}, thresholdScan.step)
	return res.number, nil
}
