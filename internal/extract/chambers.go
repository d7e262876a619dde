package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/parser"
)

var chamberEntryPattern = regexp.MustCompile(`([A-Z ]+).*?(\d+)`)

// parseChamberEntry reads "SALA PENAL PERMANENTE ..... 12".
func parseChamberEntry(text string) (*booklet.Chamber, bool) {
	m := chamberEntryPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	page, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	return &booklet.Chamber{
		Name:         strings.TrimSpace(m[1]),
		StartingPage: page,
	}, true
}

// ParseChamberIndex extracts the chambers listed on the first page between
// the contents heading and the first case-file heading, in stream order.
// It returns nil when the landmark band is missing or empty.
func ParseChamberIndex(doc parser.Document, pc *ParseContext) ([]*booklet.Chamber, error) {
	lower, upper, ok := pc.ChamberBand()
	if !ok {
		return nil, nil
	}
	frags, ok, err := pageFragments(doc, 1)
	if err != nil {
		return nil, fmt.Errorf("parse chamber index: %w", err)
	}
	if !ok {
		return nil, nil
	}

	return fold(frags, []*booklet.Chamber(nil), func(acc []*booklet.Chamber, f parser.Fragment) []*booklet.Chamber {
		if f.Y <= lower || f.Y >= upper {
			return acc
		}
		ch, ok := parseChamberEntry(f.Text)
		if !ok {
			return acc
		}
		pc.ChamberNameLine.set(f.Y)
		return append(acc, ch)
	}), nil
}
