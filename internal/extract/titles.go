package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/parser"
)

// LocateChamberTitle finds the first fragment on the chamber's starting
// page whose trimmed text equals the chamber name and records its position.
// A missing title leaves TitleLine at 0.
func LocateChamberTitle(doc parser.Document, ch *booklet.Chamber, log *slog.Logger) (Outcome, error) {
	frags, ok, err := pageFragments(doc, ch.StartingPage)
	if err != nil {
		return NotFound, fmt.Errorf("locate title %q: %w", ch.Name, err)
	}
	if !ok {
		log.Warn("chamber starting page outside document", "chamber", ch.Name, "page", ch.StartingPage, "pages", doc.NumPage())
		return Skipped, nil
	}
	for f := range frags {
		if strings.TrimSpace(f.Text) == ch.Name {
			ch.TitleLine = f.Y
			ch.TitleFound = true
			return Found, nil
		}
	}
	log.Debug("chamber title not found", "chamber", ch.Name, "page", ch.StartingPage)
	return NotFound, nil
}

// LocateChamberTitles runs LocateChamberTitle for every chamber in order.
func LocateChamberTitles(doc parser.Document, chambers []*booklet.Chamber, log *slog.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(chambers))
	for _, ch := range chambers {
		o, err := LocateChamberTitle(doc, ch, log)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}
