package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/casgest/internal/booklet"
)

var csvHeader = []string{"issue_date", "booklet", "chamber", "chamber_page", "code", "page", "tag"}

// CSV writes one row per case file. A booklet with no case files yields
// only the header row.
func CSV(w io.Writer, bk *booklet.Booklet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, ch := range bk.Chambers {
		for _, cf := range ch.CaseFiles {
			row := []string{
				bk.IssueDateString(),
				bk.Number,
				ch.Name,
				strconv.Itoa(ch.StartingPage),
				cf.Code,
				strconv.Itoa(cf.Page),
				string(cf.Tag),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
