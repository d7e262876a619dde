package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dgallion1/casgest/internal/extract"
)

// Stages writes a per-stage diagnostic table of an extraction run.
func Stages(w io.Writer, rep *extract.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", rep.Filename)
	fmt.Fprintf(tw, "issue date\t%s\n", rep.IssueDate)
	fmt.Fprintf(tw, "booklet number\t%s\n", rep.BookletNumber)
	fmt.Fprintf(tw, "content line\t%s\t%s\n", rep.ContentLine.Outcome(), landmarkY(rep.ContentLine))
	fmt.Fprintf(tw, "case file line\t%s\t%s\n", rep.CaseFileLine.Outcome(), landmarkY(rep.CaseFileLine))
	fmt.Fprintf(tw, "chamber band\t%s\n", rep.ChamberBand)
	for _, ch := range rep.Chambers {
		fmt.Fprintf(tw, "chamber\t%s\ttitle %s\tphase A %s\tphase B %s\tend page %d\tcase files %d\n",
			ch.Name, ch.Title, ch.Assembly.PhaseA, ch.Assembly.PhaseB, ch.Assembly.EndPage, ch.Assembly.Found)
	}
	fmt.Fprintf(tw, "index\t%s\t%d entries\t%d matched\n", rep.Index, rep.IndexEntries, rep.IndexMatched)
	return tw.Flush()
}

func landmarkY(l extract.Landmark) string {
	if !l.Found {
		return "-"
	}
	return fmt.Sprintf("y=%.2f", l.Y)
}
