package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
)

// Markdown writes a human-readable report of a booklet.
func Markdown(w io.Writer, bk *booklet.Booklet) error {
	var b strings.Builder

	title := bk.Number
	if title == "" {
		title = "(sin número)"
	}
	fmt.Fprintf(&b, "# Booklet %s\n\n", title)
	fmt.Fprintf(&b, "- File: %s\n", bk.Filename)
	if date := bk.IssueDateString(); date != "" {
		fmt.Fprintf(&b, "- Issue date: %s\n", date)
	}
	fmt.Fprintf(&b, "- Pages: %d\n", bk.Pages)
	fmt.Fprintf(&b, "- Chambers: %d\n", len(bk.Chambers))
	fmt.Fprintf(&b, "- Case files: %d\n", bk.CaseFileCount())

	for _, ch := range bk.Chambers {
		fmt.Fprintf(&b, "\n## %s (page %d)\n\n", ch.Name, ch.StartingPage)
		if len(ch.CaseFiles) == 0 {
			b.WriteString("No case files found.\n")
			continue
		}
		b.WriteString("| Case file | Page | Tag |\n")
		b.WriteString("|---|---:|---|\n")
		for _, cf := range ch.CaseFiles {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(cf.Code), cf.Page, cf.Tag)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
