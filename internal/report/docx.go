package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/fumiama/go-docx"
)

// DOCX writes the booklet report as a Word document: a heading paragraph
// per chamber followed by one paragraph per case file.
func DOCX(w io.Writer, bk *booklet.Booklet) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Booklet " + bk.Number).Size("32").Bold()
	meta := doc.AddParagraph()
	meta.AddText("File: " + bk.Filename)
	if date := bk.IssueDateString(); date != "" {
		doc.AddParagraph().AddText("Issue date: " + date)
	}

	for _, ch := range bk.Chambers {
		doc.AddParagraph().AddText(ch.Name + " (page " + strconv.Itoa(ch.StartingPage) + ")").Size("26").Bold()
		for _, cf := range ch.CaseFiles {
			line := fmt.Sprintf("%s, page %d", cf.Code, cf.Page)
			if cf.Tag != booklet.TagUnset {
				line += ", " + string(cf.Tag)
			}
			doc.AddParagraph().AddText(line)
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
