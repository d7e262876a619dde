package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the Markdown report as a standalone HTML page.
func HTML(w io.Writer, bk *booklet.Booklet) error {
	var src bytes.Buffer
	if err := Markdown(&src, bk); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	title := "Booklet " + bk.Number
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body></html>\n",
		html.EscapeString(title), body.String())
	return err
}
