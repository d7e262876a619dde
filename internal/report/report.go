package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
)

// Format names an output rendering of a booklet.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatDOCX     Format = "docx"
	FormatJSON     Format = "json"
)

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[Format]string{
	FormatMarkdown: "text/markdown; charset=utf-8",
	FormatHTML:     "text/html; charset=utf-8",
	FormatCSV:      "text/csv; charset=utf-8",
	FormatDOCX:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatJSON:     "application/json",
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "md", "markdown", "text", "txt":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "csv":
		return FormatCSV, nil
	case "docx":
		return FormatDOCX, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Write renders bk in the given format.
func Write(w io.Writer, f Format, bk *booklet.Booklet) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bk.Snapshot())
	case FormatMarkdown:
		return Markdown(w, bk)
	case FormatHTML:
		return HTML(w, bk)
	case FormatCSV:
		return CSV(w, bk)
	case FormatDOCX:
		return DOCX(w, bk)
	default:
		return fmt.Errorf("unsupported report format: %s", f)
	}
}
