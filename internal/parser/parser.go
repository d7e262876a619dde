package parser

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"
)

// ErrPageOutOfRange is returned when a page number is outside 1..NumPage.
var ErrPageOutOfRange = errors.New("page out of range")

// Fragment is a unit of rendered text and its page-local vertical position.
// Higher Y is closer to the top of the page.
type Fragment struct {
	Text string
	Y    float64
}

// Document is the positioned-text view of a paginated document.
// Pages are 1-based.
type Document interface {
	NumPage() int
	PageText(page int) (string, error)
	Fragments(page int) (iter.Seq[Fragment], error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Blank reports whether s holds only whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
