package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	numberMarkPattern = regexp.MustCompile(`\bn[º°]\s*`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// NormalizeCode brings a case-file code to its canonical lower-case form,
// e.g. "CASACIÓN Nº 1234-2020  LIMA" -> "casación n. 1234-2020 lima".
func NormalizeCode(code string) string {
	s := strings.ToLower(norm.NFC.String(code))
	s = numberMarkPattern.ReplaceAllString(s, "n. ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeLine prepares a fragment for case-file matching.
func normalizeLine(text string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(text, "\t", " ")))
}
