package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

var (
	dottedDatePattern = regexp.MustCompile(`(\d{1,2})\.(\d{2})\.(\d{4})\.(?i:pdf)$`)
	storeNamePattern  = regexp.MustCompile(`CA(\d{4})(\d{2})(\d{2})\.(?i:pdf)$`)
)

// ParseIssueDate reads the issue date encoded in a bulletin file name,
// either "DD.MM.YYYY.pdf" or the store form "CAYYYYMMDD.pdf".
func ParseIssueDate(filename string) (time.Time, bool) {
	name := filepath.Base(filename)
	if m := dottedDatePattern.FindStringSubmatch(name); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	if m := storeNamePattern.FindStringSubmatch(name); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	return time.Time{}, false
}

func makeDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalises out-of-range values; reject those.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
