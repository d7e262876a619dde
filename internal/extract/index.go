package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
)

const (
	indexHeading = "Índice"
	summaryMark  = "SUMILLA:"
)

var indexEntryPattern = regexp.MustCompile(`CASACIÓN N[º°] (\d+-\d{4} [A-Z]+)[\s\S]*?(\d+)`)

// ParseIndexPage reads the trailing index of a bulletin and returns its
// tagged case files. An entry followed by "SUMILLA:" before the next entry
// is a Sentencia; any other entry is an Auto.
func ParseIndexPage(text string) []*booklet.CaseFile {
	at := strings.Index(text, indexHeading)
	if at < 0 {
		return nil
	}
	body := text[at+len(indexHeading):]

	matches := indexEntryPattern.FindAllStringSubmatchIndex(body, -1)
	entries := make([]*booklet.CaseFile, 0, len(matches))
	for i, m := range matches {
		page, err := strconv.Atoi(body[m[4]:m[5]])
		if err != nil {
			continue
		}
		end := len(body)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		tag := booklet.TagAuto
		if strings.Contains(body[m[3]:end], summaryMark) {
			tag = booklet.TagSentencia
		}
		entries = append(entries, &booklet.CaseFile{
			Code: NormalizeCode("casación n. " + body[m[2]:m[3]]),
			Page: page,
			Tag:  tag,
		})
	}
	return entries
}

// AssociateIndex distributes index entries over the chambers. Each entry
// belongs to the chamber whose page range contains it: chamber i covers
// pages from its starting page up to the next chamber's starting page.
// An entry whose code was already assembled updates that record with the
// index page and tag; otherwise it is appended to its owning chamber.
// It returns the number of entries that matched an assembled case file.
func AssociateIndex(chambers []*booklet.Chamber, entries []*booklet.CaseFile) int {
	if len(chambers) == 0 {
		return 0
	}
	matched := 0
	for _, entry := range entries {
		owner := ownerChamber(chambers, entry.Page)
		if cf := findCaseFile(owner, entry.Code); cf != nil {
			cf.Page, cf.Tag = entry.Page, entry.Tag
			matched++
			continue
		}
		if cf := findInAny(chambers, entry.Code); cf != nil {
			cf.Page, cf.Tag = entry.Page, entry.Tag
			matched++
			continue
		}
		owner.AddCaseFile(&booklet.CaseFile{Code: entry.Code, Page: entry.Page, Tag: entry.Tag})
	}
	return matched
}

func ownerChamber(chambers []*booklet.Chamber, page int) *booklet.Chamber {
	var owner *booklet.Chamber
	for _, ch := range chambers {
		if ch.StartingPage <= page && (owner == nil || ch.StartingPage >= owner.StartingPage) {
			owner = ch
		}
	}
	if owner == nil {
		return chambers[0]
	}
	return owner
}

func findCaseFile(ch *booklet.Chamber, code string) *booklet.CaseFile {
	for _, cf := range ch.CaseFiles {
		if cf.Code == code {
			return cf
		}
	}
	return nil
}

func findInAny(chambers []*booklet.Chamber, code string) *booklet.CaseFile {
	for _, ch := range chambers {
		if cf := findCaseFile(ch, code); cf != nil {
			return cf
		}
	}
	return nil
}
