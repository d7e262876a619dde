package booklet

import "time"

// Tag classifies a case file resolution.
type Tag string

const (
	TagUnset     Tag = ""
	TagSentencia Tag = "Sentencia"
	TagAuto      Tag = "Auto"
)

// Booklet is one issue of the bulletin.
type Booklet struct {
	Number       string     `json:"number"`
	IssueDate    time.Time  `json:"-"`
	HasIssueDate bool       `json:"-"`
	Filename     string     `json:"filename"`
	Pages        int        `json:"pages"`
	Chambers     []*Chamber `json:"chambers"`
}

// Chamber is a judicial panel section listed on the first page.
type Chamber struct {
	Name         string      `json:"name"`
	StartingPage int         `json:"starting_page"`
	TitleLine    float64     `json:"title_line"`
	TitleFound   bool        `json:"title_found"`
	CaseFiles    []*CaseFile `json:"case_files"`
}

// CaseFile is a single case entry and the page its resolution starts on.
type CaseFile struct {
	Code string `json:"code"`
	Page int    `json:"page"`
	Tag  Tag    `json:"tag,omitempty"`
}

// AddChamber appends a chamber in discovery order.
func (b *Booklet) AddChamber(c *Chamber) {
	b.Chambers = append(b.Chambers, c)
}

// AddCaseFile appends a case file in discovery order.
func (c *Chamber) AddCaseFile(cf *CaseFile) {
	c.CaseFiles = append(c.CaseFiles, cf)
}

// IssueDateString returns the issue date as YYYY-MM-DD, or "" when unset.
func (b *Booklet) IssueDateString() string {
	if !b.HasIssueDate {
		return ""
	}
	return b.IssueDate.Format(time.DateOnly)
}

// CaseFileCount returns the number of case files across all chambers.
func (b *Booklet) CaseFileCount() int {
	n := 0
	for _, c := range b.Chambers {
		n += len(c.CaseFiles)
	}
	return n
}

// Snapshot is the JSON-facing form of a Booklet.
type Snapshot struct {
	Number    string     `json:"number"`
	IssueDate string     `json:"issue_date,omitempty"`
	Filename  string     `json:"filename"`
	Pages     int        `json:"pages"`
	Chambers  []*Chamber `json:"chambers"`
}

// Snapshot returns a JSON-safe view with a non-nil chamber list.
func (b *Booklet) Snapshot() Snapshot {
	chambers := b.Chambers
	if chambers == nil {
		chambers = []*Chamber{}
	}
	return Snapshot{
		Number:    b.Number,
		IssueDate: b.IssueDateString(),
		Filename:  b.Filename,
		Pages:     b.Pages,
		Chambers:  chambers,
	}
}
