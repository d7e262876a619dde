package extract

// Outcome records whether a stage found what it was looking for.
type Outcome int

const (
	NotFound Outcome = iota
	Found
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Skipped:
		return "skipped"
	default:
		return "not_found"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Landmark is a vertical coordinate discovered on the first page.
type Landmark struct {
	Y     float64 `json:"y"`
	Found bool    `json:"found"`
}

func (l *Landmark) set(y float64) {
	l.Y = y
	l.Found = true
}

// Outcome reports the landmark as a stage outcome.
func (l Landmark) Outcome() Outcome {
	if l.Found {
		return Found
	}
	return NotFound
}

// ParseContext is the per-document scratch state shared by the stages.
// A fresh value is built for every document; it must not be shared
// between documents processed concurrently.
type ParseContext struct {
	Filename string
	Pages    int

	BookletLine     Landmark
	ContentLine     Landmark
	ChamberNameLine Landmark
	CaseFileLine    Landmark

	FirstCaseFileSeen bool
}

// NewParseContext returns a reset context for one document.
func NewParseContext(filename string, pages int) *ParseContext {
	return &ParseContext{Filename: filename, Pages: pages}
}

// ChamberBand reports the vertical band holding the chamber index:
// strictly above the first case-file heading and below "contenido".
// ok is false when either landmark is missing or the band is empty.
func (pc *ParseContext) ChamberBand() (lower, upper float64, ok bool) {
	if !pc.CaseFileLine.Found || !pc.ContentLine.Found {
		return 0, 0, false
	}
	if pc.CaseFileLine.Y >= pc.ContentLine.Y {
		return 0, 0, false
	}
	return pc.CaseFileLine.Y, pc.ContentLine.Y, true
}
