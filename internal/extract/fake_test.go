package extract

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/dgallion1/casgest/internal/parser"
)

// fakeDoc is an in-memory positioned-text document.
type fakeDoc struct {
	pages [][]parser.Fragment
	texts map[int]string
	calls map[int]int
}

func newFakeDoc(pages ...[]parser.Fragment) *fakeDoc {
	return &fakeDoc{pages: pages, texts: map[int]string{}, calls: map[int]int{}}
}

func (d *fakeDoc) NumPage() int { return len(d.pages) }

func (d *fakeDoc) PageText(page int) (string, error) {
	if page < 1 || page > len(d.pages) {
		return "", fmt.Errorf("page %d: %w", page, parser.ErrPageOutOfRange)
	}
	return d.texts[page], nil
}

func (d *fakeDoc) Fragments(page int) (iter.Seq[parser.Fragment], error) {
	if page < 1 || page > len(d.pages) {
		return nil, fmt.Errorf("page %d: %w", page, parser.ErrPageOutOfRange)
	}
	d.calls[page]++
	frags := d.pages[page-1]
	return func(yield func(parser.Fragment) bool) {
		for _, f := range frags {
			if !yield(f) {
				return
			}
		}
	}, nil
}

func frag(y float64, text string) parser.Fragment {
	return parser.Fragment{Text: text, Y: y}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// firstPage is a typical cover page: booklet number at the top, the
// "Contenido" heading, the chamber index, then the first case-file heading.
func firstPage() []parser.Fragment {
	return []parser.Fragment{
		frag(800, "Año XLI / Nº 17234"),
		frag(760, "   "),
		frag(740, "Contenido"),
		frag(720, "SALA PENAL PERMANENTE ..... 2"),
		frag(700, "SALA CIVIL TRANSITORIA ..... 4"),
		frag(690, "sin número en esta línea"),
		frag(600, "CASACIÓN Nº 1111-2020 LIMA ..... 2"),
		frag(580, "CASACIÓN Nº 2222-2020 PUNO ..... 3"),
	}
}

// errDoc fails every page read.
type errDoc struct {
	err error
}

func (d *errDoc) NumPage() int { return 1 }

func (d *errDoc) PageText(int) (string, error) { return "", d.err }

func (d *errDoc) Fragments(int) (iter.Seq[parser.Fragment], error) { return nil, d.err }

const sampleIndexText = "Índice\n\n" +
	"CASACIÓN Nº 1111-2020 LIMA\nSUMILLA: texto de la sumilla\n3\n" +
	"CASACIÓN Nº 4444-2021 AREQUIPA 3\n" +
	"CASACIÓN Nº 5555-2022 TACNA 4\nSUMILLA: otra sumilla\n"

// sampleDoc is a five-page bulletin with two chambers and an index page.
func sampleDoc() *fakeDoc {
	doc := newFakeDoc(
		firstPage(),
		[]parser.Fragment{
			frag(800, "Año XLI / Nº 17234"),
			frag(760, "SALA PENAL PERMANENTE"),
			frag(740, "CASACIÓN Nº 1111-2020 LIMA ..... 3"),
			frag(720, "CASACIÓN Nº 3333-2021 CUSCO"),
			frag(710, "Sentencia 3"),
			frag(690, "texto de la resolución"),
		},
		[]parser.Fragment{
			frag(800, "SALA PENAL PERMANENTE"),
			frag(720, "CASACIÓN Nº 9999-2020 HEADER 1"),
			frag(700, "CASACIÓN Nº 4444-2021 AREQUIPA ..... 3"),
			frag(690, "texto de la resolución"),
		},
		[]parser.Fragment{
			frag(760, "SALA CIVIL TRANSITORIA"),
			frag(740, "CASACIÓN Nº 2222-2020 PUNO ..... 4"),
		},
		[]parser.Fragment{
			frag(800, "Índice"),
		},
	)
	doc.texts[5] = sampleIndexText
	return doc
}
