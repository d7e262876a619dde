package parser

import (
	"bytes"
	"fmt"
	"iter"
	"math"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

const (
	// Glyphs whose baselines differ by no more than this belong to one fragment.
	baselineTolerance = 0.5
	// Horizontal gap, relative to font size, that reads as a word break.
	wordGapRatio = 0.2
)

// PDF is a Document backed by github.com/ledongthuc/pdf.
type PDF struct {
	reader *pdflib.Reader
	file   *os.File
}

// Open opens a PDF file. The caller must Close it.
func Open(path string) (*PDF, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDF{reader: reader, file: f}, nil
}

// FromBytes reads a PDF held in memory.
func FromBytes(data []byte) (*PDF, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return &PDF{reader: reader}, nil
}

// Close releases the underlying file, if any.
func (p *PDF) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

func (p *PDF) NumPage() int {
	return p.reader.NumPage()
}

func (p *PDF) page(n int) (pdflib.Page, error) {
	if n < 1 || n > p.reader.NumPage() {
		return pdflib.Page{}, fmt.Errorf("page %d of %d: %w", n, p.reader.NumPage(), ErrPageOutOfRange)
	}
	page := p.reader.Page(n)
	if page.V.IsNull() {
		return pdflib.Page{}, fmt.Errorf("page %d: missing page object", n)
	}
	return page, nil
}

// PageText returns the whole plain text of a page.
func (p *PDF) PageText(n int) (text string, err error) {
	page, err := p.page(n)
	if err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: decode text: %v", n, r)
		}
	}()
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: plain text: %w", n, err)
	}
	return norm.NFC.String(text), nil
}

// Fragments returns the page's text fragments in draw order.
func (p *PDF) Fragments(n int) (seq iter.Seq[Fragment], err error) {
	page, err := p.page(n)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: decode content: %v", n, r)
		}
	}()
	frags := groupFragments(page.Content().Text)
	return func(yield func(Fragment) bool) {
		for _, f := range frags {
			if !yield(f) {
				return
			}
		}
	}, nil
}

// groupFragments joins consecutive glyph runs sharing a baseline.
func groupFragments(texts []pdflib.Text) []Fragment {
	var (
		out   []Fragment
		buf   strings.Builder
		curY  float64
		lastX float64
		open  bool
	)
	flush := func() {
		if open {
			out = append(out, Fragment{Text: norm.NFC.String(buf.String()), Y: curY})
		}
		buf.Reset()
		open = false
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if open && math.Abs(t.Y-curY) > baselineTolerance {
			flush()
		}
		if !open {
			curY = t.Y
			open = true
		} else if gap := t.X - lastX; gap > t.FontSize*wordGapRatio && !endsWithSpace(&buf) && !strings.HasPrefix(t.S, " ") {
			buf.WriteByte(' ')
		}
		buf.WriteString(t.S)
		lastX = t.X + t.W
	}
	flush()
	return out
}

func endsWithSpace(b *strings.Builder) bool {
	s := b.String()
	return s != "" && s[len(s)-1] == ' '
}
