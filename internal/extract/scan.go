package extract

import (
	"errors"
	"iter"

	"github.com/dgallion1/casgest/internal/parser"
)

// fold reduces a fragment stream into an accumulator.
func fold[S any](seq iter.Seq[parser.Fragment], acc S, step func(S, parser.Fragment) S) S {
	for f := range seq {
		acc = step(acc, f)
	}
	return acc
}

// nonBlank drops whitespace-only fragments.
func nonBlank(seq iter.Seq[parser.Fragment]) iter.Seq[parser.Fragment] {
	return func(yield func(parser.Fragment) bool) {
		for f := range seq {
			if parser.Blank(f.Text) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// below keeps fragments printed strictly below the given coordinate.
func below(seq iter.Seq[parser.Fragment], y float64) iter.Seq[parser.Fragment] {
	return func(yield func(parser.Fragment) bool) {
		for f := range seq {
			if f.Y >= y {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// pageFragments returns the non-blank fragments of a page. ok is false
// when the page does not exist in the document.
func pageFragments(doc parser.Document, page int) (seq iter.Seq[parser.Fragment], ok bool, err error) {
	seq, err = doc.Fragments(page)
	if errors.Is(err, parser.ErrPageOutOfRange) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return nonBlank(seq), true, nil
}
