package extract

import (
	"testing"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/parser"
)

func codes(ch *booklet.Chamber) []string {
	out := make([]string, 0, len(ch.CaseFiles))
	for _, cf := range ch.CaseFiles {
		out = append(out, cf.Code)
	}
	return out
}

func TestAssembleCaseFiles_TwoPhases(t *testing.T) {
	doc := sampleDoc()
	ch := &booklet.Chamber{Name: "SALA PENAL PERMANENTE", StartingPage: 2, TitleLine: 760, TitleFound: true}

	res, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"casación n. 1111-2020 lima",
		"casación n. 3333-2021 cusco",
		"casación n. 4444-2021 arequipa",
	}
	got := codes(ch)
	if len(got) != len(want) {
		t.Fatalf("expected %d case files, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("case file[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
	if ch.CaseFiles[1].Page != 3 {
		t.Errorf("expected merged entry on page 3, got %d", ch.CaseFiles[1].Page)
	}
	if res.PhaseA != Found || res.PhaseB != Found {
		t.Errorf("expected both phases found, got %+v", res)
	}
	if res.EndPage != 3 || res.Found != 3 {
		t.Errorf("unexpected result %+v", res)
	}
	// Page 4 belongs to the next chamber and must not be read.
	if doc.calls[4] != 0 {
		t.Errorf("expected page 4 untouched, read %d times", doc.calls[4])
	}
}

func TestAssembleCaseFiles_OnlyBelowTitle(t *testing.T) {
	doc := newFakeDoc(
		[]parser.Fragment{},
		[]parser.Fragment{
			frag(780, "CASACIÓN Nº 1-2020 LIMA 2"),
			frag(760, "SALA UNO"),
			frag(740, "CASACIÓN Nº 2-2020 PUNO 2"),
		},
	)
	ch := &booklet.Chamber{Name: "SALA UNO", StartingPage: 2, TitleLine: 760, TitleFound: true}
	if _, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := codes(ch)
	if len(got) != 1 || got[0] != "casación n. 2-2020 puno" {
		t.Errorf("expected only the entry below the title, got %v", got)
	}
}

func TestAssembleCaseFiles_MissingTitleSelectsNothing(t *testing.T) {
	doc := sampleDoc()
	ch := &booklet.Chamber{Name: "SALA PENAL PERMANENTE", StartingPage: 2}

	res, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.CaseFiles) != 0 {
		t.Errorf("expected no case files, got %v", codes(ch))
	}
	if res.PhaseA != NotFound || res.PhaseB != Skipped {
		t.Errorf("expected phase A not found and phase B skipped, got %+v", res)
	}
	if doc.calls[3] != 0 {
		t.Errorf("expected continuation page untouched, read %d times", doc.calls[3])
	}
}

func TestAssembleCaseFiles_EndPageClampedToDocument(t *testing.T) {
	doc := newFakeDoc(
		[]parser.Fragment{},
		[]parser.Fragment{
			frag(760, "SALA UNO"),
			frag(740, "CASACIÓN Nº 1-2020 LIMA 40"),
		},
		[]parser.Fragment{
			frag(700, "CASACIÓN Nº 2-2020 PUNO 41"),
		},
	)
	ch := &booklet.Chamber{Name: "SALA UNO", StartingPage: 2, TitleLine: 760, TitleFound: true}
	res, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EndPage != 3 {
		t.Errorf("expected end page clamped to 3, got %d", res.EndPage)
	}
	if len(ch.CaseFiles) != 2 {
		t.Errorf("expected 2 case files, got %v", codes(ch))
	}
}

func TestAssembleCaseFiles_StartingPageOutsideDocument(t *testing.T) {
	doc := newFakeDoc([]parser.Fragment{})
	ch := &booklet.Chamber{Name: "SALA UNO", StartingPage: 7}
	res, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PhaseA != Skipped || res.PhaseB != Skipped {
		t.Errorf("expected both phases skipped, got %+v", res)
	}
}

func TestAssembleCaseFiles_ContinuationSpansPages(t *testing.T) {
	// The first part is the last line of the starting page and its page
	// number is the first body line of the next page.
	doc := newFakeDoc(
		[]parser.Fragment{},
		[]parser.Fragment{
			frag(760, "SALA UNO"),
			frag(740, "CASACIÓN Nº 1-2020 LIMA 3"),
			frag(100, "CASACIÓN Nº 2-2020 PUNO"),
		},
		[]parser.Fragment{
			frag(800, "SALA UNO"),
			frag(700, "Auto 3"),
		},
	)
	ch := &booklet.Chamber{Name: "SALA UNO", StartingPage: 2, TitleLine: 760, TitleFound: true}
	if _, err := AssembleCaseFiles(doc, ch, DefaultBodyStart, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := codes(ch)
	if len(got) != 2 || got[1] != "casación n. 2-2020 puno" {
		t.Errorf("expected the split entry to be merged across pages, got %v", got)
	}
}
