package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/extract"
	"github.com/fumiama/go-docx"
)

func sampleBooklet() *booklet.Booklet {
	bk := &booklet.Booklet{
		Number:       "17234",
		IssueDate:    time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC),
		HasIssueDate: true,
		Filename:     "CA20230512.pdf",
		Pages:        40,
	}
	penal := &booklet.Chamber{Name: "SALA PENAL PERMANENTE", StartingPage: 2}
	penal.AddCaseFile(&booklet.CaseFile{Code: "casación n. 1234-2021 lima", Page: 3, Tag: booklet.TagSentencia})
	penal.AddCaseFile(&booklet.CaseFile{Code: "casación n. 88-2022 cusco", Page: 9})
	civil := &booklet.Chamber{Name: "SALA CIVIL TRANSITORIA", StartingPage: 20}
	bk.AddChamber(penal)
	bk.AddChamber(civil)
	return bk
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, sampleBooklet()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Booklet 17234",
		"- Issue date: 2023-05-12",
		"- Case files: 2",
		"## SALA PENAL PERMANENTE (page 2)",
		"| casación n. 1234-2021 lima | 3 | Sentencia |",
		"| casación n. 88-2022 cusco | 9 |  |",
		"## SALA CIVIL TRANSITORIA (page 20)\n\nNo case files found.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownWithoutIssueDate(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, &booklet.Booklet{Filename: "x.pdf"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "Issue date") {
		t.Errorf("unexpected issue date line:\n%s", out)
	}
	if !strings.Contains(out, "# Booklet (sin número)") {
		t.Errorf("missing placeholder title:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, sampleBooklet()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Booklet 17234</title>",
		"<h1>Booklet 17234</h1>",
		"<table>",
		"<td>casación n. 1234-2021 lima</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q\n%s", want, out)
		}
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleBooklet()); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	want := []string{"2023-05-12", "17234", "SALA PENAL PERMANENTE", "2", "casación n. 1234-2021 lima", "3", "Sentencia"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("row 1 col %d = %q, want %q", i, rows[1][i], v)
		}
	}
	if rows[2][6] != "" {
		t.Errorf("untagged row tag = %q", rows[2][6])
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, &booklet.Booklet{}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(csvHeader, ",") {
		t.Errorf("got %q", got)
	}
}

func TestDOCX(t *testing.T) {
	var buf bytes.Buffer
	if err := DOCX(&buf, sampleBooklet()); err != nil {
		t.Fatal(err)
	}

	doc, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("parse generated docx: %v", err)
	}

	var paras []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		paras = append(paras, sb.String())
	}

	joined := strings.Join(paras, "\n")
	for _, want := range []string{
		"Booklet 17234",
		"Issue date: 2023-05-12",
		"SALA PENAL PERMANENTE (page 2)",
		"casación n. 1234-2021 lima, page 3, Sentencia",
		"casación n. 88-2022 cusco, page 9",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("docx missing %q\n%s", want, joined)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatMarkdown,
		"md":    FormatMarkdown,
		".HTML": FormatHTML,
		"csv":   FormatCSV,
		"docx":  FormatDOCX,
		"json":  FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleBooklet()); err != nil {
		t.Fatal(err)
	}
	var snap booklet.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.IssueDate != "2023-05-12" || len(snap.Chambers) != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestStages(t *testing.T) {
	rep := &extract.Report{
		Filename:      "CA20230512.pdf",
		IssueDate:     extract.Found,
		BookletNumber: extract.Found,
		ContentLine:   extract.Landmark{Y: 640.5, Found: true},
		ChamberBand:   extract.NotFound,
		Chambers: []extract.ChamberReport{{
			Name:     "SALA PENAL PERMANENTE",
			Title:    extract.Found,
			Assembly: extract.AssemblyResult{PhaseA: extract.Found, PhaseB: extract.Skipped, EndPage: 3, Found: 2},
		}},
		Index: extract.Skipped,
	}

	var buf bytes.Buffer
	if err := Stages(&buf, rep); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"y=640.50", "case file line", "SALA PENAL PERMANENTE", "phase B skipped", "end page 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("stages missing %q\n%s", want, out)
		}
	}
}
