package extract

import (
	"testing"
	"time"
)

func TestParseIssueDate(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"CA20230512.pdf", time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC), true},
		{"12.05.2023.pdf", time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC), true},
		{"casaciones 3.06.2023.PDF", time.Date(2023, 6, 3, 0, 0, 0, 0, time.UTC), true},
		{"data/CA20230101.pdf", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"CA20230231.pdf", time.Time{}, false},
		{"31.13.2023.pdf", time.Time{}, false},
		{"bulletin.pdf", time.Time{}, false},
		{"12.05.2023.txt", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseIssueDate(tt.name)
		if ok != tt.wantOK {
			t.Errorf("%q: expected ok=%v, got %v", tt.name, tt.wantOK, ok)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
