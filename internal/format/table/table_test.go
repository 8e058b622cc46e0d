package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"inbox", "3", "triage"},
		{"archive", "120", "old"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"inbox      3  triage",
		"archive  120  old",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresCellsNotBytes(t *testing.T) {
	rows := [][]string{
		{"\x1b[1mbold\x1b[0m", "x"},
		{"日本", "y"},
		{"ab", "z"},
	}
	got := Format(rows, nil)
	want := []string{
		"\x1b[1mbold\x1b[0m  x",
		"日本  y",
		"ab    z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
