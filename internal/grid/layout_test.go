package grid

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLayout(t *testing.T) {
	text := `
S..#
.#..
...E
`
	layout, err := ParseLayoutString(text)
	if err != nil {
		t.Fatalf("ParseLayoutString failed: %v", err)
	}

	g := layout.Grid
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("expected 3x4, got %dx%d", g.Rows(), g.Cols())
	}
	if !layout.HasStart || layout.Start != P(0, 0) {
		t.Errorf("start = %v (found=%v), expected 0,0", layout.Start, layout.HasStart)
	}
	if !layout.HasEnd || layout.End != P(2, 3) {
		t.Errorf("end = %v (found=%v), expected 2,3", layout.End, layout.HasEnd)
	}
	if g.CountWalls() != 2 {
		t.Errorf("expected 2 walls, got %d", g.CountWalls())
	}

	if got := Format(g); got != strings.TrimSpace(text) {
		t.Errorf("Format round-trip mismatch:\n%s\nexpected:\n%s", got, strings.TrimSpace(text))
	}
}

func TestParseLayoutPadsShortRows(t *testing.T) {
	layout, err := ParseLayout([]string{"S....", "#", "...E"})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	if layout.Grid.Cols() != 5 {
		t.Errorf("expected width 5, got %d", layout.Grid.Cols())
	}
	if layout.Grid.At(P(1, 4)) != Empty {
		t.Error("padding cells should be empty")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"blank", []string{"", "   "}},
		{"bad char", []string{"S.x.E"}},
		{"two starts", []string{"S.S", "..E"}},
		{"two ends", []string{"S.E", "..E"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLayout(tc.lines); err == nil {
				t.Errorf("expected error for %v", tc.lines)
			}
		})
	}

	if _, err := ParseLayout(nil); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
}
