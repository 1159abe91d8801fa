package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v, expected {1 1 8 4}", r)
	}

	tiny := NewRect(0, 0, 1, 1).Inset(1)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset past zero should clamp, got %+v", tiny)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestActionCursorDelta(t *testing.T) {
	tests := []struct {
		action     Action
		dRow, dCol int
		ok         bool
	}{
		{ActionCursorUp, -1, 0, true},
		{ActionCursorDown, 1, 0, true},
		{ActionCursorLeft, 0, -1, true},
		{ActionCursorRight, 0, 1, true},
		{ActionStep, 0, 0, false},
	}

	for _, tc := range tests {
		dRow, dCol, ok := tc.action.CursorDelta()
		if dRow != tc.dRow || dCol != tc.dCol || ok != tc.ok {
			t.Errorf("%v.CursorDelta() = (%d, %d, %v), expected (%d, %d, %v)",
				tc.action, dRow, dCol, ok, tc.dRow, tc.dCol, tc.ok)
		}
	}

	if ActionSolve.String() != "Solve" || Action(999).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
