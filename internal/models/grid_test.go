package models

import (
	"errors"
	"strings"
	"testing"
)

func TestGridState_SelectNextPrevAreInverse(t *testing.T) {
	for rowCount := 1; rowCount <= 7; rowCount++ {
		for start := 0; start < rowCount; start++ {
			g := NewGridState()
			g.SetVisibleHeight(3)
			g.SelectedRow = start

			g.SelectNext(rowCount)
			g.SelectPrev(rowCount)
			if g.SelectedRow != start {
				t.Errorf("rows=%d start=%d: next/prev returned to %d", rowCount, start, g.SelectedRow)
			}

			g.SelectPrev(rowCount)
			g.SelectNext(rowCount)
			if g.SelectedRow != start {
				t.Errorf("rows=%d start=%d: prev/next returned to %d", rowCount, start, g.SelectedRow)
			}
		}
	}
}

func TestGridState_NoRowsIsNoOp(t *testing.T) {
	g := NewGridState()
	g.SelectNext(0)
	g.SelectPrev(0)
	g.SelectLast(0)
	g.ScrollToVerticalRatio(0.5, 0)
	if g.SelectedRow != 0 || g.ScrollOffset != 0 {
		t.Errorf("Expected untouched state, got row=%d offset=%d", g.SelectedRow, g.ScrollOffset)
	}
}

func TestGridState_ViewportContainsSelection(t *testing.T) {
	g := NewGridState()
	g.SetVisibleHeight(4)
	rowCount := 11

	moves := "nnnnnnnnppnnnnnnnnnnnppppppppppppnpnpnnn"
	for i, m := range moves {
		if m == 'n' {
			g.SelectNext(rowCount)
		} else {
			g.SelectPrev(rowCount)
		}
		if g.SelectedRow < g.ScrollOffset || g.SelectedRow >= g.ScrollOffset+g.VisibleHeight {
			t.Fatalf("move %d: row %d outside window [%d,%d)", i, g.SelectedRow, g.ScrollOffset, g.ScrollOffset+g.VisibleHeight)
		}
	}
}

func TestGridState_MinimalScroll(t *testing.T) {
	g := NewGridState()
	g.SetVisibleHeight(3)

	g.SelectNext(10) // 1
	g.SelectNext(10) // 2
	if g.ScrollOffset != 0 {
		t.Errorf("Expected offset 0, got %d", g.ScrollOffset)
	}
	g.SelectNext(10) // 3
	if g.ScrollOffset != 1 {
		t.Errorf("Expected offset 1 with selection as last visible row, got %d", g.ScrollOffset)
	}

	g.SelectPrev(10) // 2
	if g.ScrollOffset != 1 {
		t.Errorf("Expected offset to stay 1, got %d", g.ScrollOffset)
	}

	g.SelectedRow = 0
	g.SelectPrev(10) // wraps to 9
	if g.SelectedRow != 9 || g.ScrollOffset != 7 {
		t.Errorf("Expected row 9 offset 7, got row %d offset %d", g.SelectedRow, g.ScrollOffset)
	}

	g.SelectNext(10) // wraps to 0
	if g.SelectedRow != 0 || g.ScrollOffset != 0 {
		t.Errorf("Expected row 0 offset 0, got row %d offset %d", g.SelectedRow, g.ScrollOffset)
	}
}

func TestGridState_HorizontalScrollClamped(t *testing.T) {
	g := NewGridState()

	g.ScrollLeft()
	if g.HorizontalScroll != 0 {
		t.Errorf("Expected 0, got %d", g.HorizontalScroll)
	}

	for i := 0; i < 5; i++ {
		g.ScrollRight(3)
	}
	if g.HorizontalScroll != 3 {
		t.Errorf("Expected clamp at 3, got %d", g.HorizontalScroll)
	}

	g.ScrollLeft()
	if g.HorizontalScroll != 2 {
		t.Errorf("Expected 2, got %d", g.HorizontalScroll)
	}
}

func TestGridState_Reset(t *testing.T) {
	g := NewGridState()
	g.SelectedRow = 4
	g.ScrollOffset = 2
	g.HorizontalScroll = 1
	g.ColumnWidths = []int{12, 20}

	g.Reset()
	if g.SelectedRow != 0 || g.ScrollOffset != 0 || g.HorizontalScroll != 0 || g.ColumnWidths != nil {
		t.Errorf("Expected cleared state, got %+v", g)
	}
}

func TestGridState_CalculateColumnWidths(t *testing.T) {
	result := QueryResult{
		Columns: []string{"id", "description", "payload"},
		Rows: [][]string{
			{"1", "short", strings.Repeat("x", 80)},
			{"2", "a somewhat longer text value", "y"},
		},
	}

	g := NewGridState()
	g.CalculateColumnWidths(result)

	expected := []int{12, 30, 50}
	if len(g.ColumnWidths) != len(expected) {
		t.Fatalf("Expected %d widths, got %d", len(expected), len(g.ColumnWidths))
	}
	for i := range expected {
		if g.ColumnWidths[i] != expected[i] {
			t.Errorf("Column %d: expected width %d, got %d", i, expected[i], g.ColumnWidths[i])
		}
	}
}

func TestGridState_EnsureColumnWidthsCaches(t *testing.T) {
	g := NewGridState()
	first := QueryResult{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}
	g.EnsureColumnWidths(first)

	g.ColumnWidths[0] = 33
	same := QueryResult{Columns: []string{"c", "d"}, Rows: [][]string{{strings.Repeat("z", 40), "2"}}}
	g.EnsureColumnWidths(same)
	if g.ColumnWidths[0] != 33 {
		t.Errorf("Expected cached width 33, got %d", g.ColumnWidths[0])
	}

	wider := QueryResult{Columns: []string{"a", "b", "c"}}
	g.EnsureColumnWidths(wider)
	if len(g.ColumnWidths) != 3 {
		t.Errorf("Expected recalculation for 3 columns, got %d", len(g.ColumnWidths))
	}
}

func TestGridState_ScrollToRatio(t *testing.T) {
	g := NewGridState()
	g.SetVisibleHeight(5)

	g.ScrollToVerticalRatio(1, 101)
	if g.SelectedRow != 100 {
		t.Errorf("Expected last row, got %d", g.SelectedRow)
	}
	if g.ScrollOffset != 96 {
		t.Errorf("Expected offset 96, got %d", g.ScrollOffset)
	}

	g.ScrollToVerticalRatio(0.5, 101)
	if g.SelectedRow != 50 {
		t.Errorf("Expected row 50, got %d", g.SelectedRow)
	}

	g.ScrollToHorizontalRatio(2, 4)
	if g.HorizontalScroll != 4 {
		t.Errorf("Expected horizontal 4, got %d", g.HorizontalScroll)
	}
	g.ScrollToHorizontalRatio(0.5, 0)
	if g.HorizontalScroll != 0 {
		t.Errorf("Expected horizontal 0, got %d", g.HorizontalScroll)
	}
}

func TestGridState_MaxHorizontalScroll(t *testing.T) {
	g := NewGridState()
	g.ColumnWidths = []int{20, 20, 20}

	if got := g.MaxHorizontalScroll(100); got != 0 {
		t.Errorf("Expected 0 when everything fits, got %d", got)
	}
	if got := g.MaxHorizontalScroll(42); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := g.MaxHorizontalScroll(10); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult(errors.New("syntax error at or near \"SELEC\""))

	if !result.IsError() {
		t.Error("Expected error result")
	}
	if len(result.Rows) != 1 || len(result.Rows[0]) != 1 {
		t.Fatalf("Expected one row with one cell, got %v", result.Rows)
	}
	if result.Columns[0] != "Error" {
		t.Errorf("Expected column 'Error', got %q", result.Columns[0])
	}
	if result.RowsAffected != 0 {
		t.Errorf("Expected 0 rows affected, got %d", result.RowsAffected)
	}
}

func TestFocusRing(t *testing.T) {
	f := FocusSidebar
	order := []Focus{FocusQueryEditor, FocusQueryButtons, FocusResultGrid, FocusSidebar}
	for _, expected := range order {
		f = f.Next()
		if f != expected {
			t.Errorf("Expected %s, got %s", expected, f)
		}
	}
	for i := len(order) - 2; i >= 0; i-- {
		f = f.Prev()
		if f != order[i] {
			t.Errorf("Expected %s, got %s", order[i], f)
		}
	}
}

func TestQueryButtonCycle(t *testing.T) {
	if ButtonNone.Next() != ButtonRun || ButtonNone.Prev() != ButtonCopy {
		t.Error("Expected None to enter at Run going forward and Copy going backward")
	}
	b := ButtonRun
	for _, expected := range []QueryButton{ButtonClear, ButtonCopy, ButtonRun} {
		b = b.Next()
		if b != expected {
			t.Errorf("Expected %s, got %s", expected, b)
		}
	}
	for _, expected := range []QueryButton{ButtonCopy, ButtonClear, ButtonRun} {
		b = b.Prev()
		if b != expected {
			t.Errorf("Expected %s, got %s", expected, b)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Error("Expected corners inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) || r.Contains(1, 3) {
		t.Error("Expected edges outside")
	}
	if (Rect{}).Contains(0, 0) {
		t.Error("Expected empty rect to contain nothing")
	}
}
