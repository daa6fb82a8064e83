package calendar

import (
	"testing"
	"time"
)

func TestNewMonthLayout(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month      time.Month
		wantOffset int
		wantDays   int
		wantRows   int
	}{
		// 2026-10-01 是星期四
		{"october 2026", 2026, time.October, 4, 31, 5},
		// 2026-02-01 是星期日，28 天正好 4 行
		{"february 2026", 2026, time.February, 0, 28, 4},
		// 2024 闰年二月，1 号星期四
		{"leap february 2024", 2024, time.February, 4, 29, 5},
		// 2026-08-01 是星期六，需要 6 行
		{"august 2026", 2026, time.August, 6, 31, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewMonthLayout(tt.year, tt.month, 7)
			if l.FirstOffset != tt.wantOffset {
				t.Errorf("FirstOffset = %d, want %d", l.FirstOffset, tt.wantOffset)
			}
			if l.DaysInMonth != tt.wantDays {
				t.Errorf("DaysInMonth = %d, want %d", l.DaysInMonth, tt.wantDays)
			}
			if l.Rows != tt.wantRows {
				t.Errorf("Rows = %d, want %d", l.Rows, tt.wantRows)
			}
		})
	}
}

func TestCell(t *testing.T) {
	l := NewMonthLayout(2026, time.October, 7)

	tests := []struct {
		day    int
		col    int
		row    int
		wantOK bool
	}{
		{1, 4, 0, true},
		{3, 6, 0, true},
		{4, 0, 1, true},
		{31, 6, 4, true},
		{0, 0, 0, false},
		{32, 0, 0, false},
	}
	for _, tt := range tests {
		col, row, ok := l.Cell(tt.day)
		if ok != tt.wantOK {
			t.Errorf("Cell(%d) ok = %v, want %v", tt.day, ok, tt.wantOK)
			continue
		}
		if ok && (col != tt.col || row != tt.row) {
			t.Errorf("Cell(%d) = (%d, %d), want (%d, %d)", tt.day, col, row, tt.col, tt.row)
		}
	}
}

func TestDayAtInvertsCell(t *testing.T) {
	l := NewMonthLayout(2026, time.August, 7)
	for day := 1; day <= l.DaysInMonth; day++ {
		col, row, _ := l.Cell(day)
		if got := l.DayAt(col, row); got != day {
			t.Errorf("DayAt(Cell(%d)) = %d", day, got)
		}
	}
	if l.DayAt(0, 0) != 0 {
		t.Error("leading blank should map to day 0")
	}
	if !l.IsLeadingBlank(5) || l.IsLeadingBlank(6) {
		t.Error("IsLeadingBlank mismatch for offset 6")
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2026-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2026 || m != time.October {
		t.Errorf("ParseMonth = %d-%d", y, m)
	}
	if _, _, err := ParseMonth("10/2026"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestFormatDateAndContains(t *testing.T) {
	l := NewMonthLayout(2026, time.October, 7)
	if got := l.FormatDate(5); got != "2026-10-05" {
		t.Errorf("FormatDate(5) = %s", got)
	}
	if !l.Contains(time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("October 31 should be contained")
	}
	if l.Contains(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("October of another year should not be contained")
	}
}
