// Package calendar 提供月历网格的布局计算
//
// 历史页和花园使用同一套布局：第一行开头按该月 1 号的星期几（周日为 0）留空，
// 之后按天从左到右、从上到下排列，每行 columns 格。
package calendar

import (
	"fmt"
	"time"
)

// DateLayout 情绪记录使用的日期格式（YYYY-MM-DD）
const DateLayout = "2006-01-02"

// MonthLayout 某个月份在网格上的布局
type MonthLayout struct {
	Year        int
	Month       time.Month
	FirstOffset int // 1 号之前的空白格数量（1 号的星期几，周日为 0）
	DaysInMonth int
	Columns     int
	Rows        int // 容纳空白格和所有日期所需的行数
}

// NewMonthLayout 计算 year-month 在 columns 列网格上的布局
func NewMonthLayout(year int, month time.Month, columns int) MonthLayout {
	if columns <= 0 {
		columns = 7
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	total := offset + days
	rows := (total + columns - 1) / columns

	return MonthLayout{
		Year:        year,
		Month:       month,
		FirstOffset: offset,
		DaysInMonth: days,
		Columns:     columns,
		Rows:        rows,
	}
}

// ForTime 返回 t 所在月份的布局
func ForTime(t time.Time, columns int) MonthLayout {
	return NewMonthLayout(t.Year(), t.Month(), columns)
}

// ParseMonth 解析 "YYYY-MM" 格式的月份
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// Contains 判断日期是否属于该月份
func (l MonthLayout) Contains(d time.Time) bool {
	return d.Year() == l.Year && d.Month() == l.Month
}

// Slot 返回某天在网格中的格子序号（包含前导空白）
func (l MonthLayout) Slot(day int) int {
	return l.FirstOffset + day - 1
}

// Cell 返回某天所在的列和行
// day 超出 [1, DaysInMonth] 时 ok 为 false
func (l MonthLayout) Cell(day int) (col, row int, ok bool) {
	if day < 1 || day > l.DaysInMonth {
		return 0, 0, false
	}
	slot := l.Slot(day)
	return slot % l.Columns, slot / l.Columns, true
}

// IsLeadingBlank 判断格子序号是否位于 1 号之前的空白区
func (l MonthLayout) IsLeadingBlank(slot int) bool {
	return slot < l.FirstOffset
}

// DayAt 返回格子 (col, row) 上的日期；空白格返回 0
func (l MonthLayout) DayAt(col, row int) int {
	day := row*l.Columns + col - l.FirstOffset + 1
	if day < 1 || day > l.DaysInMonth {
		return 0
	}
	return day
}

// FormatDate 把该月的某一天格式化为 YYYY-MM-DD
func (l MonthLayout) FormatDate(day int) string {
	return time.Date(l.Year, l.Month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// Title 返回月份标题，例如 "October 2026"
func (l MonthLayout) Title() string {
	return fmt.Sprintf("%s %d", l.Month, l.Year)
}
