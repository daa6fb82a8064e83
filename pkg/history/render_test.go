package history

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/mood"
)

func newTestPrinter() *Printer {
	// 写入缓冲区时 lipgloss 不输出颜色转义
	return NewPrinter(&bytes.Buffer{})
}

func TestFirstByDay(t *testing.T) {
	layout := calendar.NewMonthLayout(2026, time.February, 7)
	records := []mood.Record{
		{Emoji: "😄", Text: "morning", Date: "2026-02-01"},
		{Emoji: "😭", Text: "evening", Date: "2026-02-01"},
		{Emoji: "😔", Text: "later", Date: "2026-02-15"},
		{Emoji: "😡", Text: "other month", Date: "2026-03-01"},
		{Emoji: "😴", Text: "rfc date", Date: "2026-02-20T10:00:00Z"},
	}

	got := FirstByDay(layout, records)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d: %v", len(got), got)
	}
	if got[1].Text != "morning" {
		t.Errorf("day 1 should keep the first record, got %q", got[1].Text)
	}
	if got[15].Emoji != "😔" {
		t.Errorf("day 15 emoji = %q, want 😔", got[15].Emoji)
	}
}

func TestCalendar_Empty(t *testing.T) {
	p := newTestPrinter()
	layout := calendar.NewMonthLayout(2026, time.February, 7)

	out := p.Calendar(layout, nil)
	if !strings.Contains(out, EmptyMessage) {
		t.Errorf("expected empty message, got %q", out)
	}
	if strings.Contains(out, "February") {
		t.Errorf("empty history should not draw the grid, got %q", out)
	}
}

func TestCalendar_Grid(t *testing.T) {
	p := newTestPrinter()
	layout := calendar.NewMonthLayout(2026, time.February, 7)
	records := []mood.Record{
		{Emoji: "😄", Text: "morning", Date: "2026-02-01", Color: "#FFC8DD"},
		{Emoji: "😭", Text: "evening", Date: "2026-02-01", Color: "#A0C4FF"},
		{Emoji: "😔", Text: "later", Date: "2026-02-15", Color: "#B8C6FF"},
	}

	out := p.Calendar(layout, records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// 标题 + 星期 + 4 行（2026 年 2 月从周日开始，共 28 天）
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "February 2026") {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Su") || !strings.Contains(lines[1], "Sa") {
		t.Errorf("header line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], " 1 😄") {
		t.Errorf("first week should start with day 1 and its first emoji, got %q", lines[2])
	}
	if strings.Contains(out, "😭") {
		t.Errorf("later record of the same day should not be shown")
	}
	if !strings.Contains(lines[4], "15 😔") {
		t.Errorf("third week should contain day 15, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "28") {
		t.Errorf("last week should end with day 28, got %q", lines[5])
	}
}

func TestCalendar_LeadingBlanks(t *testing.T) {
	p := newTestPrinter()
	// 2026-10-01 是周四，前面有 4 个空白格
	layout := calendar.NewMonthLayout(2026, time.October, 7)
	records := []mood.Record{{Emoji: "🙂", Text: "ok", Date: "2026-10-03"}}

	out := p.Calendar(layout, records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+layout.Rows {
		t.Fatalf("expected %d lines, got %d", 2+layout.Rows, len(lines))
	}

	prefix := strings.Repeat(" ", 4*cellWidth) + " 1"
	if !strings.HasPrefix(lines[2], prefix) {
		t.Errorf("first week = %q, want prefix %q", lines[2], prefix)
	}
	if !strings.Contains(lines[2], " 3 🙂") {
		t.Errorf("first week should show the mood on day 3, got %q", lines[2])
	}
}

func TestList(t *testing.T) {
	p := newTestPrinter()

	if out := p.List(nil); !strings.Contains(out, EmptyMessage) {
		t.Errorf("expected empty message, got %q", out)
	}

	long := strings.Repeat("a", noteWidth+10)
	records := []mood.Record{
		{Emoji: "😄", Text: "sunny", Date: "2026-02-01"},
		{Emoji: "😐", Text: long, Date: "2026-02-02"},
	}
	out := p.List(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "2026-02-01  😄  sunny" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if strings.Contains(lines[1], long) {
		t.Errorf("long note should be truncated, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("truncated note should end with an ellipsis, got %q", lines[1])
	}
}

func TestComfort(t *testing.T) {
	p := newTestPrinter()
	if got := p.Comfort("be gentle"); got != "be gentle\n" {
		t.Errorf("Comfort() = %q", got)
	}
}
