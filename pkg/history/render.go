// Package history 在终端中输出情绪历史（月历和列表）
//
// 月历的规则与花园不同：每一天展示该日期的第一条记录，
// 花园则以最后保存的记录为准。
package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/mood"
)

// EmptyMessage 没有任何记录时的提示
const EmptyMessage = "No moods saved yet. Record one with `moodgarden log`. 🌱"

// cellWidth 月历每格的显示宽度（"31 😄" 占 5 列，再留 1 列间隔）
const cellWidth = 6

// noteWidth 列表中心情文字的最大显示宽度
const noteWidth = 40

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Printer 使用 lipgloss 渲染历史输出
//
// 颜色能力由输出目标决定：写入非终端（管道、文件、测试缓冲区）时不输出转义序列。
type Printer struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	header   lipgloss.Style
	muted    lipgloss.Style
	comfort  lipgloss.Style
}

// NewPrinter 创建面向 w 的输出器
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		renderer: r,
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF75B5")),
		header:  r.NewStyle().Foreground(lipgloss.Color("#888888")),
		muted:   r.NewStyle().Faint(true),
		comfort: r.NewStyle().Italic(true).Foreground(lipgloss.Color("#FF75B5")),
	}
}

// FirstByDay 返回该月每一天的第一条记录（按日期字符串精确匹配）
func FirstByDay(layout calendar.MonthLayout, records []mood.Record) map[int]mood.Record {
	out := make(map[int]mood.Record)
	for day := 1; day <= layout.DaysInMonth; day++ {
		date := layout.FormatDate(day)
		for _, r := range records {
			if r.Date == date {
				out[day] = r
				break
			}
		}
	}
	return out
}

// Calendar 渲染月历
//
// 没有任何记录时只输出 EmptyMessage，不画网格。
func (p *Printer) Calendar(layout calendar.MonthLayout, records []mood.Record) string {
	if len(records) == 0 {
		return p.muted.Render(EmptyMessage) + "\n"
	}

	byDay := FirstByDay(layout, records)
	gridWidth := cellWidth*layout.Columns - 1

	var b strings.Builder
	b.WriteString(p.title.Render(centerText(layout.Title(), gridWidth)))
	b.WriteByte('\n')

	heads := make([]string, layout.Columns)
	for i := range heads {
		name := ""
		if i < len(weekdays) {
			name = weekdays[i]
		}
		heads[i] = runewidth.FillRight(name, cellWidth-1)
	}
	b.WriteString(p.header.Render(strings.Join(heads, " ")))
	b.WriteByte('\n')

	for row := 0; row < layout.Rows; row++ {
		cells := make([]string, layout.Columns)
		for col := 0; col < layout.Columns; col++ {
			cells[col] = p.dayCell(layout.DayAt(col, row), byDay)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Printer) dayCell(day int, byDay map[int]mood.Record) string {
	if day == 0 {
		return strings.Repeat(" ", cellWidth-1)
	}
	r, ok := byDay[day]
	if !ok {
		return runewidth.FillRight(fmt.Sprintf("%2d", day), cellWidth-1)
	}
	content := runewidth.FillRight(fmt.Sprintf("%2d %s", day, r.Emoji), cellWidth-1)
	return p.renderer.NewStyle().
		Background(lipgloss.Color(colorOrDefault(r.Color))).
		Foreground(lipgloss.Color("#333333")).
		Render(content)
}

// List 按保存顺序渲染全部记录：日期、表情、心情文字
func (p *Printer) List(records []mood.Record) string {
	if len(records) == 0 {
		return p.muted.Render(EmptyMessage) + "\n"
	}

	emojiWidth := 2
	for _, r := range records {
		if w := runewidth.StringWidth(r.Emoji); w > emojiWidth {
			emojiWidth = w
		}
	}

	var b strings.Builder
	for _, r := range records {
		date := runewidth.FillRight(r.Date, len(calendar.DateLayout))
		emoji := runewidth.FillRight(r.Emoji, emojiWidth)
		note := runewidth.Truncate(r.Text, noteWidth, "…")
		fmt.Fprintf(&b, "%s  %s  %s\n", p.header.Render(date), emoji, note)
	}
	return b.String()
}

// Comfort 渲染一条安慰话语
func (p *Printer) Comfort(msg string) string {
	return p.comfort.Render(msg) + "\n"
}

func centerText(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

func colorOrDefault(c string) string {
	if c == "" {
		return mood.DefaultColor
	}
	return c
}
