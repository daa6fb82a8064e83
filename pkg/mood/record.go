// Package mood 定义情绪记录及其持久化
//
// 情绪记录由日记页（CLI 的 log 命令）追加保存；花园只读取，从不写回。
package mood

import (
	"fmt"
	"strings"
	"time"

	"github.com/decker502/moodgarden/pkg/calendar"
)

// Record 一条情绪记录，每次保存操作产生一条，同一天可以有多条
type Record struct {
	Emoji string `yaml:"emoji"`
	Text  string `yaml:"text"`
	Date  string `yaml:"date"` // YYYY-MM-DD
	Color string `yaml:"color"`
}

// EmojiColors 日记页可选的情绪表情及其日历底色
var EmojiColors = map[string]string{
	"😄": "#FFC8DD",
	"🙂": "#FFDFEA",
	"😐": "#E8E8E8",
	"😔": "#B8C6FF",
	"😡": "#FF9AA2",
	"😭": "#A0C4FF",
	"😴": "#E2CFEA",
	"🤩": "#FFD6A5",
}

// DefaultColor 未知表情使用的底色
const DefaultColor = "#ffffff"

// ColorFor 返回表情对应的底色
func ColorFor(emoji string) string {
	if c, ok := EmojiColors[emoji]; ok {
		return c
	}
	return DefaultColor
}

// ParseDate 解析记录日期
//
// 接受 YYYY-MM-DD，也兼容带时间的 RFC3339（只取日期部分）。
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if d, err := time.Parse(calendar.DateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NewRecord 按日记页的校验规则创建记录
//
// 规则：必须选择表情，必须写一句话，必须选择日期。颜色由表情决定。
func NewRecord(emoji, text, date string) (Record, error) {
	emoji = strings.TrimSpace(emoji)
	text = strings.TrimSpace(text)
	if emoji == "" {
		return Record{}, fmt.Errorf("please pick an emoji")
	}
	if text == "" {
		return Record{}, fmt.Errorf("please write a short note")
	}
	d, err := ParseDate(date)
	if err != nil {
		return Record{}, fmt.Errorf("please pick the date: %w", err)
	}
	return Record{
		Emoji: emoji,
		Text:  text,
		Date:  d.Format(calendar.DateLayout),
		Color: ColorFor(emoji),
	}, nil
}
