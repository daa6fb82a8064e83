package systems

import (
	"fmt"
	"math/rand"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/ecs"
)

// BubbleSystem 管理花朵信息气泡的显示与自动隐藏
//
// 同一时间只有一个气泡。再次显示会覆盖内容并重新计时，
// 旧的计时不会提前把新内容隐藏。
type BubbleSystem struct {
	entityManager *ecs.EntityManager
	bubbleID      ecs.EntityID
	rng           *rand.Rand
	messages      []string
	duration      float64 // 显示时长（秒）
}

// NewBubbleSystem 创建气泡系统
// 参数:
//   - bubbleID: 持有 BubbleComponent 的实体
//   - messages: 随机抽取的安慰话语（不能为空）
//   - duration: 自动隐藏时间（秒）
func NewBubbleSystem(em *ecs.EntityManager, bubbleID ecs.EntityID, rng *rand.Rand, messages []string, duration float64) *BubbleSystem {
	return &BubbleSystem{
		entityManager: em,
		bubbleID:      bubbleID,
		rng:           rng,
		messages:      messages,
		duration:      duration,
	}
}

// Show 显示某朵花的信息：图标 + 随机安慰话语、记录文字、日期
func (s *BubbleSystem) Show(flower *components.FlowerComponent) {
	b := s.Bubble()
	if b == nil || flower == nil {
		return
	}

	b.Icon = flower.Icon
	b.Message = s.pickMessage()
	b.Note = flower.Note
	b.Date = flower.Date
	b.Remaining = s.duration
	b.IsVisible = true
}

// Update 倒计时，到期后隐藏气泡
func (s *BubbleSystem) Update(dt float64) {
	b := s.Bubble()
	if b == nil || !b.IsVisible {
		return
	}

	b.Remaining -= dt
	if b.Remaining <= 0 {
		b.Remaining = 0
		b.IsVisible = false
	}
}

// Bubble 返回气泡组件，实体不存在时返回 nil
func (s *BubbleSystem) Bubble() *components.BubbleComponent {
	b, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, s.bubbleID)
	if !ok {
		return nil
	}
	return b
}

func (s *BubbleSystem) pickMessage() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[s.rng.Intn(len(s.messages))]
}

// BubbleLines 把气泡内容排成要显示的文本行
// 第一行是图标与安慰话语；有记录文字时第二行是加引号的文字；最后一行是日期。
func BubbleLines(b *components.BubbleComponent) []string {
	if b == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("%s %s", b.Icon, b.Message)}
	if b.Note != "" {
		lines = append(lines, fmt.Sprintf("“%s”", b.Note))
	}
	if b.Date != "" {
		lines = append(lines, b.Date)
	}
	return lines
}
