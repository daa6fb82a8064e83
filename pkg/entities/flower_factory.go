package entities

import (
	"log"
	"sort"
	"strings"

	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
	"github.com/decker502/moodgarden/pkg/mood"
)

// PlannedFlower 一朵待创建的花：地块坐标 + 花朵数据
type PlannedFlower struct {
	Cell   components.GridCellComponent
	Flower components.FlowerComponent
}

// PlanFlowers 把情绪记录映射为花园中的花（纯函数，不创建实体）
//
// 采纳规则（与历史页日历一致）：
//   - 只采纳日期落在 layout 所示月份内的记录
//   - 每天最多一朵花，同一天保存多次时以最后保存的记录为准
//   - 第 day 天放在格子 FirstOffset + day - 1，按 layout.Columns 列从左到右、从上到下排列
//
// 缺少表情或日期无法解析的记录会被静默跳过（仅记录日志），不会报错。
// 返回结果按日期升序排列。
func PlanFlowers(records []mood.Record, layout calendar.MonthLayout, cfg *config.GardenConfig) []PlannedFlower {
	byDay := make(map[int]mood.Record)

	for i, r := range records {
		if strings.TrimSpace(r.Emoji) == "" {
			log.Printf("[FlowerFactory] Skip record #%d: missing emoji", i)
			continue
		}
		d, err := mood.ParseDate(r.Date)
		if err != nil {
			log.Printf("[FlowerFactory] Skip record #%d: %v", i, err)
			continue
		}
		if !layout.Contains(d) {
			continue
		}
		byDay[d.Day()] = r // last wins
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	planned := make([]PlannedFlower, 0, len(days))
	for _, day := range days {
		col, row, ok := layout.Cell(day)
		if !ok {
			continue
		}
		r := byDay[day]
		planned = append(planned, PlannedFlower{
			Cell: components.GridCellComponent{Column: col, Row: row},
			Flower: components.FlowerComponent{
				Day:       day,
				Icon:      cfg.IconFor(r.Emoji),
				Emoji:     r.Emoji,
				Note:      r.Text,
				Date:      r.Date,
				Color:     r.Color,
				GrowScale: 1,
			},
		})
	}

	log.Printf("[FlowerFactory] %s: %d records → %d flowers", layout.Title(), len(records), len(planned))
	return planned
}

// NewFlowerEntities 为每朵规划好的花创建实体
//
// 返回:
//   - []ecs.EntityID: 创建的实体，顺序与 planned 一致
func NewFlowerEntities(em *ecs.EntityManager, planned []PlannedFlower) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(planned))
	for i := range planned {
		p := planned[i]
		id := em.CreateEntity()
		cell := p.Cell
		flower := p.Flower
		em.AddComponent(id, &cell)
		em.AddComponent(id, &flower)
		ids = append(ids, id)
	}
	return ids
}

// NewGardenGridEntity 创建花园网格实体
func NewGardenGridEntity(em *ecs.EntityManager, layout calendar.MonthLayout) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.GardenGridComponent{
		Columns:       layout.Columns,
		Rows:          layout.Rows,
		LeadingBlanks: layout.FirstOffset,
	})
	return id
}
