package entities

import (
	"image/color"
	"math/rand"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
)

var (
	fallbackDropColor   = color.NRGBA{R: 120, G: 180, B: 255, A: 230}
	fallbackRippleColor = color.NRGBA{R: 150, G: 200, B: 255, A: 128}
)

// SpawnWaterDrops 从 (srcX, srcY) 朝 (dstX, dstY) 洒出一把水滴
//
// 每个水滴的初速度 = DropBias × 起点到目标的位移
// + 水平抖动 [-DropJitterX, DropJitterX) + 向上抖动 (-DropJitterY, 0]。
//
// 返回:
//   - []ecs.EntityID: 创建的水滴实体（数量为 cfg.DropCount）
func SpawnWaterDrops(em *ecs.EntityManager, rng *rand.Rand, cfg config.ParticleConfig, srcX, srcY, dstX, dstY float64) []ecs.EntityID {
	c := config.ColorOrDefault(cfg.DropColor, fallbackDropColor)
	ids := make([]ecs.EntityID, 0, cfg.DropCount)

	for i := 0; i < cfg.DropCount; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.PositionComponent{X: srcX, Y: srcY})
		em.AddComponent(id, &components.ParticleComponent{
			Kind:      components.ParticleDrop,
			VelocityX: (dstX-srcX)*cfg.DropBias + (rng.Float64()-0.5)*2*cfg.DropJitterX,
			VelocityY: (dstY-srcY)*cfg.DropBias - rng.Float64()*cfg.DropJitterY,
			Life:      cfg.DropLife,
			Size:      cfg.DropSizeMin + rng.Float64()*cfg.DropSizeRange,
			Color:     c,
		})
		ids = append(ids, id)
	}
	return ids
}

// SpawnRipple 在 (x, y) 处生成一个涟漪
func SpawnRipple(em *ecs.EntityManager, cfg config.ParticleConfig, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.ParticleComponent{
		Kind:    components.ParticleRipple,
		Life:    cfg.RippleLife,
		Size:    cfg.RippleSize,
		MaxSize: cfg.RippleMaxSize,
		Color:   config.ColorOrDefault(cfg.RippleColor, fallbackRippleColor),
	})
	return id
}
