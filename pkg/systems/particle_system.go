package systems

import (
	"math"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
)

// ParticleSystem 推进水滴与涟漪粒子，并移除寿命耗尽的粒子
//
// 每帧先积分再过滤：寿命在本帧降到 0 及以下的粒子会在同一次 Update 中被销毁，
// 因此渲染阶段永远看不到已死亡的粒子。
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	config        config.ParticleConfig
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager, cfg config.ParticleConfig) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 推进所有粒子
// 参数:
//   - dt: 距上一帧的时间（秒）
func (ps *ParticleSystem) Update(dt float64) {
	particles := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.entityManager)

	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)

		p.Life -= dt

		switch p.Kind {
		case components.ParticleDrop:
			p.VelocityY += ps.config.Gravity * dt
			pos.X += p.VelocityX * dt
			pos.Y += p.VelocityY * dt
		case components.ParticleRipple:
			p.Size += ps.config.RippleGrowth * dt
			if ps.config.ClampRipple && p.MaxSize > 0 {
				p.Size = math.Min(p.Size, p.MaxSize)
			}
		}

		if p.Life <= 0 {
			ps.entityManager.DestroyEntity(id)
		}
	}

	ps.entityManager.RemoveMarkedEntities()
}

// Count 返回当前存活的粒子数量
func (ps *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager))
}
