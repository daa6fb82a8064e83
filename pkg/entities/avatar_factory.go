package entities

import (
	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/ecs"
)

// NewAvatarEntity 在 (x, y) 创建玩家角色，初始朝下、停在第 0 帧
func NewAvatarEntity(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.AvatarComponent{
		Facing: components.DirDown,
	})
	return id
}

// NewBubbleEntity 创建（初始隐藏的）花朵信息气泡
func NewBubbleEntity(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BubbleComponent{})
	return id
}
