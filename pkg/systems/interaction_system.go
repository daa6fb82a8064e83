package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
	"github.com/decker502/moodgarden/pkg/entities"
	"github.com/decker502/moodgarden/pkg/game"
	"github.com/decker502/moodgarden/pkg/input"
	"github.com/decker502/moodgarden/pkg/utils"
)

// SoundPlayer 播放一次性音效
// 由 game.AudioManager 实现；为 nil 时交互保持静音
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// InteractionSystem 把键盘输入转换为角色移动、行走动画、查看花朵和浇水
//
// 每帧顺序：
//  1. 花朵计时器衰减（下限为 0）
//  2. 移动并限制在画布内
//  3. 行走动画
//  4. 互动（E，上升沿触发）
//  5. 浇水（空格，上升沿触发）
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GardenConfig
	keyboard      input.Keyboard
	rng           *rand.Rand
	bubbles       *BubbleSystem
	sounds        SoundPlayer

	avatarID      ecs.EntityID
	width, height float64 // 画布尺寸，用于限制角色位置

	interactEdge input.Edge
	waterEdge    input.Edge
}

// NewInteractionSystem 创建交互系统
// 参数:
//   - avatarID: 玩家角色实体
//   - bubbles: 显示花朵信息的气泡系统（可为 nil）
//   - width, height: 花园画布尺寸（像素）
func NewInteractionSystem(
	em *ecs.EntityManager,
	cfg *config.GardenConfig,
	kb input.Keyboard,
	rng *rand.Rand,
	avatarID ecs.EntityID,
	bubbles *BubbleSystem,
	width, height float64,
) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		config:        cfg,
		keyboard:      kb,
		rng:           rng,
		bubbles:       bubbles,
		avatarID:      avatarID,
		width:         width,
		height:        height,
	}
}

// SetSoundPlayer 设置音效播放器
func (s *InteractionSystem) SetSoundPlayer(p SoundPlayer) {
	s.sounds = p
}

// Update 处理一帧的输入
func (s *InteractionSystem) Update(dt float64) {
	s.decayTimers(dt)

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.avatarID)
	if !ok {
		return
	}
	avatar, ok := ecs.GetComponent[*components.AvatarComponent](s.entityManager, s.avatarID)
	if !ok {
		return
	}

	s.move(pos, avatar, dt)
	s.animate(avatar, dt)

	if s.interactEdge.Rising(s.keyboard.Pressed(input.ActionInteract)) {
		s.interact(pos)
	}
	if s.waterEdge.Rising(s.keyboard.Pressed(input.ActionWater)) {
		s.water(pos)
	}
}

// move 按上、下、左、右的顺序读取方向键
// 每个按下的键覆盖对应轴的分量和朝向，所以同时按上和下时向下走，朝向取最后一个按下的键。
func (s *InteractionSystem) move(pos *components.PositionComponent, avatar *components.AvatarComponent, dt float64) {
	dx, dy := 0.0, 0.0
	moving := false

	if s.keyboard.Pressed(input.ActionUp) {
		dy = -1
		avatar.Facing = components.DirUp
		moving = true
	}
	if s.keyboard.Pressed(input.ActionDown) {
		dy = 1
		avatar.Facing = components.DirDown
		moving = true
	}
	if s.keyboard.Pressed(input.ActionLeft) {
		dx = -1
		avatar.Facing = components.DirLeft
		moving = true
	}
	if s.keyboard.Pressed(input.ActionRight) {
		dx = 1
		avatar.Facing = components.DirRight
		moving = true
	}

	if dx != 0 || dy != 0 {
		length := math.Hypot(dx, dy)
		dx /= length
		dy /= length
	}

	speed := s.config.Avatar.Speed
	half := s.config.Avatar.HalfExtent
	pos.X = utils.Clamp(pos.X+dx*speed*dt, half, s.width-half)
	pos.Y = utils.Clamp(pos.Y+dy*speed*dt, half, s.height-half)
	avatar.Moving = moving
}

// animate 移动时累计计时并轮换行走帧，静止时回到第 0 帧
func (s *InteractionSystem) animate(avatar *components.AvatarComponent, dt float64) {
	if !avatar.Moving {
		avatar.Frame = 0
		return
	}

	avatar.FrameTimer += dt
	if avatar.FrameTimer >= s.config.Avatar.FrameInterval {
		avatar.Frame = (avatar.Frame + 1) % s.config.Avatar.FrameCount
		avatar.FrameTimer = 0
	}
}

func (s *InteractionSystem) interact(pos *components.PositionComponent) {
	id, ok := FindNearestFlower(s.entityManager, pos.X, pos.Y, s.config.Interaction.InteractRadius, float64(s.config.TileSize))
	if !ok {
		return
	}
	flower, _ := ecs.GetComponent[*components.FlowerComponent](s.entityManager, id)
	flower.BumpTimer = s.config.Interaction.BumpDuration

	if s.bubbles != nil {
		s.bubbles.Show(flower)
	}
	s.playSound(game.SoundInteract)
	log.Printf("[InteractionSystem] Interact with flower of day %d", flower.Day)
}

func (s *InteractionSystem) water(pos *components.PositionComponent) {
	id, ok := FindNearestFlower(s.entityManager, pos.X, pos.Y, s.config.Interaction.WaterRadius, float64(s.config.TileSize))
	if !ok {
		return
	}
	flower, _ := ecs.GetComponent[*components.FlowerComponent](s.entityManager, id)
	cell, _ := ecs.GetComponent[*components.GridCellComponent](s.entityManager, id)

	ic := s.config.Interaction
	flower.GrowScale = math.Min(ic.MaxGrowScale, flower.GrowScale+ic.GrowStep)
	flower.GrowTimer = ic.GrowDuration

	fx, fy := utils.TileCenter(cell.Column, cell.Row, float64(s.config.TileSize))
	entities.SpawnWaterDrops(s.entityManager, s.rng, s.config.Particles, pos.X, pos.Y+ic.WaterSourceOffsetY, fx, fy)
	entities.SpawnRipple(s.entityManager, s.config.Particles, fx, fy)

	s.playSound(game.SoundWater)
	log.Printf("[InteractionSystem] Water flower of day %d, growScale=%.2f", flower.Day, flower.GrowScale)
}

// decayTimers 所有花朵的弹跳/生长计时器按 dt 递减，不低于 0
func (s *InteractionSystem) decayTimers(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FlowerComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.FlowerComponent](s.entityManager, id)
		f.BumpTimer = math.Max(0, f.BumpTimer-dt)
		f.GrowTimer = math.Max(0, f.GrowTimer-dt)
	}
}

func (s *InteractionSystem) playSound(id string) {
	if s.sounds != nil {
		s.sounds.PlaySound(id)
	}
}

// FindNearestFlower 返回地块中心离 (x, y) 最近、且距离严格小于 radius 的花
//
// 按实体创建顺序线性扫描，只有严格更近的花才会替换当前结果，
// 所以距离相同时先创建的花胜出。没有花在范围内时返回 false。
func FindNearestFlower(em *ecs.EntityManager, x, y, radius, tileSize float64) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := radius
	found := false

	flowers := ecs.GetEntitiesWith2[*components.FlowerComponent, *components.GridCellComponent](em)
	for _, id := range flowers {
		cell, _ := ecs.GetComponent[*components.GridCellComponent](em, id)
		cx, cy := utils.TileCenter(cell.Column, cell.Row, tileSize)
		if d := utils.Distance(cx, cy, x, y); d < bestDist {
			bestDist = d
			best = id
			found = true
		}
	}
	return best, found
}
