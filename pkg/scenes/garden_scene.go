package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
	"github.com/decker502/moodgarden/pkg/entities"
	"github.com/decker502/moodgarden/pkg/input"
	"github.com/decker502/moodgarden/pkg/mood"
	"github.com/decker502/moodgarden/pkg/systems"
)

var gardenBackground = color.RGBA{R: 62, G: 48, B: 36, A: 255}

// GardenOptions 创建花园场景所需的全部输入
type GardenOptions struct {
	Config   *config.GardenConfig
	Layout   calendar.MonthLayout // 显示的月份
	Records  []mood.Record        // 已保存的情绪记录（只读）
	Keyboard input.Keyboard
	Rand     *rand.Rand
	Assets   systems.RenderAssets
	Sounds   systems.SoundPlayer // 可为 nil
}

// GardenScene 情绪花园主场景
//
// 场景持有 EntityManager，因此拥有全部模拟状态。每帧 Update 依次推进
// 粒子、输入交互和气泡，Draw 只读状态绘制一帧。花朵的生长不会被保存，
// 每次进入场景都从记录重新生成。
type GardenScene struct {
	entityManager *ecs.EntityManager
	config        *config.GardenConfig
	layout        calendar.MonthLayout

	particleSystem    *systems.ParticleSystem
	interactionSystem *systems.InteractionSystem
	bubbleSystem      *systems.BubbleSystem
	renderSystem      *systems.RenderSystem

	avatarID    ecs.EntityID
	flowerCount int

	// 第一帧各层的绘制次数，记录一次日志后停止统计
	firstFrame       map[systems.DrawLayer]int
	firstFrameLogged bool
}

// NewGardenScene 根据情绪记录搭建花园
func NewGardenScene(opts GardenOptions) (*GardenScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("garden scene requires a config")
	}
	if opts.Keyboard == nil {
		return nil, fmt.Errorf("garden scene requires a keyboard")
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	cfg := opts.Config
	em := ecs.NewEntityManager()

	entities.NewGardenGridEntity(em, opts.Layout)
	flowers := entities.NewFlowerEntities(em, entities.PlanFlowers(opts.Records, opts.Layout, cfg))

	w, h := cfg.CanvasSize(opts.Layout.Rows)
	avatarID := entities.NewAvatarEntity(em, float64(w)/2, float64(h)/2)
	bubbleID := entities.NewBubbleEntity(em)

	bubbles := systems.NewBubbleSystem(em, bubbleID, rng, cfg.Bubble.Messages, cfg.BubbleDuration())
	interaction := systems.NewInteractionSystem(em, cfg, opts.Keyboard, rng, avatarID, bubbles, float64(w), float64(h))
	if opts.Sounds != nil {
		interaction.SetSoundPlayer(opts.Sounds)
	}

	log.Printf("[GardenScene] %s: %d flowers on a %dx%d grid, %d entities",
		opts.Layout.Title(), len(flowers), opts.Layout.Columns, opts.Layout.Rows, em.EntityCount())

	scene := &GardenScene{
		entityManager:     em,
		config:            cfg,
		layout:            opts.Layout,
		particleSystem:    systems.NewParticleSystem(em, cfg.Particles),
		interactionSystem: interaction,
		bubbleSystem:      bubbles,
		renderSystem:      systems.NewRenderSystem(em, cfg, opts.Assets, avatarID, bubbleID),
		avatarID:          avatarID,
		flowerCount:       len(flowers),
		firstFrame:        make(map[systems.DrawLayer]int),
	}
	scene.renderSystem.SetDrawObserver(func(layer systems.DrawLayer, _ ecs.EntityID) {
		scene.firstFrame[layer]++
	})
	return scene, nil
}

// Update 推进一帧模拟
// 粒子先于交互更新，本帧新生成的水滴从完整寿命开始显示。
func (s *GardenScene) Update(deltaTime float64) {
	s.particleSystem.Update(deltaTime)
	s.interactionSystem.Update(deltaTime)
	s.bubbleSystem.Update(deltaTime)
}

// Draw 绘制一帧
func (s *GardenScene) Draw(screen *ebiten.Image) {
	screen.Fill(gardenBackground)
	s.renderSystem.Draw(screen)

	if !s.firstFrameLogged {
		s.firstFrameLogged = true
		s.renderSystem.SetDrawObserver(nil)
		log.Printf("[GardenScene] First frame: %d tiles, %d flowers, %d particles, %d avatar",
			s.firstFrame[systems.LayerTile], s.firstFrame[systems.LayerFlower],
			s.firstFrame[systems.LayerParticle], s.firstFrame[systems.LayerAvatar])
	}
}

// FirstFrameDraws 返回第一帧中某一层的绘制次数
func (s *GardenScene) FirstFrameDraws(layer systems.DrawLayer) int {
	return s.firstFrame[layer]
}

// EntityManager 返回场景的实体管理器
func (s *GardenScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// FlowerCount 返回花园中花的数量
func (s *GardenScene) FlowerCount() int {
	return s.flowerCount
}

// Layout 返回花园显示的月份布局
func (s *GardenScene) Layout() calendar.MonthLayout {
	return s.layout
}
