package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
	"github.com/decker502/moodgarden/pkg/utils"
)

var (
	fallbackFlowerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	bubblePanelColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 220}
	bubbleTextColor     = color.NRGBA{R: 60, G: 60, B: 70, A: 255}
	bubbleDateColor     = color.NRGBA{R: 60, G: 60, B: 70, A: 170}
	stripColor          = color.NRGBA{R: 46, G: 38, B: 32, A: 255}
	hintColor           = color.NRGBA{R: 220, G: 210, B: 190, A: 160}
)

const (
	flowerDiscRatio = 0.3 // 花朵底色圆半径 / 地块边长
	flowerDiscAlpha = 0.35
	bubblePadding   = 8.0
	bubbleHint      = "WASD / arrows: walk   E: look   Space: water"
)

// RenderAssets 渲染所需的图片和字体
type RenderAssets struct {
	Tile        *ebiten.Image // 土壤地块
	SpriteSheet *ebiten.Image // 角色精灵图：列 = 帧，行 = 朝向（下、右、上、左）
	GlyphFace   text.Face     // 花朵字形
	TextFace    text.Face     // 气泡文字

	// 可选，把字体缺字的字符换成可绘制的字符；为 nil 时原样绘制
	GlyphFilter TextFilter
	TextFilter  TextFilter
}

// TextFilter 返回字体能够完整绘制的文本
type TextFilter interface {
	Printable(s string) string
}

// DrawLayer 渲染层，取值即从后到前的绘制顺序
type DrawLayer int

const (
	LayerTile DrawLayer = iota
	LayerFlower
	LayerParticle
	LayerAvatar
	LayerBubble
)

// String 返回层名，便于日志输出
func (l DrawLayer) String() string {
	switch l {
	case LayerTile:
		return "tile"
	case LayerFlower:
		return "flower"
	case LayerParticle:
		return "particle"
	case LayerAvatar:
		return "avatar"
	case LayerBubble:
		return "bubble"
	default:
		return "unknown"
	}
}

// DrawObserver 每绘制一个元素调用一次；地块与信息栏没有实体，id 为 0
type DrawObserver func(layer DrawLayer, id ecs.EntityID)

// RenderSystem 按从后到前的顺序绘制花园：
//  1. 地块（月初空白格半透明）
//  2. 花朵（底色圆 + 字形，带生长/弹跳缩放）
//  3. 粒子（水滴实心、涟漪空心）
//  4. 角色
//
// 花园画布下方的信息栏里绘制花朵信息气泡。
// 渲染系统只读组件，不修改任何状态。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GardenConfig
	assets        RenderAssets
	avatarID      ecs.EntityID
	bubbleID      ecs.EntityID
	observer      DrawObserver
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.GardenConfig, assets RenderAssets, avatarID, bubbleID ecs.EntityID) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		config:        cfg,
		assets:        assets,
		avatarID:      avatarID,
		bubbleID:      bubbleID,
	}
}

// SetDrawObserver 设置绘制回调，传入 nil 取消
func (s *RenderSystem) SetDrawObserver(fn DrawObserver) {
	s.observer = fn
}

func (s *RenderSystem) notify(layer DrawLayer, id ecs.EntityID) {
	if s.observer != nil {
		s.observer(layer, id)
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawTiles(screen)
	s.drawFlowers(screen)
	s.drawParticles(screen)
	s.drawAvatar(screen)
	s.drawBubble(screen)
}

func (s *RenderSystem) drawTiles(screen *ebiten.Image) {
	grids := ecs.GetEntitiesWith1[*components.GardenGridComponent](s.entityManager)
	if len(grids) == 0 || s.assets.Tile == nil {
		return
	}
	grid, _ := ecs.GetComponent[*components.GardenGridComponent](s.entityManager, grids[0])

	ts := float64(s.config.TileSize)
	bounds := s.assets.Tile.Bounds()
	sx := ts / float64(bounds.Dx())
	sy := ts / float64(bounds.Dy())

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			slot := row*grid.Columns + col
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(float64(col)*ts, float64(row)*ts)
			op.ColorScale.ScaleAlpha(float32(TileAlpha(slot, grid.LeadingBlanks, s.config.BlankTileAlpha)))
			screen.DrawImage(s.assets.Tile, op)
			s.notify(LayerTile, 0)
		}
	}
}

func (s *RenderSystem) drawFlowers(screen *ebiten.Image) {
	ts := float64(s.config.TileSize)
	flowers := ecs.GetEntitiesWith2[*components.FlowerComponent, *components.GridCellComponent](s.entityManager)

	for _, id := range flowers {
		f, _ := ecs.GetComponent[*components.FlowerComponent](s.entityManager, id)
		cell, _ := ecs.GetComponent[*components.GridCellComponent](s.entityManager, id)

		scale := FlowerScale(f, s.config.Interaction)
		cx, cy := utils.TileCenter(cell.Column, cell.Row, ts)
		cy += s.config.GlyphOffsetY

		disc := config.ColorOrDefault(f.Color, fallbackFlowerColor)
		disc.A = uint8(float64(disc.A) * flowerDiscAlpha)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(ts*flowerDiscRatio*scale), disc, true)
		s.notify(LayerFlower, id)

		if s.assets.GlyphFace == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx, cy)
		text.Draw(screen, printable(s.assets.GlyphFilter, f.Icon), s.assets.GlyphFace, op)
	}
}

func (s *RenderSystem) drawParticles(screen *ebiten.Image) {
	particles := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)

	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if p.Life <= 0 {
			continue
		}

		switch p.Kind {
		case components.ParticleDrop:
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Size), p.Color, true)
		case components.ParticleRipple:
			vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Size), float32(s.config.Particles.RippleStroke), p.Color, true)
		default:
			continue
		}
		s.notify(LayerParticle, id)
	}
}

func (s *RenderSystem) drawAvatar(screen *ebiten.Image) {
	if s.assets.SpriteSheet == nil {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.avatarID)
	if !ok {
		return
	}
	avatar, ok := ecs.GetComponent[*components.AvatarComponent](s.entityManager, s.avatarID)
	if !ok {
		return
	}

	frameSize := s.config.Avatar.FrameSize
	src, mirror := SpriteSourceRect(avatar, frameSize)
	frame := s.assets.SpriteSheet.SubImage(src).(*ebiten.Image)

	scale := s.config.Avatar.Scale
	size := float64(frameSize) * scale

	op := &ebiten.DrawImageOptions{}
	if mirror {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(frameSize), 0)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(pos.X-size/2, pos.Y-size/2)
	screen.DrawImage(frame, op)
	s.notify(LayerAvatar, s.avatarID)
}

// drawBubble 在画布下方的信息栏中绘制气泡；气泡隐藏时显示操作提示
func (s *RenderSystem) drawBubble(screen *ebiten.Image) {
	if s.config.Bubble.Height <= 0 {
		return
	}
	w := float64(screen.Bounds().Dx())
	top := float64(screen.Bounds().Dy() - s.config.Bubble.Height)
	h := float64(s.config.Bubble.Height)

	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(h), stripColor, false)
	s.notify(LayerBubble, 0)
	if s.assets.TextFace == nil {
		return
	}

	b, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, s.bubbleID)
	if !ok || !b.IsVisible {
		s.drawLine(screen, bubbleHint, bubblePadding, top+bubblePadding, hintColor)
		return
	}

	vector.DrawFilledRect(screen, float32(bubblePadding/2), float32(top+bubblePadding/2),
		float32(w-bubblePadding), float32(h-bubblePadding), bubblePanelColor, true)

	lineHeight := s.config.Bubble.FontSize * 1.4
	y := top + bubblePadding
	lines := BubbleLines(b)
	for i, line := range lines {
		c := bubbleTextColor
		if i == len(lines)-1 && b.Date != "" {
			c = bubbleDateColor
		}
		line = printable(s.assets.TextFilter, line)
		for _, wrapped := range utils.WrapText(line, s.assets.TextFace, w-bubblePadding*2) {
			if y+lineHeight > top+h {
				return
			}
			s.drawLine(screen, wrapped, bubblePadding, y, c)
			y += lineHeight
		}
	}
}

func (s *RenderSystem) drawLine(screen *ebiten.Image, line string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, line, s.assets.TextFace, op)
}

func printable(f TextFilter, s string) string {
	if f == nil {
		return s
	}
	return f.Printable(s)
}

// FlowerScale 计算花朵当前的绘制缩放
//
// 基础为 GrowScale；生长计时器未归零时乘以 1 + GrowMagnitude·sin(π·t)，
// 弹跳计时器未归零时乘以 1 + BumpMagnitude·sin(π·t)，t 为剩余时间占总时长的比例。
func FlowerScale(f *components.FlowerComponent, ic config.InteractionConfig) float64 {
	scale := f.GrowScale
	if f.GrowTimer > 0 {
		scale *= 1 + ic.GrowMagnitude*math.Sin(math.Pi*f.GrowTimer/ic.GrowDuration)
	}
	if f.BumpTimer > 0 {
		scale *= 1 + ic.BumpMagnitude*math.Sin(math.Pi*f.BumpTimer/ic.BumpDuration)
	}
	return scale
}

// SpriteSourceRect 返回角色当前帧在精灵图中的区域，以及是否需要水平镜像
// 朝左时复用朝右的那一行并镜像绘制。
func SpriteSourceRect(avatar *components.AvatarComponent, frameSize int) (image.Rectangle, bool) {
	row := avatar.Facing
	mirror := false
	if row == components.DirLeft {
		row = components.DirRight
		mirror = true
	}
	x := avatar.Frame * frameSize
	y := int(row) * frameSize
	return image.Rect(x, y, x+frameSize, y+frameSize), mirror
}

// TileAlpha 返回第 slot 个格子的透明度：月初空白格使用 blankAlpha，其余不透明
func TileAlpha(slot, leadingBlanks int, blankAlpha float64) float64 {
	if slot < leadingBlanks {
		return blankAlpha
	}
	return 1
}
