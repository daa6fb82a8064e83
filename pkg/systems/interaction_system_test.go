package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/moodgarden/pkg/components"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/ecs"
	"github.com/decker502/moodgarden/pkg/entities"
	"github.com/decker502/moodgarden/pkg/game"
	"github.com/decker502/moodgarden/pkg/input"
)

const (
	testCanvasW = 336.0
	testCanvasH = 240.0
)

// recordingSounds 记录播放过的音效
type recordingSounds struct {
	played []string
}

func (r *recordingSounds) PlaySound(id string) bool {
	r.played = append(r.played, id)
	return true
}

type testGarden struct {
	em       *ecs.EntityManager
	cfg      *config.GardenConfig
	kb       *input.FakeKeyboard
	sounds   *recordingSounds
	bubbles  *BubbleSystem
	system   *InteractionSystem
	avatarID ecs.EntityID
}

func newTestGarden(t *testing.T, avatarX, avatarY float64) *testGarden {
	t.Helper()
	em := ecs.NewEntityManager()
	cfg := config.DefaultGardenConfig()
	kb := input.NewFakeKeyboard()
	rng := rand.New(rand.NewSource(3))

	avatarID := entities.NewAvatarEntity(em, avatarX, avatarY)
	bubbleID := entities.NewBubbleEntity(em)
	bubbles := NewBubbleSystem(em, bubbleID, rng, cfg.Bubble.Messages, cfg.BubbleDuration())
	sounds := &recordingSounds{}

	system := NewInteractionSystem(em, cfg, kb, rng, avatarID, bubbles, testCanvasW, testCanvasH)
	system.SetSoundPlayer(sounds)

	return &testGarden{em: em, cfg: cfg, kb: kb, sounds: sounds, bubbles: bubbles, system: system, avatarID: avatarID}
}

func (g *testGarden) addFlower(col, row int, note string) ecs.EntityID {
	ids := entities.NewFlowerEntities(g.em, []entities.PlannedFlower{{
		Cell:   components.GridCellComponent{Column: col, Row: row},
		Flower: components.FlowerComponent{Day: col + row*7 + 1, Icon: "🌸", Note: note, Date: "2026-10-01", GrowScale: 1},
	}})
	return ids[0]
}

func (g *testGarden) flower(id ecs.EntityID) *components.FlowerComponent {
	f, _ := ecs.GetComponent[*components.FlowerComponent](g.em, id)
	return f
}

func (g *testGarden) avatar() (*components.PositionComponent, *components.AvatarComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, g.avatarID)
	a, _ := ecs.GetComponent[*components.AvatarComponent](g.em, g.avatarID)
	return pos, a
}

func (g *testGarden) particleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](g.em))
}

// TestFindNearestFlower 地块边长 10 时，三朵花距角色 10、40、60
func TestFindNearestFlower(t *testing.T) {
	const tileSize = 10.0
	px, py := 5.0, 5.0 // 格子 (0,0) 的中心

	newFlower := func(em *ecs.EntityManager, col, row int) ecs.EntityID {
		return entities.NewFlowerEntities(em, []entities.PlannedFlower{{
			Cell:   components.GridCellComponent{Column: col, Row: row},
			Flower: components.FlowerComponent{GrowScale: 1},
		}})[0]
	}

	t.Run("picks the closest within radius", func(t *testing.T) {
		em := ecs.NewEntityManager()
		newFlower(em, 0, 6)         // 60
		newFlower(em, 4, 0)         // 40
		near := newFlower(em, 1, 0) // 10
		id, ok := FindNearestFlower(em, px, py, 52, tileSize)
		if !ok || id != near {
			t.Errorf("got (%d, %v), want flower at distance 10 (%d)", id, ok, near)
		}
	})

	t.Run("second closest when nearest is absent", func(t *testing.T) {
		em := ecs.NewEntityManager()
		newFlower(em, 0, 6)
		mid := newFlower(em, 4, 0)
		id, ok := FindNearestFlower(em, px, py, 52, tileSize)
		if !ok || id != mid {
			t.Errorf("got (%d, %v), want flower at distance 40 (%d)", id, ok, mid)
		}
	})

	t.Run("none beyond radius", func(t *testing.T) {
		em := ecs.NewEntityManager()
		newFlower(em, 0, 6)
		if id, ok := FindNearestFlower(em, px, py, 52, tileSize); ok {
			t.Errorf("expected no flower, got %d", id)
		}
	})

	t.Run("distance equal to radius is excluded", func(t *testing.T) {
		em := ecs.NewEntityManager()
		newFlower(em, 4, 0)
		if _, ok := FindNearestFlower(em, px, py, 40, tileSize); ok {
			t.Error("strict less-than: distance 40 with radius 40 must not match")
		}
	})

	t.Run("tie keeps earlier flower", func(t *testing.T) {
		em := ecs.NewEntityManager()
		first := newFlower(em, 1, 0)
		newFlower(em, 0, 1)
		id, ok := FindNearestFlower(em, px, py, 52, tileSize)
		if !ok || id != first {
			t.Errorf("got %d, want first-created %d", id, first)
		}
	})

	t.Run("empty garden", func(t *testing.T) {
		em := ecs.NewEntityManager()
		if _, ok := FindNearestFlower(em, px, py, 52, tileSize); ok {
			t.Error("expected no flower in empty garden")
		}
	})
}

// TestWaterHeldFiveFramesFiresOnce 按住空格 5 帧只浇一次水
func TestWaterHeldFiveFramesFiresOnce(t *testing.T) {
	g := newTestGarden(t, 120, 92)
	id := g.addFlower(2, 1, "note") // 中心 (120, 72)，距离 20

	g.kb.Press(input.ActionWater)
	for i := 0; i < 5; i++ {
		g.system.Update(1.0 / 60)
	}

	f := g.flower(id)
	if !almostEqual(f.GrowScale, 1.18) {
		t.Errorf("GrowScale = %f, want 1.18 after one watering", f.GrowScale)
	}
	if got := g.particleCount(); got != 13 {
		t.Errorf("expected 12 drops + 1 ripple, got %d particles", got)
	}
	if len(g.sounds.played) != 1 || g.sounds.played[0] != game.SoundWater {
		t.Errorf("expected one water sound, got %v", g.sounds.played)
	}
}

func TestInteractHeldFiveFramesFiresOnce(t *testing.T) {
	g := newTestGarden(t, 120, 92)
	id := g.addFlower(2, 1, "rainy but calm")

	g.kb.Press(input.ActionInteract)
	g.system.Update(1.0 / 60)

	f := g.flower(id)
	if f.BumpTimer != g.cfg.Interaction.BumpDuration {
		t.Errorf("BumpTimer = %f, want %f", f.BumpTimer, g.cfg.Interaction.BumpDuration)
	}
	b := g.bubbles.Bubble()
	if !b.IsVisible || b.Note != "rainy but calm" || b.Date != "2026-10-01" {
		t.Errorf("bubble should show the flower, got %+v", b)
	}

	for i := 0; i < 4; i++ {
		g.system.Update(1.0 / 60)
	}
	if len(g.sounds.played) != 1 || g.sounds.played[0] != game.SoundInteract {
		t.Errorf("expected one interact sound, got %v", g.sounds.played)
	}
	if f.BumpTimer >= g.cfg.Interaction.BumpDuration {
		t.Error("holding E must not re-trigger the bump")
	}
}

func TestInteractOutOfRangeDoesNothing(t *testing.T) {
	g := newTestGarden(t, 300, 200)
	g.addFlower(0, 0, "far away")

	g.kb.Press(input.ActionInteract, input.ActionWater)
	g.system.Update(1.0 / 60)

	if g.bubbles.Bubble().IsVisible {
		t.Error("bubble should stay hidden when no flower is near")
	}
	if g.particleCount() != 0 {
		t.Error("no particles should spawn when no flower is near")
	}
	if len(g.sounds.played) != 0 {
		t.Errorf("no sounds expected, got %v", g.sounds.played)
	}
}

// TestGrowScaleFormula N 次浇水后 GrowScale = min(2.2, 1 + 0.18N)
func TestGrowScaleFormula(t *testing.T) {
	for _, n := range []int{1, 3, 6, 7, 12} {
		g := newTestGarden(t, 120, 92)
		id := g.addFlower(2, 1, "")

		for i := 0; i < n; i++ {
			g.kb.Press(input.ActionWater)
			g.system.Update(1.0 / 60)
			g.kb.Release(input.ActionWater)
			g.system.Update(1.0 / 60)
		}

		want := math.Min(2.2, 1+0.18*float64(n))
		if got := g.flower(id).GrowScale; !almostEqual(got, want) {
			t.Errorf("after %d waterings GrowScale = %f, want %f", n, got, want)
		}
	}
}

func TestTimersDecayToZero(t *testing.T) {
	g := newTestGarden(t, 300, 200)
	id := g.addFlower(0, 0, "")
	f := g.flower(id)
	f.BumpTimer = 0.1
	f.GrowTimer = 0.2

	g.system.Update(0.15)
	if f.BumpTimer != 0 {
		t.Errorf("BumpTimer = %f, want 0", f.BumpTimer)
	}
	if !almostEqual(f.GrowTimer, 0.05) {
		t.Errorf("GrowTimer = %f, want 0.05", f.GrowTimer)
	}

	g.system.Update(1)
	if f.GrowTimer != 0 {
		t.Errorf("GrowTimer = %f, want 0", f.GrowTimer)
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name       string
		keys       []input.Action
		wantDX     float64
		wantDY     float64
		wantFacing components.Direction
	}{
		{name: "up", keys: []input.Action{input.ActionUp}, wantDY: -12, wantFacing: components.DirUp},
		{name: "right", keys: []input.Action{input.ActionRight}, wantDX: 12, wantFacing: components.DirRight},
		{name: "up and down resolves to down", keys: []input.Action{input.ActionUp, input.ActionDown}, wantDY: 12, wantFacing: components.DirDown},
		{name: "left and right resolves to right", keys: []input.Action{input.ActionLeft, input.ActionRight}, wantDX: 12, wantFacing: components.DirRight},
		{
			name:       "diagonal is normalized",
			keys:       []input.Action{input.ActionUp, input.ActionLeft},
			wantDX:     -12 / math.Sqrt2,
			wantDY:     -12 / math.Sqrt2,
			wantFacing: components.DirLeft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGarden(t, 150, 120)
			g.kb.Press(tt.keys...)
			g.system.Update(0.1)

			pos, a := g.avatar()
			if !almostEqual(pos.X-150, tt.wantDX) || !almostEqual(pos.Y-120, tt.wantDY) {
				t.Errorf("moved by (%f, %f), want (%f, %f)", pos.X-150, pos.Y-120, tt.wantDX, tt.wantDY)
			}
			if a.Facing != tt.wantFacing {
				t.Errorf("Facing = %v, want %v", a.Facing, tt.wantFacing)
			}
			if !a.Moving {
				t.Error("avatar should be moving")
			}
		})
	}
}

func TestMovementClampedToCanvas(t *testing.T) {
	g := newTestGarden(t, 20, 20)
	half := g.cfg.Avatar.HalfExtent

	g.kb.Press(input.ActionLeft, input.ActionUp)
	g.system.Update(1)
	pos, _ := g.avatar()
	if pos.X != half || pos.Y != half {
		t.Errorf("position = (%f, %f), want (%f, %f)", pos.X, pos.Y, half, half)
	}

	g.kb.ReleaseAll()
	g.kb.Press(input.ActionRight, input.ActionDown)
	for i := 0; i < 10; i++ {
		g.system.Update(1)
	}
	pos, _ = g.avatar()
	if pos.X != testCanvasW-half || pos.Y != testCanvasH-half {
		t.Errorf("position = (%f, %f), want (%f, %f)", pos.X, pos.Y, testCanvasW-half, testCanvasH-half)
	}
}

func TestIdleKeepsPositionAndFacing(t *testing.T) {
	g := newTestGarden(t, 100, 100)
	g.system.Update(0.5)

	pos, a := g.avatar()
	if pos.X != 100 || pos.Y != 100 {
		t.Errorf("idle avatar moved to (%f, %f)", pos.X, pos.Y)
	}
	if a.Facing != components.DirDown || a.Moving {
		t.Errorf("unexpected idle avatar %+v", a)
	}
}

func TestWalkAnimation(t *testing.T) {
	g := newTestGarden(t, 100, 100)
	g.kb.Press(input.ActionRight)

	_, a := g.avatar()
	g.system.Update(0.05)
	g.system.Update(0.05)
	if a.Frame != 0 {
		t.Errorf("Frame = %d before 0.12s, want 0", a.Frame)
	}
	g.system.Update(0.05)
	if a.Frame != 1 || a.FrameTimer != 0 {
		t.Errorf("Frame = %d timer = %f after 0.15s, want 1 and 0", a.Frame, a.FrameTimer)
	}

	for i := 0; i < 3; i++ {
		g.system.Update(0.12)
	}
	if a.Frame != 0 {
		t.Errorf("Frame should wrap to 0 after 4 steps, got %d", a.Frame)
	}

	g.system.Update(0.12)
	g.kb.ReleaseAll()
	g.system.Update(0.05)
	if a.Frame != 0 || a.Moving {
		t.Errorf("idle avatar should rest on frame 0, got %+v", a)
	}
}

func TestWaterSpawnsTowardTile(t *testing.T) {
	g := newTestGarden(t, 120, 92)
	g.addFlower(2, 1, "")

	g.kb.Press(input.ActionWater)
	g.system.Update(1.0 / 60)

	var ripples, drops int
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](g.em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](g.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		switch p.Kind {
		case components.ParticleRipple:
			ripples++
			if pos.X != 120 || pos.Y != 72 {
				t.Errorf("ripple at (%f, %f), want tile center (120, 72)", pos.X, pos.Y)
			}
		case components.ParticleDrop:
			drops++
			if pos.X != 120 || pos.Y != 82 {
				t.Errorf("drop starts at (%f, %f), want (120, 82)", pos.X, pos.Y)
			}
		}
	}
	if ripples != 1 || drops != 12 {
		t.Errorf("got %d ripples and %d drops", ripples, drops)
	}
}
