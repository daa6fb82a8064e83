package scenes

import (
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/moodgarden/pkg/game"
)

var (
	loadingBackground = color.RGBA{R: 46, G: 38, B: 32, A: 255}
	loadingTextColor  = color.RGBA{R: 230, G: 220, B: 200, A: 255}
	loadingErrorColor = color.RGBA{R: 240, G: 150, B: 140, A: 255}
)

// LoadingScene represents the loading screen shown while garden images decode.
//
// The scene polls the asset gate once per frame without blocking. When the gate
// opens, onReady is called exactly once with the decoded assets; it normally
// builds the garden scene and switches to it. If loading fails the gate never
// opens: the failure is logged once and the scene keeps showing a message.
type LoadingScene struct {
	loader  *game.AssetLoader
	face    text.Face
	onReady func(*game.DecodedAssets)

	elapsedTime  float64
	handedOff    bool
	failedLogged bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(loader *game.AssetLoader, face text.Face, onReady func(*game.DecodedAssets)) *LoadingScene {
	return &LoadingScene{
		loader:  loader,
		face:    face,
		onReady: onReady,
	}
}

// Update polls the asset gate.
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime
	if s.handedOff {
		return
	}

	if s.loader.Ready() {
		s.handedOff = true
		log.Printf("[LoadingScene] Assets ready after %.2fs", s.elapsedTime)
		if s.onReady != nil {
			s.onReady(s.loader.Assets())
		}
		return
	}

	if err := s.loader.Err(); err != nil && !s.failedLogged {
		s.failedLogged = true
		log.Printf("[LoadingScene] Asset loading failed, garden will not start: %v", err)
	}
}

// Draw renders the loading message.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackground)
	if s.face == nil {
		return
	}

	msg := "Preparing your garden" + strings.Repeat(".", int(s.elapsedTime*3)%4)
	c := loadingTextColor
	if s.loader.Err() != nil {
		msg = "Could not load garden images"
		c = loadingErrorColor
	}

	b := screen.Bounds()
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(b.Dx())/2, float64(b.Dy())/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, msg, s.face, op)
}

// Failed reports whether the asset gate has failed for good.
func (s *LoadingScene) Failed() bool {
	return s.loader.Err() != nil
}
