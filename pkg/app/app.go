// Package app 提供花园应用的核心包装器
//
// 该包把启动逻辑从 main 包中提取出来：读取情绪记录、创建音频与设置、
// 启动后台资源解码，并在资源就绪后切换到花园场景。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/embedded"
	"github.com/decker502/moodgarden/pkg/game"
	"github.com/decker502/moodgarden/pkg/input"
	"github.com/decker502/moodgarden/pkg/mood"
	"github.com/decker502/moodgarden/pkg/scenes"
	"github.com/decker502/moodgarden/pkg/systems"
)

// 资源缓存键
const (
	tileImageKey   = "garden/tile"
	avatarImageKey = "garden/avatar"
)

// Config 定义应用启动配置
type Config struct {
	// Garden 花园参数（必填）
	Garden *config.GardenConfig
	// Layout 要显示的月份
	Layout calendar.MonthLayout
	// Source 情绪记录来源（必填），启动时只读取一次
	Source mood.Source
	// Settings 全局设置使用的 gdata 存储，可为 nil（仅内存设置）
	Settings *gdata.Manager
	// Clock 帧间隔计时使用的时钟，为 nil 时使用系统时钟
	Clock game.Clock
	// Verbose 启用详细日志输出
	Verbose bool
}

// App 是花园应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg             *config.GardenConfig
	layout          calendar.MonthLayout
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	frameTimer      *game.FrameTimer
	verbose         bool

	fatalErr error
}

// ConfigureLogging 配置日志输出：非 verbose 模式下丢弃全部日志
func ConfigureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// NewApp 创建并初始化花园应用
//
// 情绪记录在这里读取一次，之后花园不再访问数据源。
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Garden == nil {
		return nil, fmt.Errorf("app requires a garden config")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("app requires a mood source")
	}

	records, err := cfg.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	log.Printf("[App] Loaded %d mood records", len(records))

	// 设置与音频
	settingsManager := game.NewSettingsManager(cfg.Settings)
	audioContext := audio.NewContext(game.SampleRate)
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	// 字体
	resourceManager := game.NewResourceManager()
	glyphs, texts, err := LoadFaces(resourceManager, cfg.Garden)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:             cfg.Garden,
		layout:          cfg.Layout,
		sceneManager:    game.NewSceneManager(),
		settingsManager: settingsManager,
		audioManager:    audioManager,
		frameTimer:      game.NewFrameTimer(cfg.Clock),
		verbose:         cfg.Verbose,
	}

	// 图片在后台解码，资源就绪后才进入花园
	loader := game.StartAssetLoader(cfg.Garden)
	loadingScene := scenes.NewLoadingScene(loader, texts.Face(), func(assets *game.DecodedAssets) {
		a.enterGarden(resourceManager, assets, records, glyphs, texts)
	})
	a.sceneManager.SwitchTo(loadingScene)

	return a, nil
}

// LoadFaces 组合花朵字形与气泡文字的字体链
//
// 花朵字形依次使用 fontPath、内置符号字体和 Go Regular；
// 气泡文字以 Go Regular 为主，符号字体补足替代字符。
// fontPath 无法加载时记录警告并忽略。
func LoadFaces(rm *game.ResourceManager, cfg *config.GardenConfig) (glyphs, texts *game.FaceChain, err error) {
	builtin := []string{embedded.SymbolFontPath, ""}
	if !embedded.Exists(embedded.SymbolFontPath) {
		log.Printf("[App] Warning: symbol font %s unavailable, flower icons may be skipped", embedded.SymbolFontPath)
		builtin = []string{""}
	}

	if cfg.FontPath != "" {
		glyphs, err = rm.LoadFaceChain(cfg.GlyphFontSize, cfg.GlyphFallbacks, append([]string{cfg.FontPath}, builtin...)...)
		if err != nil {
			log.Printf("[App] Warning: failed to load glyph font %q: %v (using built-in fonts)", cfg.FontPath, err)
		}
	}
	if glyphs == nil {
		if glyphs, err = rm.LoadFaceChain(cfg.GlyphFontSize, cfg.GlyphFallbacks, builtin...); err != nil {
			return nil, nil, fmt.Errorf("failed to load built-in glyph fonts: %w", err)
		}
	}

	textPaths := []string{""}
	if len(builtin) > 1 {
		textPaths = append(textPaths, embedded.SymbolFontPath)
	}
	if texts, err = rm.LoadFaceChain(cfg.Bubble.FontSize, cfg.GlyphFallbacks, textPaths...); err != nil {
		return nil, nil, fmt.Errorf("failed to load built-in text fonts: %w", err)
	}
	return glyphs, texts, nil
}

// enterGarden 在游戏线程上上传图片并切换到花园场景
func (a *App) enterGarden(rm *game.ResourceManager, assets *game.DecodedAssets, records []mood.Record, glyphs, texts *game.FaceChain) {
	renderAssets := systems.RenderAssets{
		Tile:        rm.AddImage(tileImageKey, assets.Tile),
		SpriteSheet: rm.AddImage(avatarImageKey, assets.SpriteSheet),
		GlyphFace:   glyphs.Face(),
		TextFace:    texts.Face(),
		GlyphFilter: glyphs,
		TextFilter:  texts,
	}

	garden, err := scenes.NewGardenScene(scenes.GardenOptions{
		Config:   a.cfg,
		Layout:   a.layout,
		Records:  records,
		Keyboard: input.NewEbitenKeyboard(),
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Assets:   renderAssets,
		Sounds:   a.audioManager,
	})
	if err != nil {
		a.fatalErr = fmt.Errorf("failed to build garden: %w", err)
		return
	}
	a.sceneManager.SwitchTo(garden)
}

// Update 更新游戏逻辑
// 每个显示帧调用一次；dt 取自真实的帧间隔，不做限制。
func (a *App) Update() error {
	if a.fatalErr != nil {
		return a.fatalErr
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			w, h := a.cfg.WindowSize(a.layout.Rows)
			ebiten.SetWindowSize(w, h)
		}
		a.settingsManager.SetFullscreen(fullscreen)
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	// M 静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.audioManager.ToggleMute()
		log.Printf("[App] Sound enabled: %v", enabled)
	}

	// Esc 退出
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.sceneManager.Update(a.frameTimer.Tick())
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest // 像素风精灵图保持锐利
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸：花园画布 + 下方信息栏
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.ScreenSize(a.layout.Rows)
}

// Run 设置窗口并进入主循环，直到窗口关闭或按下 Esc
func (a *App) Run() error {
	w, h := a.cfg.WindowSize(a.layout.Rows)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", a.cfg.Window.Title, a.layout.Title()))
	// 每个显示帧恰好一次 Update
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetFullscreen(a.settingsManager.GetSettings().Fullscreen)

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("garden loop failed: %w", err)
	}
	return nil
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
