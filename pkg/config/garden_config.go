package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GardenConfig 情绪花园的全部可调参数
//
// 配置文件可以是 YAML（默认，与项目其他配置一致）或 TOML，按扩展名区分。
// 文件中未出现的字段保留 DefaultGardenConfig 中的默认值。
type GardenConfig struct {
	// 网格与画布
	TileSize       int     `yaml:"tileSize" toml:"tileSize"`             // 每个地块的边长（像素）
	Columns        int     `yaml:"columns" toml:"columns"`               // 网格列数（与日历一周 7 天对齐）
	TileImage      string  `yaml:"tileImage" toml:"tileImage"`           // 地块图片路径，为空时使用程序生成的土壤贴图
	PlayerImage    string  `yaml:"playerImage" toml:"playerImage"`       // 角色精灵图路径，为空时使用程序生成的精灵图
	FontPath       string  `yaml:"fontPath" toml:"fontPath"`             // 优先使用的花朵字形字体，缺字时回退到内置符号字体
	GlyphFontSize  float64 `yaml:"glyphFontSize" toml:"glyphFontSize"`   // 花朵字形字号
	GlyphOffsetY   float64 `yaml:"glyphOffsetY" toml:"glyphOffsetY"`     // 花朵字形相对地块中心的垂直偏移
	BlankTileAlpha float64 `yaml:"blankTileAlpha" toml:"blankTileAlpha"` // 月初空白格的透明度

	Avatar      AvatarConfig      `yaml:"avatar" toml:"avatar"`
	Interaction InteractionConfig `yaml:"interaction" toml:"interaction"`
	Particles   ParticleConfig    `yaml:"particles" toml:"particles"`
	Bubble      BubbleConfig      `yaml:"bubble" toml:"bubble"`
	Window      WindowConfig      `yaml:"window" toml:"window"`

	// EmojiIcons 情绪表情 → 花朵图标映射表
	EmojiIcons  map[string]string `yaml:"emojiIcons" toml:"emojiIcons"`
	DefaultIcon string            `yaml:"defaultIcon" toml:"defaultIcon"`

	// GlyphFallbacks 字体缺少表情字形时绘制的替代字符
	GlyphFallbacks map[string]string `yaml:"glyphFallbacks" toml:"glyphFallbacks"`
}

// AvatarConfig 角色移动与动画参数
type AvatarConfig struct {
	Speed         float64 `yaml:"speed" toml:"speed"`                 // 移动速度（像素/秒）
	FrameSize     int     `yaml:"frameSize" toml:"frameSize"`         // 精灵图单帧边长（像素）
	FrameCount    int     `yaml:"frameCount" toml:"frameCount"`       // 每个朝向的行走帧数
	Scale         float64 `yaml:"scale" toml:"scale"`                 // 绘制缩放倍数
	HalfExtent    float64 `yaml:"halfExtent" toml:"halfExtent"`       // 碰撞半宽，用于画布边界限制
	FrameInterval float64 `yaml:"frameInterval" toml:"frameInterval"` // 行走帧切换间隔（秒）
}

// InteractionConfig 交互（E 键）与浇水（空格键）参数
type InteractionConfig struct {
	InteractRadius     float64 `yaml:"interactRadius" toml:"interactRadius"`
	WaterRadius        float64 `yaml:"waterRadius" toml:"waterRadius"`
	BumpDuration       float64 `yaml:"bumpDuration" toml:"bumpDuration"`
	BumpMagnitude      float64 `yaml:"bumpMagnitude" toml:"bumpMagnitude"`
	GrowDuration       float64 `yaml:"growDuration" toml:"growDuration"`
	GrowMagnitude      float64 `yaml:"growMagnitude" toml:"growMagnitude"`
	GrowStep           float64 `yaml:"growStep" toml:"growStep"`
	MaxGrowScale       float64 `yaml:"maxGrowScale" toml:"maxGrowScale"`
	WaterSourceOffsetY float64 `yaml:"waterSourceOffsetY" toml:"waterSourceOffsetY"` // 水滴出发点相对角色中心的垂直偏移
}

// ParticleConfig 水滴与涟漪粒子参数
type ParticleConfig struct {
	DropCount     int     `yaml:"dropCount" toml:"dropCount"`
	DropLife      float64 `yaml:"dropLife" toml:"dropLife"`
	DropBias      float64 `yaml:"dropBias" toml:"dropBias"`       // 初速度中朝向目标的比例
	DropJitterX   float64 `yaml:"dropJitterX" toml:"dropJitterX"` // 水平抖动幅度（±）
	DropJitterY   float64 `yaml:"dropJitterY" toml:"dropJitterY"` // 向上抖动幅度（0 ~ -值）
	DropSizeMin   float64 `yaml:"dropSizeMin" toml:"dropSizeMin"`
	DropSizeRange float64 `yaml:"dropSizeRange" toml:"dropSizeRange"`
	DropColor     string  `yaml:"dropColor" toml:"dropColor"`
	Gravity       float64 `yaml:"gravity" toml:"gravity"` // 水滴向下加速度（像素/秒²）

	RippleSize    float64 `yaml:"rippleSize" toml:"rippleSize"`
	RippleLife    float64 `yaml:"rippleLife" toml:"rippleLife"`
	RippleMaxSize float64 `yaml:"rippleMaxSize" toml:"rippleMaxSize"`
	RippleGrowth  float64 `yaml:"rippleGrowth" toml:"rippleGrowth"` // 涟漪半径增长速度（像素/秒）
	RippleStroke  float64 `yaml:"rippleStroke" toml:"rippleStroke"`
	RippleColor   string  `yaml:"rippleColor" toml:"rippleColor"`
	ClampRipple   bool    `yaml:"clampRipple" toml:"clampRipple"` // 是否把涟漪半径限制在 RippleMaxSize
}

// BubbleConfig 花朵信息气泡参数
type BubbleConfig struct {
	DurationMs int      `yaml:"durationMs" toml:"durationMs"` // 自动隐藏时间（毫秒）
	Height     int      `yaml:"height" toml:"height"`         // 画布下方信息栏高度（像素）
	FontSize   float64  `yaml:"fontSize" toml:"fontSize"`
	Messages   []string `yaml:"messages" toml:"messages"` // 随机抽取的安慰话语
}

// WindowConfig 窗口参数
type WindowConfig struct {
	Title string `yaml:"title" toml:"title"`
	Scale int    `yaml:"scale" toml:"scale"` // 窗口相对逻辑画布的放大倍数
}

// DefaultHealingMessages 花园气泡默认的安慰话语
var DefaultHealingMessages = []string{
	"This emotion belongs in your garden. 🌱",
	"Thank you for feeling this honestly. 💗",
	"Even hard emotions helped you grow.",
	"You are allowed to feel everything. 🌿",
	"Your feelings are valid and welcome here.",
	"You are growing with every emotion. 🌷",
}

// DefaultGardenConfig 返回默认配置
func DefaultGardenConfig() *GardenConfig {
	return &GardenConfig{
		TileSize:       48,
		Columns:        7,
		GlyphFontSize:  24,
		GlyphOffsetY:   -6,
		BlankTileAlpha: 0.35,
		Avatar: AvatarConfig{
			Speed:         120,
			FrameSize:     32,
			FrameCount:    4,
			Scale:         2.2,
			HalfExtent:    16,
			FrameInterval: 0.12,
		},
		Interaction: InteractionConfig{
			InteractRadius:     52,
			WaterRadius:        58,
			BumpDuration:       0.3,
			BumpMagnitude:      0.15,
			GrowDuration:       0.35,
			GrowMagnitude:      0.25,
			GrowStep:           0.18,
			MaxGrowScale:       2.2,
			WaterSourceOffsetY: -10,
		},
		Particles: ParticleConfig{
			DropCount:     12,
			DropLife:      0.8,
			DropBias:      0.5,
			DropJitterX:   20,
			DropJitterY:   80,
			DropSizeMin:   3,
			DropSizeRange: 2,
			DropColor:     "#78B4FFE6",
			Gravity:       260,
			RippleSize:    5,
			RippleLife:    0.4,
			RippleMaxSize: 35,
			RippleGrowth:  70,
			RippleStroke:  2,
			RippleColor:   "#96C8FF80",
			ClampRipple:   false,
		},
		Bubble: BubbleConfig{
			DurationMs: 3000,
			Height:     72,
			FontSize:   12,
			Messages:   append([]string(nil), DefaultHealingMessages...),
		},
		Window: WindowConfig{
			Title: "Mood Garden",
			Scale: 2,
		},
		EmojiIcons: map[string]string{
			"😄": "🌸",
			"🙂": "🌼",
			"😐": "🍃",
			"😔": "💠",
			"😡": "🔥",
			"😭": "💧",
			"😴": "🌙",
			"🤩": "⭐",
		},
		DefaultIcon:    "🌼",
		GlyphFallbacks: DefaultGlyphFallbacks(),
	}
}

// DefaultGlyphFallbacks 返回内置符号字体可以绘制的替代字符
func DefaultGlyphFallbacks() map[string]string {
	return map[string]string{
		"🌸": "✿",
		"🌼": "❀",
		"🍃": "☘",
		"💠": "❖",
		"🔥": "♨",
		"💧": "☂",
		"🌙": "☾",
		"⭐": "★",
		"🌱": "☘",
		"💗": "♥",
		"🌿": "❧",
		"🌷": "⚘",
	}
}

// LoadGardenConfig 加载花园配置
//
// 以默认配置为底，用文件内容覆盖。扩展名为 .toml 时按 TOML 解析，其余按 YAML 解析。
//
// 参数:
//   - path: 配置文件路径；为空时直接返回默认配置
//
// 返回:
//   - *GardenConfig: 合并后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGardenConfig(path string) (*GardenConfig, error) {
	cfg := DefaultGardenConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read garden config: %w", err)
	}

	if err := cfg.decode(path, data); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid garden config: %w", err)
	}

	return cfg, nil
}

// ParseGardenConfig 从内存中的 YAML 数据解析配置（用于嵌入的默认配置文件）
func ParseGardenConfig(data []byte) (*GardenConfig, error) {
	cfg := DefaultGardenConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse garden config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid garden config: %w", err)
	}
	return cfg, nil
}

func (c *GardenConfig) decode(path string, data []byte) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse garden config %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse garden config %s: %w", path, err)
	}
	return nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 尺寸、速度、半径、时长等必须为正
//   - 角色碰撞宽度不能超过画布宽度
//   - 最大生长倍数不小于 1
//   - 粒子颜色必须是合法的十六进制颜色
//   - 安慰话语池不能为空
func (c *GardenConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %d", c.TileSize)
	}
	if c.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", c.Columns)
	}
	if c.BlankTileAlpha < 0 || c.BlankTileAlpha > 1 {
		return fmt.Errorf("blankTileAlpha must be within [0, 1], got %.2f", c.BlankTileAlpha)
	}

	a := c.Avatar
	if a.Speed <= 0 || a.FrameSize <= 0 || a.FrameCount <= 0 || a.Scale <= 0 || a.FrameInterval <= 0 {
		return fmt.Errorf("avatar speed, frameSize, frameCount, scale and frameInterval must be positive")
	}
	if a.HalfExtent < 0 {
		return fmt.Errorf("avatar halfExtent must not be negative, got %.1f", a.HalfExtent)
	}
	if width := float64(c.Columns * c.TileSize); 2*a.HalfExtent > width {
		return fmt.Errorf("avatar halfExtent %.1f does not fit a %.0f px wide canvas", a.HalfExtent, width)
	}

	i := c.Interaction
	if i.InteractRadius <= 0 || i.WaterRadius <= 0 {
		return fmt.Errorf("interaction radii must be positive")
	}
	if i.BumpDuration <= 0 || i.GrowDuration <= 0 {
		return fmt.Errorf("bump and grow durations must be positive")
	}
	if i.GrowStep < 0 {
		return fmt.Errorf("growStep must not be negative, got %.2f", i.GrowStep)
	}
	if i.MaxGrowScale < 1 {
		return fmt.Errorf("maxGrowScale must be at least 1, got %.2f", i.MaxGrowScale)
	}

	p := c.Particles
	if p.DropCount < 0 {
		return fmt.Errorf("dropCount must not be negative, got %d", p.DropCount)
	}
	if p.DropLife <= 0 || p.RippleLife <= 0 {
		return fmt.Errorf("particle lifetimes must be positive")
	}
	if _, err := ParseHexColor(p.DropColor); err != nil {
		return fmt.Errorf("dropColor: %w", err)
	}
	if _, err := ParseHexColor(p.RippleColor); err != nil {
		return fmt.Errorf("rippleColor: %w", err)
	}

	if c.Bubble.DurationMs <= 0 {
		return fmt.Errorf("bubble durationMs must be positive, got %d", c.Bubble.DurationMs)
	}
	if len(c.Bubble.Messages) == 0 {
		return fmt.Errorf("bubble messages must not be empty")
	}

	if c.Window.Scale <= 0 {
		return fmt.Errorf("window scale must be positive, got %d", c.Window.Scale)
	}
	if c.DefaultIcon == "" {
		return fmt.Errorf("defaultIcon must not be empty")
	}

	return nil
}

// IconFor 返回情绪表情对应的花朵图标，未映射时返回默认图标
func (c *GardenConfig) IconFor(emoji string) string {
	if icon, ok := c.EmojiIcons[emoji]; ok && icon != "" {
		return icon
	}
	return c.DefaultIcon
}

// BubbleDuration 返回气泡显示时长（秒）
func (c *GardenConfig) BubbleDuration() float64 {
	return float64(c.Bubble.DurationMs) / 1000.0
}
