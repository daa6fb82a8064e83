package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/font"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FaceChain 是按顺序回退的一组字体
//
// 绘制交给 text.MultiFace，它逐字符选用第一个含有该字形的字体。
// Printable 使用同一份覆盖信息，把整条链都没有的字符换成替代字符，
// 仍然缺字的字符直接丢弃，因此不会画出缺字方块。
//
// Printable 带缓存，只能在游戏线程上调用。
type FaceChain struct {
	face      text.Face
	fonts     []*font.Face
	fallbacks map[string]string

	cache map[string]string
}

// LoadFaceChain 按 paths 的顺序组合字体，路径规则与 LoadFont 相同
//
// 参数:
//   - size: 字号
//   - fallbacks: 缺字字符 → 替代字符，可为 nil
//   - paths: 字体路径，靠前的优先；为空时只使用内置 Go Regular
func (rm *ResourceManager) LoadFaceChain(size float64, fallbacks map[string]string, paths ...string) (*FaceChain, error) {
	if len(paths) == 0 {
		paths = []string{""}
	}

	faces := make([]text.Face, 0, len(paths))
	fonts := make([]*font.Face, 0, len(paths))
	for _, path := range paths {
		face, err := rm.LoadFont(path, size)
		if err != nil {
			return nil, err
		}
		cmap, err := rm.fontCmap(path)
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
		fonts = append(fonts, cmap)
	}

	var face text.Face = faces[0]
	if len(faces) > 1 {
		multi, err := text.NewMultiFace(faces...)
		if err != nil {
			return nil, fmt.Errorf("failed to combine font faces: %w", err)
		}
		face = multi
	}

	return &FaceChain{
		face:      face,
		fonts:     fonts,
		fallbacks: fallbacks,
		cache:     make(map[string]string),
	}, nil
}

// Face 返回用于 text.Draw 的组合字体
func (c *FaceChain) Face() text.Face {
	return c.face
}

// HasGlyph 判断链中是否有字体含有 r 的字形
func (c *FaceChain) HasGlyph(r rune) bool {
	if ignorableRune(r) {
		return true
	}
	for _, f := range c.fonts {
		if _, ok := f.NominalGlyph(r); ok {
			return true
		}
	}
	return false
}

// Covers 判断 s 中的每个字符都能绘制
func (c *FaceChain) Covers(s string) bool {
	for _, r := range s {
		if !c.HasGlyph(r) {
			return false
		}
	}
	return true
}

// Printable 返回可以完整绘制的文本
func (c *FaceChain) Printable(s string) string {
	if out, ok := c.cache[s]; ok {
		return out
	}

	var b strings.Builder
	for _, r := range s {
		if ignorableRune(r) {
			continue
		}
		if c.HasGlyph(r) {
			b.WriteRune(r)
			continue
		}
		if alt, ok := c.fallbacks[string(r)]; ok && c.Covers(alt) {
			b.WriteString(alt)
		}
	}

	out := b.String()
	c.cache[s] = out
	return out
}

// ignorableRune 零宽连接符和变体选择符本身不绘制
func ignorableRune(r rune) bool {
	return r == '\u200d' || unicode.Is(unicode.Variation_Selector, r)
}
