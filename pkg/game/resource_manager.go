package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/moodgarden/pkg/embedded"
)

// ResourceManager is responsible for centralized management of garden resources.
// It caches images and font faces so each is created only once.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Decoding may happen on a background
// goroutine (see AssetLoader), but registering the decoded images here must
// happen on the game goroutine.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image          // key -> Image
	fontSources   map[string]*text.GoTextFaceSource // font path -> source
	fontFaceCache map[string]*text.GoTextFace       // "path:size" -> face
	fontCmaps     map[string]*font.Face             // font path -> parsed font, for glyph coverage
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
		fontCmaps:     make(map[string]*font.Face),
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Returns:
//   - An error if the file cannot be opened or decoded. Does not panic.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return rm.AddImage(path, img), nil
}

// AddImage converts an already decoded image and caches it under key.
func (rm *ResourceManager) AddImage(key string, img image.Image) *ebiten.Image {
	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[key] = ebitenImg
	return ebitenImg
}

// GetImage retrieves a previously cached image, or nil if not found.
func (rm *ResourceManager) GetImage(key string) *ebiten.Image {
	return rm.imageCache[key]
}

// LoadFont loads a TrueType/OpenType font at the given size and caches the face.
// An empty path selects the built-in Go Regular font; paths under "data/" are
// read from the embedded resources.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(path)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// GetFont retrieves a previously loaded font face, or nil if not loaded.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fmt.Sprintf("%s:%.1f", path, size)]
}

func (rm *ResourceManager) fontSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSources[path]; ok {
		return source, nil
	}

	fontData, err := readFontData(path)
	if err != nil {
		return nil, err
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %q: %w", path, err)
	}
	rm.fontSources[path] = source
	return source, nil
}

// fontCmap 解析字体，用于查询字形覆盖
// 与 text/v2 绘制时使用同一个解析器，两边对缺字的判断一致。
func (rm *ResourceManager) fontCmap(path string) (*font.Face, error) {
	if f, ok := rm.fontCmaps[path]; ok {
		return f, nil
	}

	fontData, err := readFontData(path)
	if err != nil {
		return nil, err
	}
	f, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}
	rm.fontCmaps[path] = f
	return f, nil
}

func readFontData(path string) ([]byte, error) {
	switch {
	case path == "":
		return goregular.TTF, nil
	case strings.HasPrefix(path, "data/"):
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded font %s: %w", path, err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		return data, nil
	}
}

// DecodeImageFile opens and decodes a PNG or JPEG file.
// It does not touch the GPU and is safe to call from any goroutine.
func DecodeImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
