package game

import (
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/decker502/moodgarden/pkg/config"
)

// DecodedAssets 后台解码完成的贴图（尚未上传为 ebiten.Image）
type DecodedAssets struct {
	Tile        image.Image
	SpriteSheet image.Image
}

// AssetLoader 在后台协程中解码地块和角色贴图
//
// 加载完成后关闭 done 通道；加载场景每帧用 Ready 非阻塞地轮询。
// 任一贴图加载失败时闸门永远不会打开，错误通过 Err 查询，不会重试。
type AssetLoader struct {
	done chan struct{}

	mu     sync.Mutex
	assets *DecodedAssets
	err    error
}

// DecodeFunc 解码单个图片文件
type DecodeFunc func(path string) (image.Image, error)

// StartAssetLoader 启动后台加载
// 路径为空的贴图使用程序生成的版本。
func StartAssetLoader(cfg *config.GardenConfig) *AssetLoader {
	return StartAssetLoaderWith(cfg, DecodeImageFile)
}

// StartAssetLoaderWith 与 StartAssetLoader 相同，但使用指定的解码函数
func StartAssetLoaderWith(cfg *config.GardenConfig, decode DecodeFunc) *AssetLoader {
	l := &AssetLoader{done: make(chan struct{})}

	tilePath := cfg.TileImage
	playerPath := cfg.PlayerImage
	tileSize := cfg.TileSize
	frameSize := cfg.Avatar.FrameSize
	frameCount := cfg.Avatar.FrameCount

	go func() {
		defer close(l.done)

		tile, err := loadOrGenerate(tilePath, decode, func() image.Image {
			return GenerateTileImage(tileSize)
		})
		if err != nil {
			l.finish(nil, fmt.Errorf("tile image: %w", err))
			return
		}

		sheet, err := loadOrGenerate(playerPath, decode, func() image.Image {
			return GenerateSpriteSheet(frameSize, frameCount)
		})
		if err != nil {
			l.finish(nil, fmt.Errorf("player image: %w", err))
			return
		}

		l.finish(&DecodedAssets{Tile: tile, SpriteSheet: sheet}, nil)
	}()

	return l
}

func loadOrGenerate(path string, decode DecodeFunc, generate func() image.Image) (image.Image, error) {
	if path == "" {
		return generate(), nil
	}
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[AssetLoader] Loaded %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

func (l *AssetLoader) finish(assets *DecodedAssets, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.assets = assets
	l.err = err
}

// Done 返回加载结束（无论成功与否）时关闭的通道
func (l *AssetLoader) Done() <-chan struct{} {
	return l.done
}

// Ready 非阻塞地检查闸门：仅在全部贴图加载成功后返回 true
func (l *AssetLoader) Ready() bool {
	select {
	case <-l.done:
	default:
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err == nil && l.assets != nil
}

// Err 返回加载失败的原因；仍在加载或加载成功时返回 nil
func (l *AssetLoader) Err() error {
	select {
	case <-l.done:
	default:
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Assets 返回解码结果；闸门未打开时返回 nil
func (l *AssetLoader) Assets() *DecodedAssets {
	if !l.Ready() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.assets
}
