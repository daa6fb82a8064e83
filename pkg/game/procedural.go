package game

import (
	"image"
	"image/color"
	"math/rand"
)

// 程序生成贴图使用的颜色
var (
	soilColor      = color.RGBA{R: 118, G: 84, B: 56, A: 255}
	soilDarkColor  = color.RGBA{R: 92, G: 64, B: 42, A: 255}
	soilSpeckColor = color.RGBA{R: 140, G: 104, B: 72, A: 255}
	skinColor      = color.RGBA{R: 250, G: 214, B: 180, A: 255}
	hairColor      = color.RGBA{R: 84, G: 56, B: 40, A: 255}
	shirtColor     = color.RGBA{R: 120, G: 186, B: 140, A: 255}
	trouserColor   = color.RGBA{R: 70, G: 84, B: 120, A: 255}
	eyeColor       = color.RGBA{R: 40, G: 32, B: 30, A: 255}
)

// legSwing 每帧左右腿的伸出量（像素），四帧一个循环
var legSwing = [4][2]int{{0, 0}, {2, -1}, {0, 0}, {-1, 2}}

// GenerateTileImage 生成一块土壤地块：底色、横向垄沟、暗色边框和固定种子的小颗粒
// 没有配置地块图片时使用。
func GenerateTileImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fillRect(img, 0, 0, size, size, soilColor)

	furrow := size / 4
	if furrow < 2 {
		furrow = 2
	}
	for y := furrow; y < size; y += furrow {
		fillRect(img, 1, y, size-1, y+1, soilDarkColor)
	}

	rng := rand.New(rand.NewSource(int64(size)))
	for i := 0; i < size; i++ {
		img.Set(rng.Intn(size), rng.Intn(size), soilSpeckColor)
	}

	for i := 0; i < size; i++ {
		img.Set(i, 0, soilDarkColor)
		img.Set(i, size-1, soilDarkColor)
		img.Set(0, i, soilDarkColor)
		img.Set(size-1, i, soilDarkColor)
	}
	return img
}

// GenerateSpriteSheet 生成角色精灵图
//
// 布局与外部精灵图一致：每列一帧，共 frameCount 列；
// 每行一个朝向，行号依次为下、右、上、左。
func GenerateSpriteSheet(frameSize, frameCount int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frameSize*frameCount, frameSize*4))
	for row := 0; row < 4; row++ {
		for frame := 0; frame < frameCount; frame++ {
			drawFigure(img, frame*frameSize, row*frameSize, frameSize, row, frame)
		}
	}
	return img
}

// drawFigure 在 (ox, oy) 处画一个小人
// row 为朝向（0 下，1 右，2 上，3 左），frame 决定腿的摆动
func drawFigure(img *image.RGBA, ox, oy, size, row, frame int) {
	u := size / 16 // 以 16 像素网格为单位
	if u < 1 {
		u = 1
	}
	cx := ox + size/2
	swing := legSwing[frame%len(legSwing)]

	// 腿
	fillRect(img, cx-3*u, oy+11*u, cx-1*u, oy+14*u+swing[0], trouserColor)
	fillRect(img, cx+1*u, oy+11*u, cx+3*u, oy+14*u+swing[1], trouserColor)

	// 身体
	fillRect(img, cx-4*u, oy+7*u, cx+4*u, oy+12*u, shirtColor)

	// 头与头发
	fillCircle(img, cx, oy+5*u, 3*u, skinColor)
	switch row {
	case 2: // 背面：整个后脑勺都是头发
		fillCircle(img, cx, oy+5*u, 3*u, hairColor)
	default:
		fillRect(img, cx-3*u, oy+2*u, cx+3*u, oy+4*u, hairColor)
	}

	// 眼睛
	switch row {
	case 0:
		fillRect(img, cx-2*u, oy+5*u, cx-1*u, oy+6*u, eyeColor)
		fillRect(img, cx+1*u, oy+5*u, cx+2*u, oy+6*u, eyeColor)
	case 1:
		fillRect(img, cx+1*u, oy+5*u, cx+2*u, oy+6*u, eyeColor)
	case 3:
		fillRect(img, cx-2*u, oy+5*u, cx-1*u, oy+6*u, eyeColor)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
