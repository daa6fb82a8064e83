package utils

import "math"

// TileCenter 将花园网格坐标转换为地块中心的画布坐标
// 参数:
//   - col, row: 地块列、行索引
//   - tileSize: 地块边长（像素）
//
// 返回:
//   - centerX, centerY: 地块中心的画布坐标
func TileCenter(col, row int, tileSize float64) (centerX, centerY float64) {
	centerX = float64(col)*tileSize + tileSize/2
	centerY = float64(row)*tileSize + tileSize/2
	return centerX, centerY
}

// Distance 两点之间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Clamp 将 v 限制在 [lo, hi]
// lo > hi 时（画布比角色还小）返回区间中点
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
