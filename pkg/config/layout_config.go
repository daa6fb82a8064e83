package config

// 布局配置
// 花园画布由 Columns × Rows 个地块组成，画布下方是信息气泡栏。
// 所有坐标使用"画布坐标系"（相对于花园画布左上角），信息栏位于画布之下。

// CanvasSize 返回花园画布的逻辑尺寸（像素）
// rows 由当前显示的月份决定（见 calendar.MonthLayout.Rows）
func (c *GardenConfig) CanvasSize(rows int) (width, height int) {
	return c.TileSize * c.Columns, c.TileSize * rows
}

// ScreenSize 返回整个逻辑屏幕的尺寸：画布 + 信息栏
func (c *GardenConfig) ScreenSize(rows int) (width, height int) {
	w, h := c.CanvasSize(rows)
	return w, h + c.Bubble.Height
}

// WindowSize 返回窗口尺寸（逻辑屏幕 × 窗口放大倍数）
func (c *GardenConfig) WindowSize(rows int) (width, height int) {
	w, h := c.ScreenSize(rows)
	return w * c.Window.Scale, h * c.Window.Scale
}
