package components

// GridCellComponent 实体所在的地块坐标
// 创建时确定，之后不再改变
type GridCellComponent struct {
	Column int
	Row    int
}

// FlowerComponent 一条情绪记录在花园里对应的花
//
// Note/Date/Emoji/Color 原样来自情绪记录，只读。
// 三个动画字段由交互系统修改，渲染系统只读：
//   - BumpTimer: E 键互动后的弹跳剩余时间（秒），衰减到 0
//   - GrowTimer: 浇水后的生长弹跳剩余时间（秒），衰减到 0
//   - GrowScale: 累积的生长倍数，只增不减，上限由配置决定
type FlowerComponent struct {
	Day   int    // 该月的第几天
	Icon  string // 花朵图标（由情绪表情映射而来）
	Emoji string
	Note  string
	Date  string // YYYY-MM-DD
	Color string // 情绪记录的底色（十六进制）

	BumpTimer float64
	GrowTimer float64
	GrowScale float64
}
