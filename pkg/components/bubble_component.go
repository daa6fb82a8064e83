package components

// BubbleComponent 花朵信息气泡
//
// 与花朵互动时显示：图标 + 随机安慰话语，下一行是记录的文字，最后是日期。
// 显示一段时间后自动隐藏；再次互动会重新计时（取消旧的计时，重新开始）。
//
// 样式：
//   - 背景色: 半透明白色
//   - 文字: 深灰色，日期使用较淡的颜色
type BubbleComponent struct {
	IsVisible bool

	Icon    string
	Message string
	Note    string
	Date    string

	Remaining float64 // 距离自动隐藏的剩余时间（秒）
}
