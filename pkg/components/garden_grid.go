package components

// GardenGridComponent 标识花园网格实体
// 渲染系统据此绘制全部地块；月初空白格（1 号之前）以较低透明度绘制
type GardenGridComponent struct {
	Columns       int
	Rows          int
	LeadingBlanks int // 1 号之前的空白格数量
}
