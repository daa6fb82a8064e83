package components

// PositionComponent 实体在花园画布上的位置（像素，实体中心）
type PositionComponent struct {
	X float64
	Y float64
}
