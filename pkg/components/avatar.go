package components

// Direction 角色朝向
// 取值与精灵图的行号一致：下、右、上、左
type Direction int

const (
	DirDown Direction = iota
	DirRight
	DirUp
	DirLeft
)

// String 返回朝向名称
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// AvatarComponent 玩家角色的朝向与行走动画状态
// 只在更新阶段由交互系统修改，渲染阶段只读
type AvatarComponent struct {
	Facing     Direction
	Frame      int     // 当前行走帧 [0, FrameCount)
	FrameTimer float64 // 距上次切帧累计的时间（秒）
	Moving     bool    // 本帧是否在移动
}
