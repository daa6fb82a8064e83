package components

import "image/color"

// ParticleKind 粒子类型
type ParticleKind int

const (
	// ParticleDrop 水滴：受重力影响的实心圆
	ParticleDrop ParticleKind = iota
	// ParticleRipple 涟漪：原地扩大的空心圆
	ParticleRipple
)

// String 返回粒子类型名，便于日志输出
func (k ParticleKind) String() string {
	switch k {
	case ParticleDrop:
		return "drop"
	case ParticleRipple:
		return "ripple"
	default:
		return "unknown"
	}
}

// ParticleComponent 单个短寿命视觉粒子
//
// 位置由同一实体上的 PositionComponent 保存。
// 粒子只被粒子系统修改、被渲染系统读取，没有其他系统引用它。
type ParticleComponent struct {
	Kind ParticleKind

	// Velocity (速度, 像素/秒)，仅水滴使用
	VelocityX float64
	VelocityY float64

	Life    float64 // 剩余寿命（秒），<= 0 时被移除
	Size    float64 // 半径（像素）
	MaxSize float64 // 涟漪半径上限提示，仅在启用限制时生效
	Color   color.NRGBA
}
