package game

import "time"

// Clock 提供当前时间，测试中可替换
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统墙钟
type SystemClock struct{}

// Now 实现 Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FrameTimer 测量相邻两帧之间的真实时间间隔
//
// 不做任何限幅：窗口被挂起很久后的第一帧会得到一个很大的 dt。
type FrameTimer struct {
	clock   Clock
	last    time.Time
	started bool
}

// NewFrameTimer 创建帧计时器，clock 为 nil 时使用系统时钟
func NewFrameTimer(clock Clock) *FrameTimer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameTimer{clock: clock}
}

// Tick 返回距上次 Tick 的秒数；第一次调用返回 0
func (f *FrameTimer) Tick() float64 {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.last = now
		return 0
	}
	dt := now.Sub(f.last).Seconds()
	f.last = now
	return dt
}
