// Package input 把键盘状态抽象为花园中的动作
//
// 核心模拟只关心动作是否处于按下状态（电平），边沿检测由 Edge 完成，
// 这样测试可以用 FakeKeyboard 逐帧模拟按键。
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Action 花园中的一个输入动作
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionInteract // E：查看花朵
	ActionWater    // 空格：浇水
)

// String 返回动作名称
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionInteract:
		return "interact"
	case ActionWater:
		return "water"
	default:
		return "unknown"
	}
}

// Keyboard 查询某个动作当前是否被按住
type Keyboard interface {
	Pressed(a Action) bool
}

// DefaultBindings 默认键位：WASD 与方向键移动，E 互动，空格浇水
var DefaultBindings = map[Action][]ebiten.Key{
	ActionUp:       {ebiten.KeyW, ebiten.KeyArrowUp},
	ActionDown:     {ebiten.KeyS, ebiten.KeyArrowDown},
	ActionLeft:     {ebiten.KeyA, ebiten.KeyArrowLeft},
	ActionRight:    {ebiten.KeyD, ebiten.KeyArrowRight},
	ActionInteract: {ebiten.KeyE},
	ActionWater:    {ebiten.KeySpace},
}

// EbitenKeyboard 读取 Ebitengine 的实时键盘状态
type EbitenKeyboard struct {
	bindings map[Action][]ebiten.Key
}

// NewEbitenKeyboard 使用默认键位创建键盘
func NewEbitenKeyboard() *EbitenKeyboard {
	return &EbitenKeyboard{bindings: DefaultBindings}
}

// Pressed 任一绑定键按下即视为动作按下
func (k *EbitenKeyboard) Pressed(a Action) bool {
	for _, key := range k.bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// FakeKeyboard 可编程的键盘，供测试和无窗口场景使用
type FakeKeyboard struct {
	held map[Action]bool
}

// NewFakeKeyboard 创建所有键都松开的键盘
func NewFakeKeyboard() *FakeKeyboard {
	return &FakeKeyboard{held: make(map[Action]bool)}
}

// Press 按住一个或多个动作
func (k *FakeKeyboard) Press(actions ...Action) {
	for _, a := range actions {
		k.held[a] = true
	}
}

// Release 松开一个或多个动作
func (k *FakeKeyboard) Release(actions ...Action) {
	for _, a := range actions {
		delete(k.held, a)
	}
}

// ReleaseAll 松开所有动作
func (k *FakeKeyboard) ReleaseAll() {
	k.held = make(map[Action]bool)
}

// Pressed 实现 Keyboard
func (k *FakeKeyboard) Pressed(a Action) bool {
	return k.held[a]
}

// Edge 上升沿检测：一次按下只触发一次，按住不重复触发
type Edge struct {
	prev bool
}

// Rising 传入本帧的按下状态，仅在“上一帧松开、本帧按下”时返回 true
func (e *Edge) Rising(pressed bool) bool {
	fired := pressed && !e.prev
	e.prev = pressed
	return fired
}
