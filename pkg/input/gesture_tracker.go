package input

import "github.com/gonewx/runner/pkg/types"

// pointer 一个正在跟踪的触点
type pointer struct {
	startX, startY int
	lastX, lastY   int
}

// GestureTracker 跟踪多个触点从按下到抬起的位移
//
// 触点 ID 由调用方提供：触摸使用 ebiten.TouchID，鼠标使用 MousePointerID。
type GestureTracker struct {
	pointers map[int]*pointer
}

// MousePointerID 鼠标拖拽使用的触点 ID
const MousePointerID = -1

// NewGestureTracker 创建手势跟踪器
func NewGestureTracker() *GestureTracker {
	return &GestureTracker{pointers: make(map[int]*pointer)}
}

// Begin 触点按下
func (g *GestureTracker) Begin(id, x, y int) {
	g.pointers[id] = &pointer{startX: x, startY: y, lastX: x, lastY: y}
}

// Move 更新触点位置
// 触摸抬起后无法再读取位置，需要每帧记录最后位置
func (g *GestureTracker) Move(id, x, y int) {
	if p, ok := g.pointers[id]; ok {
		p.lastX, p.lastY = x, y
	}
}

// End 触点抬起，返回识别出的指令
// 未跟踪的触点返回 CommandNone
func (g *GestureTracker) End(id int) types.Command {
	p, ok := g.pointers[id]
	if !ok {
		return types.CommandNone
	}
	delete(g.pointers, id)
	return Gesture(p.lastX-p.startX, p.lastY-p.startY)
}

// Active 正在跟踪的触点数
func (g *GestureTracker) Active() int {
	return len(g.pointers)
}

// Reset 丢弃所有触点
func (g *GestureTracker) Reset() {
	for id := range g.pointers {
		delete(g.pointers, id)
	}
}
