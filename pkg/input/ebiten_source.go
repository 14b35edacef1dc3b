package input

import (
	"github.com/gonewx/runner/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource 每帧从 ebiten 读取输入并转换为指令
//
// 必须在 ebiten.Game.Update 中调用 Poll。
type EbitenSource struct {
	keys    KeyMap
	tracker *GestureTracker

	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
	cmdBuf   []types.Command
}

// NewEbitenSource 使用指定键位创建输入源，keys 为 nil 时使用默认键位
func NewEbitenSource(keys KeyMap) *EbitenSource {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &EbitenSource{
		keys:    keys,
		tracker: NewGestureTracker(),
	}
}

// Poll 返回本帧产生的指令（按发生顺序）
// 返回的切片在下一次 Poll 前有效
func (s *EbitenSource) Poll() []types.Command {
	s.cmdBuf = s.cmdBuf[:0]

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, key := range s.keyBuf {
		if cmd := s.keys.Command(key); cmd != types.CommandNone {
			s.cmdBuf = append(s.cmdBuf, cmd)
		}
	}

	s.pollTouches()
	s.pollMouse()

	return s.cmdBuf
}

// pollTouches 触摸手势
func (s *EbitenSource) pollTouches() {
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.tracker.Begin(int(id), x, y)
	}

	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.tracker.Move(int(id), x, y)
	}

	s.touchBuf = inpututil.AppendJustReleasedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		if cmd := s.tracker.End(int(id)); cmd != types.CommandNone {
			s.cmdBuf = append(s.cmdBuf, cmd)
		}
	}
}

// pollMouse 桌面端用鼠标拖拽模拟滑动
func (s *EbitenSource) pollMouse() {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.tracker.Begin(MousePointerID, x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.tracker.Move(MousePointerID, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.tracker.Move(MousePointerID, x, y)
		if cmd := s.tracker.End(MousePointerID); cmd != types.CommandNone {
			s.cmdBuf = append(s.cmdBuf, cmd)
		}
	}
}
