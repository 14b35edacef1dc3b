// Package input 把键盘、触摸和鼠标事件翻译为抽象的玩家指令
package input

import (
	"github.com/gonewx/runner/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// 手势阈值（像素）
const (
	// TapThreshold 两个方向位移都小于该值视为点击
	TapThreshold = 10
	// SwipeThreshold 主方向位移超过该值视为滑动
	SwipeThreshold = 30
)

// KeyMap 按键 → 指令
type KeyMap map[ebiten.Key]types.Command

// DefaultKeyMap 默认键位：方向键、WASD、空格跳跃、Ctrl 射击
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ebiten.KeyArrowLeft:    types.CommandMoveLeft,
		ebiten.KeyA:            types.CommandMoveLeft,
		ebiten.KeyArrowRight:   types.CommandMoveRight,
		ebiten.KeyD:            types.CommandMoveRight,
		ebiten.KeyArrowUp:      types.CommandJump,
		ebiten.KeyW:            types.CommandJump,
		ebiten.KeySpace:        types.CommandJump,
		ebiten.KeyArrowDown:    types.CommandDrop,
		ebiten.KeyS:            types.CommandDrop,
		ebiten.KeyControlLeft:  types.CommandFire,
		ebiten.KeyControlRight: types.CommandFire,
	}
}

// Command 返回按键对应的指令，未映射的按键返回 CommandNone
func (m KeyMap) Command(key ebiten.Key) types.Command {
	if cmd, ok := m[key]; ok {
		return cmd
	}
	return types.CommandNone
}

// Gesture 根据一次按下到抬起的位移识别手势
//
//   - 两个方向位移都小于 TapThreshold：点击，射击
//   - 主方向位移超过 SwipeThreshold：水平滑动换道，向上跳跃，向下下压
//   - 其余情况不产生指令
//
// 屏幕坐标 Y 轴向下，dy > 0 表示向下滑动。
func Gesture(dx, dy int) types.Command {
	adx, ady := abs(dx), abs(dy)

	if adx < TapThreshold && ady < TapThreshold {
		return types.CommandFire
	}

	if adx > ady {
		if adx > SwipeThreshold {
			if dx > 0 {
				return types.CommandMoveRight
			}
			return types.CommandMoveLeft
		}
		return types.CommandNone
	}

	if ady > SwipeThreshold {
		if dy > 0 {
			return types.CommandDrop
		}
		return types.CommandJump
	}
	return types.CommandNone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
