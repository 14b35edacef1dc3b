// Package minigames 跑局中途插入的小游戏
//
// 小游戏只通过 Done 报告成败，由宿主交给 RunStateMachine.CompleteMinigame。
// 输入复用玩家指令：方向指令用于选择或输入，Fire 用于确认。
package minigames

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gonewx/runner/pkg/types"
)

// ErrUnknownKind 未注册的小游戏类型
var ErrUnknownKind = errors.New("unknown minigame kind")

// Minigame 小游戏
type Minigame interface {
	// Kind 小游戏类型
	Kind() types.MinigameKind
	// Update 推进倒计时
	Update(deltaTime float64)
	// HandleCommand 处理一条指令，结束后忽略所有输入
	HandleCommand(cmd types.Command)
	// Done 是否结束及是否成功
	Done() (finished, success bool)
	// Remaining 剩余秒数
	Remaining() float64
	// Prompt 给玩家看的题面
	Prompt() string
}

// New 按类型创建小游戏
func New(kind types.MinigameKind, rng *rand.Rand) (Minigame, error) {
	switch kind {
	case types.MinigameMath:
		return NewMathMinigame(rng), nil
	case types.MinigameCode:
		return NewCodeMinigame(rng), nil
	case types.MinigameCannon:
		return NewCannonMinigame(rng), nil
	case types.MinigameDodge:
		return NewDodgeMinigame(rng), nil
	default:
		return nil, fmt.Errorf("create minigame %q: %w", kind, ErrUnknownKind)
	}
}

// FrameStep 逐帧模拟的小游戏使用的固定步长（秒）
const FrameStep = 1.0 / 60

// frameClock 把可变的 deltaTime 换算成整数个固定帧
type frameClock struct {
	accumulated float64
}

func (c *frameClock) frames(deltaTime float64) int {
	c.accumulated += deltaTime
	n := int(c.accumulated/FrameStep + 1e-9)
	c.accumulated -= float64(n) * FrameStep
	if c.accumulated < 0 {
		c.accumulated = 0
	}
	return n
}

// countdown 小游戏共用的倒计时与结果
type countdown struct {
	remaining float64
	finished  bool
	success   bool
}

func (c *countdown) tick(deltaTime float64) {
	if c.finished {
		return
	}
	c.remaining -= deltaTime
	if c.remaining <= 0 {
		c.remaining = 0
		c.finish(false)
	}
}

func (c *countdown) finish(success bool) {
	if c.finished {
		return
	}
	c.finished = true
	c.success = success
}

// Done 是否结束及是否成功
func (c *countdown) Done() (bool, bool) {
	return c.finished, c.success
}

// Remaining 剩余秒数
func (c *countdown) Remaining() float64 {
	return c.remaining
}
