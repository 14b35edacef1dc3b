package minigames

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/runner/pkg/types"
)

// 心算小游戏参数
const (
	MathTimeLimit   = 10.0 // 秒
	MathOptionCount = 3
	mathMaxOperand  = 20
	mathFakeSpread  = 5
)

// MathMinigame 心算：a ± b，三选一
//
// MoveLeft/MoveRight 移动光标，Fire 或 Jump 确认；也可以用 Choose 直接选择。
type MathMinigame struct {
	countdown

	a, b    int
	plus    bool
	options []int
	correct int
	cursor  int
}

// NewMathMinigame 随机出题
func NewMathMinigame(rng *rand.Rand) *MathMinigame {
	g := &MathMinigame{
		countdown: countdown{remaining: MathTimeLimit},
		a:         rng.Intn(mathMaxOperand) + 1,
		b:         rng.Intn(mathMaxOperand) + 1,
		plus:      rng.Intn(2) == 0,
		correct:   rng.Intn(MathOptionCount),
	}

	answer := g.Answer()
	used := map[int]bool{answer: true}
	g.options = make([]int, MathOptionCount)
	for i := range g.options {
		if i == g.correct {
			g.options[i] = answer
			continue
		}
		// 干扰项在正确答案附近，且互不相同
		fake := answer + rng.Intn(2*mathFakeSpread) - mathFakeSpread
		for used[fake] {
			fake++
		}
		used[fake] = true
		g.options[i] = fake
	}
	return g
}

// Kind 小游戏类型
func (g *MathMinigame) Kind() types.MinigameKind {
	return types.MinigameMath
}

// Answer 正确答案
func (g *MathMinigame) Answer() int {
	if g.plus {
		return g.a + g.b
	}
	return g.a - g.b
}

// Options 候选答案
func (g *MathMinigame) Options() []int {
	return append([]int(nil), g.options...)
}

// Cursor 当前光标位置
func (g *MathMinigame) Cursor() int {
	return g.cursor
}

// Prompt 题面
func (g *MathMinigame) Prompt() string {
	op := "+"
	if !g.plus {
		op = "-"
	}
	return fmt.Sprintf("%d %s %d = ?", g.a, op, g.b)
}

// Update 推进倒计时
func (g *MathMinigame) Update(deltaTime float64) {
	g.tick(deltaTime)
}

// HandleCommand 处理指令
func (g *MathMinigame) HandleCommand(cmd types.Command) {
	if g.finished {
		return
	}
	switch cmd {
	case types.CommandMoveLeft:
		if g.cursor > 0 {
			g.cursor--
		}
	case types.CommandMoveRight:
		if g.cursor < len(g.options)-1 {
			g.cursor++
		}
	case types.CommandFire, types.CommandJump:
		g.Choose(g.cursor)
	}
}

// Choose 选择第 index 个答案，越界的选择被忽略
func (g *MathMinigame) Choose(index int) {
	if g.finished || index < 0 || index >= len(g.options) {
		return
	}
	g.cursor = index
	g.finish(index == g.correct)
	log.Printf("[MathMinigame] %s 选择 %d: success=%v", g.Prompt(), g.options[index], g.success)
}
