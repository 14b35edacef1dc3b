package minigames

import (
	"log"
	"math/rand"
	"strings"

	"github.com/gonewx/runner/pkg/types"
)

// 密码小游戏参数
const (
	CodeTimeLimit = 5.0 // 秒
	CodeLength    = 6
)

// codeKeys 可出现在序列中的方向（上、下、左、右）
var codeKeys = []types.Command{
	types.CommandJump,
	types.CommandDrop,
	types.CommandMoveLeft,
	types.CommandMoveRight,
}

// CodeMinigame 按顺序输入六个方向，按错立即失败
type CodeMinigame struct {
	countdown

	sequence []types.Command
	index    int
}

// NewCodeMinigame 随机生成方向序列
func NewCodeMinigame(rng *rand.Rand) *CodeMinigame {
	g := &CodeMinigame{
		countdown: countdown{remaining: CodeTimeLimit},
		sequence:  make([]types.Command, CodeLength),
	}
	for i := range g.sequence {
		g.sequence[i] = codeKeys[rng.Intn(len(codeKeys))]
	}
	return g
}

// Kind 小游戏类型
func (g *CodeMinigame) Kind() types.MinigameKind {
	return types.MinigameCode
}

// Sequence 方向序列
func (g *CodeMinigame) Sequence() []types.Command {
	return append([]types.Command(nil), g.sequence...)
}

// Progress 已正确输入的个数
func (g *CodeMinigame) Progress() int {
	return g.index
}

// Prompt 以箭头表示的序列，已输入部分用 * 代替
func (g *CodeMinigame) Prompt() string {
	var sb strings.Builder
	for i, cmd := range g.sequence {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i < g.index {
			sb.WriteByte('*')
			continue
		}
		sb.WriteString(arrow(cmd))
	}
	return sb.String()
}

// Update 推进倒计时
func (g *CodeMinigame) Update(deltaTime float64) {
	g.tick(deltaTime)
}

// HandleCommand 处理方向输入，Fire 不参与
func (g *CodeMinigame) HandleCommand(cmd types.Command) {
	if g.finished || arrow(cmd) == "" {
		return
	}
	if cmd != g.sequence[g.index] {
		g.finish(false)
		log.Printf("[CodeMinigame] 第 %d 位输入错误", g.index+1)
		return
	}
	g.index++
	if g.index == len(g.sequence) {
		g.finish(true)
		log.Printf("[CodeMinigame] 序列输入完成")
	}
}

func arrow(cmd types.Command) string {
	switch cmd {
	case types.CommandJump:
		return "^"
	case types.CommandDrop:
		return "v"
	case types.CommandMoveLeft:
		return "<"
	case types.CommandMoveRight:
		return ">"
	default:
		return ""
	}
}
