package minigames

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/runner/pkg/types"
)

// 躲石头小游戏参数，坐标为场地宽高的百分比
const (
	DodgeTimeLimit  = 5.0 // 秒，坚持到时间结束即成功
	DodgeMinX       = 5.0
	DodgeMaxX       = 95.0
	DodgeStep       = 10.0 // 每次左右移动的距离
	DodgeSpawnRate  = 0.15 // 每帧生成石头的概率
	DodgeSpawnY     = -10.0
	DodgeDespawnY   = 110.0
	DodgeHitRadius  = 8.0
	DodgeHitTop     = 80.0
	DodgeHitBottom  = 95.0
	dodgeMinSpeed   = 0.5
	dodgeSpeedRange = 1.5
)

// Rock 下落的石头
type Rock struct {
	X, Y  float64
	Speed float64 // 每帧下落距离
}

// DodgeMinigame 左右躲避落石，坚持到倒计时结束
type DodgeMinigame struct {
	countdown
	clock frameClock

	rng     *rand.Rand
	playerX float64
	rocks   []Rock
}

// NewDodgeMinigame 玩家从场地中央开始
func NewDodgeMinigame(rng *rand.Rand) *DodgeMinigame {
	return &DodgeMinigame{
		countdown: countdown{remaining: DodgeTimeLimit},
		rng:       rng,
		playerX:   50,
	}
}

// Kind 小游戏类型
func (g *DodgeMinigame) Kind() types.MinigameKind {
	return types.MinigameDodge
}

// PlayerX 玩家横向位置
func (g *DodgeMinigame) PlayerX() float64 {
	return g.playerX
}

// Rocks 当前场上的石头
func (g *DodgeMinigame) Rocks() []Rock {
	return append([]Rock(nil), g.rocks...)
}

// Prompt 题面
func (g *DodgeMinigame) Prompt() string {
	return "DODGE THE FALLING ROCKS"
}

// HandleCommand 左右移动
func (g *DodgeMinigame) HandleCommand(cmd types.Command) {
	if g.finished {
		return
	}
	switch cmd {
	case types.CommandMoveLeft:
		g.playerX = math.Max(DodgeMinX, g.playerX-DodgeStep)
	case types.CommandMoveRight:
		g.playerX = math.Min(DodgeMaxX, g.playerX+DodgeStep)
	}
}

// Update 逐帧推进落石，被砸中立即失败，时间耗尽则成功
func (g *DodgeMinigame) Update(deltaTime float64) {
	if g.finished {
		return
	}
	for n := g.clock.frames(deltaTime); n > 0 && !g.finished; n-- {
		g.step()
	}
	if g.finished {
		return
	}
	g.remaining -= deltaTime
	if g.remaining <= 0 {
		g.remaining = 0
		g.finish(true)
		log.Printf("[DodgeMinigame] 坚持到时间结束")
	}
}

func (g *DodgeMinigame) step() {
	if g.rng.Float64() < DodgeSpawnRate {
		g.rocks = append(g.rocks, Rock{
			X:     g.rng.Float64() * 100,
			Y:     DodgeSpawnY,
			Speed: dodgeMinSpeed + g.rng.Float64()*dodgeSpeedRange,
		})
	}

	kept := g.rocks[:0]
	for _, rock := range g.rocks {
		rock.Y += rock.Speed
		if g.hits(rock) {
			g.finish(false)
			log.Printf("[DodgeMinigame] 被石头砸中 x=%.1f", rock.X)
		}
		if rock.Y < DodgeDespawnY {
			kept = append(kept, rock)
		}
	}
	g.rocks = kept
}

func (g *DodgeMinigame) hits(rock Rock) bool {
	return math.Abs(rock.X-g.playerX) < DodgeHitRadius &&
		rock.Y > DodgeHitTop && rock.Y < DodgeHitBottom
}
