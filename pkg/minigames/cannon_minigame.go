package minigames

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/runner/pkg/types"
)

// 大炮小游戏参数，长度单位为像素，速度单位为每帧
const (
	CannonTimeLimit   = 10.0 // 瞄准阶段的时限（秒）
	CannonFieldWidth  = 800.0
	CannonFieldHeight = 600.0
	CannonMaxAngle    = 60.0 // 度，0 为竖直向上，正值偏右
	CannonAngleStep   = 4.0
	CannonMaxPower    = 100.0
	CannonPowerStep   = 2.0
	CannonMuzzleY     = CannonFieldHeight - 120
	CannonTargetY     = 200.0
	CannonTargetSpeed = 3.0
	CannonTargetEdge  = CannonFieldWidth/2 - 50 // 靶子相对中线的最大偏移
	CannonHitRadius   = 60.0
	CannonGravity     = 0.25
	cannonPowerScale  = 0.45
)

// Shell 炮弹
type Shell struct {
	X, Y   float64
	VX, VY float64
	Active bool
}

// CannonMinigame 调角度、蓄力，击中来回移动的靶子
//
// Fire 第一次按下开始蓄力，力度在 0~100 之间往返；再次按下发射。
// 发射后倒计时停止，炮弹命中即成功，飞出场地即失败。
type CannonMinigame struct {
	countdown
	clock frameClock

	angle     float64
	power     float64
	powerDir  float64
	charging  bool
	targetX   float64 // 相对场地中线
	targetDir float64
	shell     Shell
}

// NewCannonMinigame 靶子从随机位置和方向出发
func NewCannonMinigame(rng *rand.Rand) *CannonMinigame {
	g := &CannonMinigame{
		countdown: countdown{remaining: CannonTimeLimit},
		powerDir:  1,
		targetX:   (rng.Float64()*2 - 1) * CannonTargetEdge,
		targetDir: 1,
	}
	if rng.Intn(2) == 0 {
		g.targetDir = -1
	}
	return g
}

// Kind 小游戏类型
func (g *CannonMinigame) Kind() types.MinigameKind {
	return types.MinigameCannon
}

// Angle 炮管角度
func (g *CannonMinigame) Angle() float64 {
	return g.angle
}

// Power 当前力度
func (g *CannonMinigame) Power() float64 {
	return g.power
}

// Charging 是否正在蓄力
func (g *CannonMinigame) Charging() bool {
	return g.charging
}

// Target 靶子在场地中的坐标
func (g *CannonMinigame) Target() (x, y float64) {
	return CannonFieldWidth/2 + g.targetX, CannonTargetY
}

// Shell 炮弹状态
func (g *CannonMinigame) Shell() Shell {
	return g.shell
}

// Prompt 题面
func (g *CannonMinigame) Prompt() string {
	return fmt.Sprintf("ANGLE %+.0f  POWER %.0f", g.angle, g.power)
}

// HandleCommand 左右调角度，Fire 蓄力/发射
func (g *CannonMinigame) HandleCommand(cmd types.Command) {
	if g.finished || g.shell.Active {
		return
	}
	switch cmd {
	case types.CommandMoveLeft:
		g.angle = math.Max(-CannonMaxAngle, g.angle-CannonAngleStep)
	case types.CommandMoveRight:
		g.angle = math.Min(CannonMaxAngle, g.angle+CannonAngleStep)
	case types.CommandFire:
		if !g.charging {
			g.charging = true
			g.power = 0
			g.powerDir = 1
			return
		}
		g.charging = false
		g.fire()
	}
}

func (g *CannonMinigame) fire() {
	rad := (g.angle - 90) * math.Pi / 180
	speed := g.power * cannonPowerScale
	g.shell = Shell{
		X:      CannonFieldWidth / 2,
		Y:      CannonMuzzleY,
		VX:     math.Cos(rad) * speed,
		VY:     math.Sin(rad) * speed,
		Active: true,
	}
	log.Printf("[CannonMinigame] 发射 angle=%.0f power=%.0f", g.angle, g.power)
}

// Update 逐帧推进；瞄准阶段计时，发射后等待炮弹落定
func (g *CannonMinigame) Update(deltaTime float64) {
	if g.finished {
		return
	}
	for n := g.clock.frames(deltaTime); n > 0 && !g.finished; n-- {
		g.step()
	}
	if !g.shell.Active {
		g.tick(deltaTime)
	}
}

func (g *CannonMinigame) step() {
	if g.shell.Active {
		g.stepShell()
		return
	}

	g.targetX += CannonTargetSpeed * g.targetDir
	if g.targetX > CannonTargetEdge || g.targetX < -CannonTargetEdge {
		g.targetDir = -g.targetDir
	}

	if g.charging {
		g.power += CannonPowerStep * g.powerDir
		if g.power >= CannonMaxPower {
			g.power = CannonMaxPower
			g.powerDir = -1
		} else if g.power <= 0 {
			g.power = 0
			g.powerDir = 1
		}
	}
}

func (g *CannonMinigame) stepShell() {
	s := &g.shell
	s.X += s.VX
	s.Y += s.VY
	s.VY += CannonGravity

	tx, ty := g.Target()
	if math.Hypot(s.X-tx, s.Y-ty) < CannonHitRadius {
		s.Active = false
		g.finish(true)
		log.Printf("[CannonMinigame] 命中靶子")
		return
	}
	if s.Y > CannonFieldHeight || s.X < 0 || s.X > CannonFieldWidth {
		s.Active = false
		g.finish(false)
		log.Printf("[CannonMinigame] 炮弹脱靶")
	}
}
