package game

import (
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/types"
)

// PlayerState 玩家状态（每局一个，由 RunScene 持有）
//
// 小游戏返回时原对象被重新注入数据，而不是重新创建。
type PlayerState struct {
	// 车道与横向位置
	Lane int     // 离散车道号 [-2, 2]
	X    float64 // 连续横向位置，向 Lane*LaneWidth 平滑靠拢

	// 竖直方向
	Y  float64 // 离地高度，0 为地面
	VY float64 // 竖直速度（每帧）

	Z float64 // 纵深（固定，世界向玩家滚动）

	Locomotion types.LocomotionState

	Ammo   int
	Health int

	Distance float64 // 累计前进距离（单调递增）
	Speed    float64 // 当前速度（单调递增，有上限）

	Timers *StatusTimers
}

// NewPlayerState 创建初始玩家状态
func NewPlayerState(cfg *config.GameConfig) *PlayerState {
	return &PlayerState{
		Lane:       0,
		Z:          cfg.World.PlayerZ,
		Locomotion: types.LocomotionRunning,
		Health:     cfg.Rules.MaxHealth,
		Speed:      cfg.Speed.Initial,
		Timers:     NewStatusTimers(),
	}
}

// Grounded 玩家是否在地面（已起跳但尚未离地的同一帧不算）
func (p *PlayerState) Grounded() bool {
	return p.Y == 0 && p.VY <= 0
}

// Invincible 护盾、保护期或狂暴期间无敌
// 受伤冷却不计入：冷却只屏蔽伤害，不会摧毁障碍
func (p *PlayerState) Invincible() bool {
	return p.Timers.Active(TimerShield) ||
		p.Timers.Active(TimerGrace) ||
		p.Timers.Active(TimerRampage)
}

// Rampaging 是否处于狂暴状态
func (p *PlayerState) Rampaging() bool {
	return p.Timers.Active(TimerRampage)
}

// RampageRemaining 狂暴剩余秒数
func (p *PlayerState) RampageRemaining() float64 {
	return p.Timers.Remaining(TimerRampage)
}

// SpendAmmo 消耗一发弹药，弹药不足时返回 false
func (p *PlayerState) SpendAmmo() bool {
	if p.Ammo <= 0 {
		return false
	}
	p.Ammo--
	return true
}

// TakeDamage 扣除生命值（下限为 0），返回是否已耗尽
func (p *PlayerState) TakeDamage(amount int) bool {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health == 0
}
