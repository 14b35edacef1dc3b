package systems

import (
	"log"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/entities"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// PlayerSystem 玩家运动学
//
// 负责指令响应（换道、跳跃、下压/翻滚、射击）、
// 每帧的横向平滑、跳跃弧线，以及速度/距离/得分推进。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	traits        config.CharacterTraits
	player        *game.PlayerState
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, cfg *config.GameConfig, traits config.CharacterTraits, player *game.PlayerState) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		config:        cfg,
		traits:        traits,
		player:        player,
	}
}

// ApplyCommand 应用一条玩家指令
//
// 返回:
//   - bool: 指令是否产生了效果（越界换道、空中跳跃、冷却中射击均返回 false）
func (s *PlayerSystem) ApplyCommand(cmd types.Command) bool {
	switch cmd {
	case types.CommandMoveLeft:
		return s.changeLane(-1)
	case types.CommandMoveRight:
		return s.changeLane(1)
	case types.CommandJump:
		return s.jump()
	case types.CommandDrop:
		return s.drop()
	case types.CommandFire:
		return s.fire()
	default:
		return false
	}
}

func (s *PlayerSystem) changeLane(delta int) bool {
	lane := s.player.Lane + delta
	if lane < s.config.Lanes.Min {
		lane = s.config.Lanes.Min
	}
	if lane > s.config.Lanes.Max {
		lane = s.config.Lanes.Max
	}
	if lane == s.player.Lane {
		return false
	}
	s.player.Lane = lane
	return true
}

func (s *PlayerSystem) jump() bool {
	p := s.player
	if !p.Grounded() {
		return false
	}
	// 起跳会打断翻滚
	p.Timers.Stop(game.TimerRoll)
	p.VY = s.JumpForce()
	p.Locomotion = types.LocomotionJumping
	return true
}

func (s *PlayerSystem) drop() bool {
	p := s.player
	if !p.Grounded() {
		// 空中快速下落
		p.VY = -s.config.Physics.JumpForce
		return true
	}
	p.Locomotion = types.LocomotionRolling
	p.Timers.Start(game.TimerRoll, s.config.Physics.RollDuration)
	return true
}

func (s *PlayerSystem) fire() bool {
	p := s.player
	if p.Ammo <= 0 || p.Timers.Active(game.TimerFireCooldown) {
		return false
	}

	if _, err := entities.NewProjectile(s.entityManager, s.config, p.X, s.traits.Projectile); err != nil {
		log.Printf("[PlayerSystem] Failed to fire projectile: %v", err)
		return false
	}
	p.SpendAmmo()
	p.Timers.Start(game.TimerFireCooldown, s.config.Projectile.FireInterval)
	return true
}

// JumpForce 当前角色的起跳速度
func (s *PlayerSystem) JumpForce() float64 {
	if s.traits.Has(types.PowerUpSuperJump) {
		return s.config.Physics.SuperJumpForce
	}
	return s.config.Physics.JumpForce
}

// Gravity 当前角色的重力
func (s *PlayerSystem) Gravity() float64 {
	if s.traits.Has(types.PowerUpFloaty) {
		return s.config.Physics.Gravity * s.config.Physics.FloatyGravityScale
	}
	return s.config.Physics.Gravity
}

// UpdateTimers 递减玩家计时器并处理到期
//
// 返回本帧到期的计时器。
func (s *PlayerSystem) UpdateTimers(deltaTime float64) []game.TimerName {
	expired := s.player.Timers.Update(deltaTime)
	for _, name := range expired {
		if name == game.TimerRoll && s.player.Locomotion == types.LocomotionRolling {
			s.player.Locomotion = types.LocomotionRunning
		}
	}
	return expired
}

// Update 推进一帧横向平滑和跳跃弧线
func (s *PlayerSystem) Update() {
	p := s.player

	targetX := float64(p.Lane) * s.config.Lanes.Width
	p.X += (targetX - p.X) * s.config.Lanes.Smoothing

	// 同一帧内起跳后立即下落时 Y 仍为 0 而 VY < 0，也要走落地结算
	if p.Y > 0 || p.VY != 0 {
		p.Y += p.VY
		p.VY -= s.Gravity()
		if p.Y <= 0 {
			p.Y = 0
			p.VY = 0
			if p.Locomotion == types.LocomotionJumping {
				p.Locomotion = types.LocomotionRunning
			}
		}
	}
}

// Advance 推进速度、距离与得分
//
// 返回:
//   - float64: 本帧世界滚动距离（供移动系统使用）
func (s *PlayerSystem) Advance(stats *game.RunStats) float64 {
	p := s.player
	speedCfg := s.config.Speed

	if p.Speed < speedCfg.Max {
		p.Speed += speedCfg.Increment
		if p.Speed > speedCfg.Max {
			p.Speed = speedCfg.Max
		}
	}

	scroll := p.Speed * speedCfg.ScrollScale
	if s.traits.Has(types.PowerUpSlowTime) {
		scroll *= speedCfg.SlowTimeScale
	}
	p.Distance += scroll

	multiplier := 1.0
	if s.traits.Has(types.PowerUpDoubleScore) {
		multiplier *= s.config.Rules.DoubleScoreMultiplier
	}
	if p.Rampaging() {
		multiplier *= s.config.Rules.RampageScoreMultiplier
	}
	stats.Score += scroll * multiplier

	return scroll
}
