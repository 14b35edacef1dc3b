package scenes

import (
	"log"
	"math/rand"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/systems"
	"github.com/gonewx/runner/pkg/types"
)

// maxQueuedCommands 单帧最多缓存的指令数，超出的指令被丢弃
const maxQueuedCommands = 16

// RunScene 单局模拟上下文
//
// 持有本局的实体管理器、玩家状态、计分和全部系统，
// 由 RunStateMachine 通过 game.Simulation 接口驱动。
// 每次开局都创建新的 RunScene；小游戏返回时沿用原对象。
type RunScene struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	traits        config.CharacterTraits
	player        *game.PlayerState
	stats         *game.RunStats

	commands []types.Command

	playerSystem    *systems.PlayerSystem
	spawnSystem     *systems.SpawnSystem
	movementSystem  *systems.MovementSystem
	collisionSystem *systems.CollisionSystem
	magnetSystem    *systems.MagnetSystem // 仅 MAGNET 天赋
	lifetimeSystem  *systems.LifetimeSystem

	ticks uint64
}

// NewRunScene 创建新的一局
//
// 参数:
//   - cfg: 游戏配置
//   - traits: 角色能力（开局时查询一次）
//   - rng: 本局的随机源（生成器和碎片共用）
func NewRunScene(cfg *config.GameConfig, traits config.CharacterTraits, rng *rand.Rand) *RunScene {
	em := ecs.NewEntityManager()
	player := game.NewPlayerState(cfg)
	stats := &game.RunStats{}

	s := &RunScene{
		entityManager: em,
		config:        cfg,
		traits:        traits,
		player:        player,
		stats:         stats,
		commands:      make([]types.Command, 0, maxQueuedCommands),

		playerSystem:    systems.NewPlayerSystem(em, cfg, traits, player),
		spawnSystem:     systems.NewSpawnSystem(em, cfg, rng),
		movementSystem:  systems.NewMovementSystem(em, cfg),
		collisionSystem: systems.NewCollisionSystem(em, cfg, traits, player, stats, rng),
		lifetimeSystem:  systems.NewLifetimeSystem(em),
	}

	if traits.Has(types.PowerUpMagnet) {
		s.magnetSystem = systems.NewMagnetSystem(em, cfg, player)
	}
	if traits.Has(types.PowerUpShield) {
		player.Timers.Start(game.TimerShield, cfg.Timers.Shield)
	}

	log.Printf("[RunScene] 新的一局: character=%s powerUp=%s projectile=%s", traits.ID, traits.PowerUp, traits.Projectile)
	return s
}

// NewSimulationFactory 返回创建 RunScene 的工厂函数
//
// 每一局从 seeds 取一个新种子，seeds 为 nil 时使用固定种子 1。
func NewSimulationFactory(cfg *config.GameConfig, seeds *rand.Rand) game.SimulationFactory {
	return func(traits config.CharacterTraits) game.Simulation {
		seed := int64(1)
		if seeds != nil {
			seed = seeds.Int63()
		}
		return NewRunScene(cfg, traits, rand.New(rand.NewSource(seed)))
	}
}

// HandleCommand 排入一条指令，在下一次 Tick 开始时按顺序应用
func (s *RunScene) HandleCommand(cmd types.Command) {
	if cmd == types.CommandNone {
		return
	}
	if len(s.commands) >= maxQueuedCommands {
		return
	}
	s.commands = append(s.commands, cmd)
}

// Tick 推进一帧
//
// 顺序: 计时器 → 指令 → 玩家运动 → 速度/距离/得分 → 生成 → 实体移动
// → 投射物碰撞 → 玩家碰撞 → 磁铁 → 寿命 → 统一清理。
func (s *RunScene) Tick(deltaTime float64) game.TickOutcome {
	s.ticks++
	s.entityManager.BeginTick()

	s.playerSystem.UpdateTimers(deltaTime)

	for _, cmd := range s.commands {
		s.playerSystem.ApplyCommand(cmd)
	}
	s.commands = s.commands[:0]

	s.playerSystem.Update()
	scroll := s.playerSystem.Advance(s.stats)

	s.spawnSystem.Update()
	s.movementSystem.Update(scroll)

	report := s.collisionSystem.Update()

	if s.magnetSystem != nil {
		s.magnetSystem.Update()
	}
	s.lifetimeSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()

	return game.TickOutcome{
		GameOver:          report.GameOver,
		MinigameRequested: report.MinigameRequested,
		Session:           s.Session(),
	}
}

// Session 当前会话快照
func (s *RunScene) Session() game.SessionState {
	return game.Snapshot(s.player, s.stats)
}

// Resume 小游戏返回后继续本局
//
// 会话写回原有的玩家状态，开启保护期；成功时额外开启狂暴。
func (s *RunScene) Resume(session game.SessionState, success bool) {
	game.Rehydrate(session, s.player, s.stats, s.config.Rules)
	s.commands = s.commands[:0]

	s.player.Timers.Start(game.TimerGrace, s.config.Timers.ResumeGrace)
	if success {
		s.player.Timers.Start(game.TimerRampage, s.config.Timers.Rampage)
	}
	log.Printf("[RunScene] 继续跑局: success=%v health=%d coins=%d", success, s.player.Health, s.stats.Coins)
}

// Player 玩家状态（只读使用）
func (s *RunScene) Player() *game.PlayerState {
	return s.player
}

// Stats 计分统计（只读使用）
func (s *RunScene) Stats() *game.RunStats {
	return s.stats
}

// EntityManager 本局实体管理器
func (s *RunScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Ticks 已推进的帧数
func (s *RunScene) Ticks() uint64 {
	return s.ticks
}

// Snapshot 生成渲染快照
func (s *RunScene) Snapshot() game.Frame {
	em := s.entityManager
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CategoryComponent](em)

	views := make([]game.EntityView, 0, len(ids))
	for _, id := range ids {
		if !em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		cat, _ := ecs.GetComponent[*components.CategoryComponent](em, id)

		view := game.EntityView{
			ID:       id,
			Category: cat.Category,
			SubType:  cat.SubType,
			Color:    cat.Color,
			X:        pos.X,
			Y:        pos.Y,
			Z:        pos.Z,
			Life:     1,
		}
		if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			view.Width = col.Width
			view.Height = col.Height
		}
		if spin, ok := ecs.GetComponent[*components.SpinComponent](em, id); ok {
			view.Rotation = spin.Rotation
		}
		if life, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
			view.Life = systems.RemainingFraction(life)
		}
		views = append(views, view)
	}

	p := s.player
	timers := p.Timers
	return game.Frame{
		Phase: game.PhaseRunning,
		Player: game.PlayerView{
			Lane:             p.Lane,
			X:                p.X,
			Y:                p.Y,
			Z:                p.Z,
			Locomotion:       p.Locomotion,
			Invincible:       p.Invincible(),
			Shielded:         timers.Active(game.TimerShield),
			DamageCooldown:   timers.Active(game.TimerDamageCooldown),
			HasAmmo:          p.Ammo > 0,
			RampageRemaining: p.RampageRemaining(),
			CharacterID:      s.traits.ID,
			Color:            s.traits.Color,
			AccentColor:      s.traits.AccentColor,
		},
		Entities: views,
		HUD: game.HUD{
			Score:           s.stats.IntScore(),
			Coins:           s.stats.Coins,
			Ammo:            p.Ammo,
			Health:          p.Health,
			MaxHealth:       s.config.Rules.MaxHealth,
			Distance:        p.Distance,
			Speed:           p.Speed,
			RampageSeconds:  p.RampageRemaining(),
			SpeedBoostToast: timers.Active(game.TimerSpeedBoostToast),
			AmmoReloadToast: timers.Active(game.TimerAmmoReloadToast),
		},
	}
}
