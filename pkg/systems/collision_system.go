package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/entities"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// CollisionReport 一帧碰撞结算结果
type CollisionReport struct {
	CoinsCollected    int
	SpeedBoosts       int
	HazardsDestroyed  int
	ProjectileHits    int
	DamageTaken       int
	Reloads           int
	MinigameRequested bool
	GameOver          bool
}

// CollisionSystem 碰撞与交互结算
//
// 碰撞按车道（横向）和纵深两个轴向的距离阈值判定，不做形状求交。
// 分两趟执行：先结算投射物命中，再结算玩家与实体的接触。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	traits        config.CharacterTraits
	player        *game.PlayerState
	stats         *game.RunStats
	rng           *rand.Rand
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（阈值、规则）
//   - traits: 当前角色能力
//   - player: 玩家状态
//   - stats: 计分统计
//   - rng: 碎片粒子使用的随机源
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.GameConfig, traits config.CharacterTraits,
	player *game.PlayerState, stats *game.RunStats, rng *rand.Rand) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		config:        cfg,
		traits:        traits,
		player:        player,
		stats:         stats,
		rng:           rng,
	}
}

// Update 执行一帧的碰撞结算
func (s *CollisionSystem) Update() CollisionReport {
	var report CollisionReport
	s.resolveProjectiles(&report)
	s.resolvePlayer(&report)
	return report
}

// resolveProjectiles 投射物与障碍
//
// 投射物只与障碍交互，命中第一个目标后即销毁（不穿透）。
// 披萨和加速道具不会被投射物消耗。
func (s *CollisionSystem) resolveProjectiles(report *CollisionReport) {
	tracked := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CategoryComponent](s.entityManager)

	for _, projectileID := range tracked {
		if !s.entityManager.IsActive(projectileID) {
			continue
		}
		projCat, _ := ecs.GetComponent[*components.CategoryComponent](s.entityManager, projectileID)
		if projCat.Category != types.CategoryProjectile {
			continue
		}
		projPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, projectileID)

		for _, targetID := range tracked {
			if targetID == projectileID || !s.entityManager.IsActive(targetID) {
				continue
			}
			cat, _ := ecs.GetComponent[*components.CategoryComponent](s.entityManager, targetID)
			if !cat.Category.IsHazard() {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, targetID)

			if math.Abs(projPos.X-pos.X) < s.config.Collision.ProjectileLane &&
				math.Abs(projPos.Z-pos.Z) < s.config.Collision.ProjectileDepth {
				s.destroyHazard(targetID, pos, cat)
				s.entityManager.DestroyEntity(projectileID)
				report.ProjectileHits++
				report.HazardsDestroyed++
				break
			}
		}
	}
}

// resolvePlayer 玩家与可收集物、障碍
func (s *CollisionSystem) resolvePlayer(report *CollisionReport) {
	tracked := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CategoryComponent](s.entityManager)
	p := s.player
	thresholds := s.config.Collision

	for _, id := range tracked {
		if !s.entityManager.IsActive(id) {
			continue
		}
		cat, _ := ecs.GetComponent[*components.CategoryComponent](s.entityManager, id)
		if cat.Category == types.CategoryProjectile || cat.Category.IsCosmetic() {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		dx := math.Abs(pos.X - p.X)
		dz := math.Abs(pos.Z - p.Z)

		if cat.Category.IsCollectible() {
			if dx < thresholds.PickupLane && dz < thresholds.PickupDepth {
				s.collect(id, cat.Category, report)
			}
			continue
		}

		if dx >= thresholds.HazardLane || dz >= thresholds.HazardDepth {
			continue
		}
		if !s.HazardHits(cat.Category) {
			continue
		}
		if s.hitHazard(id, pos, cat, report) {
			return
		}
	}
}

// collect 拾取披萨或加速道具
func (s *CollisionSystem) collect(id ecs.EntityID, category types.EntityCategory, report *CollisionReport) {
	s.entityManager.DestroyEntity(id)
	p := s.player

	if category == types.CategorySpeedBoost {
		s.addSpeed(s.config.Speed.BoostAmount)
		s.stats.CollectedPowerups++
		p.Timers.Start(game.TimerSpeedBoostToast, s.config.Timers.SpeedBoostToast)
		report.SpeedBoosts++
		return
	}

	value := 1
	if s.traits.Has(types.PowerUpDoubleCoins) {
		value = 2
	}
	result := s.stats.AddCoins(value, s.config.Rules)
	report.CoinsCollected += value

	for i := 0; i < result.SpeedMilestones; i++ {
		s.multiplySpeed(s.config.Speed.MilestoneFactor)
	}
	if result.Reloads > 0 {
		p.Ammo += result.Reloads * s.config.Rules.AmmoPerReload
		p.Timers.Start(game.TimerAmmoReloadToast, s.config.Timers.AmmoReloadToast)
		report.Reloads += result.Reloads
	}
	if result.TriggerMinigame {
		report.MinigameRequested = true
		log.Printf("[CollisionSystem] 披萨里程碑: coins=%d", s.stats.Coins)
	}
}

// HazardHits 判断障碍在当前玩家姿态下是否构成碰撞
func (s *CollisionSystem) HazardHits(category types.EntityCategory) bool {
	p := s.player
	thresholds := s.config.Collision

	switch category {
	case types.CategoryLowBarrier, types.CategorySpikes:
		return p.Y < thresholds.LowClearance
	case types.CategoryHighBarrier:
		return !(p.Locomotion == types.LocomotionRolling && p.Y == 0)
	case types.CategoryDrone:
		return p.Y > 0
	case types.CategoryTrain:
		if s.traits.Has(types.PowerUpPhaseShift) {
			return false
		}
		return p.Y <= thresholds.TallClearance
	case types.CategoryWall:
		return p.Y <= thresholds.TallClearance
	default:
		return false
	}
}

// hitHazard 结算玩家撞上障碍
//
// 返回 true 表示生命值耗尽，本帧结算结束。
func (s *CollisionSystem) hitHazard(id ecs.EntityID, pos *components.PositionComponent,
	cat *components.CategoryComponent, report *CollisionReport) bool {
	p := s.player

	if p.Invincible() {
		s.destroyHazard(id, pos, cat)
		report.HazardsDestroyed++
		return false
	}
	if p.Timers.Active(game.TimerDamageCooldown) {
		return false
	}

	report.DamageTaken++
	depleted := p.TakeDamage(1)
	p.Timers.Start(game.TimerDamageCooldown, s.config.Timers.DamageCooldown)
	log.Printf("[CollisionSystem] 撞上 %s: health=%d", cat.Category, p.Health)

	if depleted {
		report.GameOver = true
		return true
	}
	return false
}

// destroyHazard 摧毁障碍：加分并生成爆炸与碎片
func (s *CollisionSystem) destroyHazard(id ecs.EntityID, pos *components.PositionComponent, cat *components.CategoryComponent) {
	s.entityManager.DestroyEntity(id)
	s.stats.AddBonus(s.config.Rules.HazardBonus)

	if _, err := entities.NewExplosion(s.entityManager, s.config, pos.X, pos.Y, pos.Z, cat.Color); err != nil {
		log.Printf("[CollisionSystem] Failed to create explosion: %v", err)
	}
	if s.rng != nil {
		if _, err := entities.NewDebrisBurst(s.entityManager, s.config, s.rng, pos.X, pos.Y, pos.Z, cat.Color); err != nil {
			log.Printf("[CollisionSystem] Failed to create debris: %v", err)
		}
	}
}

func (s *CollisionSystem) addSpeed(amount float64) {
	s.player.Speed = math.Min(s.player.Speed+amount, s.config.Speed.Max)
}

func (s *CollisionSystem) multiplySpeed(factor float64) {
	s.player.Speed = math.Min(s.player.Speed*factor, s.config.Speed.Max)
}
