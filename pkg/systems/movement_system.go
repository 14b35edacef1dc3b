package systems

import (
	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// MovementSystem 实体移动与剔除
//
//   - 障碍、可收集物、爆炸随世界向玩家滚动
//   - 投射物沿纵深前进，超出视距后销毁
//   - 碎片粒子按速度积分，受重力并在地面反弹
//   - 落后玩家超过 CullMargin 的实体被销毁
type MovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 推进一帧
//
// 参数:
//   - scroll: 本帧世界滚动距离
func (s *MovementSystem) Update(scroll float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CategoryComponent](s.entityManager)

	farLimit := s.config.World.PlayerZ + s.config.World.DrawDistance
	cullLimit := s.config.World.PlayerZ - s.config.World.CullMargin

	for _, id := range entities {
		if !s.entityManager.IsActive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		cat, _ := ecs.GetComponent[*components.CategoryComponent](s.entityManager, id)

		switch {
		case cat.Category == types.CategoryProjectile:
			if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
				pos.Z += vel.VZ
			}
			if pos.Z > farLimit {
				s.entityManager.DestroyEntity(id)
				continue
			}
		case cat.Category == types.CategoryParticle:
			s.updateParticle(id, pos)
		case cat.Category.Scrolls() || cat.Category == types.CategoryExplosion:
			pos.Z -= scroll
		}

		if pos.Z < cullLimit {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// updateParticle 碎片粒子积分与地面反弹
func (s *MovementSystem) updateParticle(id ecs.EntityID, pos *components.PositionComponent) {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok {
		return
	}

	pos.X += vel.VX
	pos.Y += vel.VY
	pos.Z += vel.VZ
	vel.VY -= s.config.Effects.ParticleGravity

	if pos.Y <= 0 && vel.VY < 0 {
		pos.Y = 0
		vel.VY = -vel.VY * s.config.Effects.BounceDamping
	}

	if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
		spin.Rotation += spin.RotationSpeed
	}
}
