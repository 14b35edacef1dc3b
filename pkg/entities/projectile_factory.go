package entities

import (
	"fmt"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// NewProjectile 创建玩家投射物
// 投射物从玩家当前横向位置前方发射，沿纵深方向匀速前进
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - x: 发射时玩家的横向位置
//   - subType: 投射物外观（由角色能力表决定）
func NewProjectile(em *ecs.EntityManager, cfg *config.GameConfig, x float64, subType string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}
	if subType == "" {
		subType = types.ProjectileGeneric
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: x,
		Y: cfg.Projectile.Height,
		Z: cfg.World.PlayerZ + cfg.Projectile.SpawnAhead,
	})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{
		VZ: cfg.Projectile.Speed,
	})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  cfg.Projectile.Size,
		Height: cfg.Projectile.Size,
	})
	ecs.AddComponent(em, entityID, &components.CategoryComponent{
		Category: types.CategoryProjectile,
		SubType:  subType,
	})

	return entityID, nil
}
