package entities

import (
	"fmt"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// NewExplosion 在被摧毁的障碍处创建爆炸效果
// 爆炸随世界滚动，不参与碰撞，寿命结束后自动销毁
func NewExplosion(em *ecs.EntityManager, cfg *config.GameConfig, x, y, z float64, color string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y, Z: z})
	ecs.AddComponent(em, entityID, &components.CategoryComponent{
		Category: types.CategoryExplosion,
		Color:    color,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{
		MaxLifetime: cfg.Effects.ExplosionLifetime,
	})

	return entityID, nil
}
