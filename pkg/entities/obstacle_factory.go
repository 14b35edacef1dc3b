package entities

import (
	"fmt"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// NewTrackEntity 在指定车道的远端创建障碍或可收集物
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（提供生成距离和各类别的尺寸）
//   - category: 实体类别，必须是可生成类别
//   - lane: 车道号 [-2, 2]
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 类别不可生成或参数为空时返回错误
func NewTrackEntity(em *ecs.EntityManager, cfg *config.GameConfig, category types.EntityCategory, lane int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}
	if !category.Scrolls() {
		return 0, fmt.Errorf("category %s cannot be spawned on the track", category)
	}

	profile := cfg.SpawnProfileFor(category)

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: float64(lane) * cfg.Lanes.Width,
		Y: profile.Height,
		Z: cfg.World.PlayerZ + cfg.World.DrawDistance,
	})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  profile.Width,
		Height: profile.Extent,
	})
	ecs.AddComponent(em, entityID, &components.CategoryComponent{
		Category: category,
		Color:    cfg.EffectColor(category),
	})

	return entityID, nil
}
