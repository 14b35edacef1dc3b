package entities

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// 碎片初速度范围（每帧）
const (
	debrisSpreadX   = 0.3
	debrisSpreadZ   = 0.2
	debrisMinLift   = 0.25
	debrisLiftRange = 0.35
	debrisMaxSpin   = 20.0
)

// NewDebrisBurst 在指定位置炸出一组碎片粒子
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（数量、寿命）
//   - rng: 随机源（测试中使用固定种子）
//   - x, y, z: 爆炸中心
//   - color: 碎片颜色（取自被摧毁障碍的类别颜色）
//
// 返回:
//   - []ecs.EntityID: 创建的碎片实体
func NewDebrisBurst(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, x, y, z float64, color string) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	ids := make([]ecs.EntityID, 0, cfg.Effects.ParticleCount)
	for i := 0; i < cfg.Effects.ParticleCount; i++ {
		entityID := em.CreateEntity()
		ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y, Z: z})
		ecs.AddComponent(em, entityID, &components.VelocityComponent{
			VX: (rng.Float64()*2 - 1) * debrisSpreadX,
			VY: debrisMinLift + rng.Float64()*debrisLiftRange,
			VZ: (rng.Float64()*2 - 1) * debrisSpreadZ,
		})
		ecs.AddComponent(em, entityID, &components.SpinComponent{
			RotationSpeed: (rng.Float64()*2 - 1) * debrisMaxSpin,
		})
		ecs.AddComponent(em, entityID, &components.CategoryComponent{
			Category: types.CategoryParticle,
			Color:    color,
		})
		ecs.AddComponent(em, entityID, &components.LifetimeComponent{
			MaxLifetime: cfg.Effects.ParticleLifetime,
		})
		ids = append(ids, entityID)
	}
	return ids, nil
}
