package systems

import (
	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/ecs"
)

// LifetimeSystem 管理爆炸、碎片等短寿命实体
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		// 本帧新建或已被销毁的实体不老化
		if !s.entityManager.IsActive(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 过期实体标记待删除，帧末统一清理
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// RemainingFraction 剩余寿命比例 (0, 1]，供渲染淡出使用
func RemainingFraction(lifetime *components.LifetimeComponent) float64 {
	if lifetime == nil || lifetime.MaxLifetime <= 0 {
		return 1
	}
	f := 1 - lifetime.CurrentLifetime/lifetime.MaxLifetime
	if f < 0 {
		return 0
	}
	return f
}
