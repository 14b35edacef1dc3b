package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// testWorld 系统测试共用的最小模拟上下文
type testWorld struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	traits config.CharacterTraits
	player *game.PlayerState
	stats  *game.RunStats
	rng    *rand.Rand
}

// newTestWorld 创建使用默认配置和指定角色的测试上下文
func newTestWorld(t *testing.T, characterID string) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	return &testWorld{
		em:     ecs.NewEntityManager(),
		cfg:    cfg,
		traits: config.DefaultRoster().Lookup(characterID),
		player: game.NewPlayerState(cfg),
		stats:  &game.RunStats{},
		rng:    rand.New(rand.NewSource(7)),
	}
}

func (w *testWorld) playerSystem() *PlayerSystem {
	return NewPlayerSystem(w.em, w.cfg, w.traits, w.player)
}

func (w *testWorld) collisionSystem() *CollisionSystem {
	return NewCollisionSystem(w.em, w.cfg, w.traits, w.player, w.stats, w.rng)
}

// place 在指定位置放置一个带碰撞盒的实体
func (w *testWorld) place(category types.EntityCategory, x, y, z float64) ecs.EntityID {
	id := w.em.CreateEntity()
	ecs.AddComponent(w.em, id, &components.PositionComponent{X: x, Y: y, Z: z})
	ecs.AddComponent(w.em, id, &components.CollisionComponent{Width: 1, Height: 1})
	ecs.AddComponent(w.em, id, &components.CategoryComponent{
		Category: category,
		Color:    w.cfg.EffectColor(category),
	})
	if category == types.CategoryProjectile {
		ecs.AddComponent(w.em, id, &components.VelocityComponent{VZ: w.cfg.Projectile.Speed})
	}
	return id
}

// countCategory 统计存活的指定类别实体数
func (w *testWorld) countCategory(category types.EntityCategory) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.CategoryComponent](w.em) {
		if !w.em.IsAlive(id) {
			continue
		}
		if cat, _ := ecs.GetComponent[*components.CategoryComponent](w.em, id); cat.Category == category {
			n++
		}
	}
	return n
}
