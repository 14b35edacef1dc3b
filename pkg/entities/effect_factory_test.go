package entities

import (
	"math/rand"
	"testing"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// TestNewTrackEntity 测试各类别生成高度与车道位置
func TestNewTrackEntity(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		category types.EntityCategory
		lane     int
		wantY    float64
	}{
		{types.CategoryLowBarrier, -2, 0},
		{types.CategoryHighBarrier, 0, 2.5},
		{types.CategoryDrone, 1, 2.0},
		{types.CategoryPickup, 2, 0.5},
		{types.CategoryTrain, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			em := ecs.NewEntityManager()
			id, err := NewTrackEntity(em, cfg, tt.category, tt.lane)
			if err != nil {
				t.Fatalf("NewTrackEntity failed: %v", err)
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			if pos.X != float64(tt.lane)*cfg.Lanes.Width {
				t.Errorf("Expected X %f, got %f", float64(tt.lane)*cfg.Lanes.Width, pos.X)
			}
			if pos.Y != tt.wantY {
				t.Errorf("Expected Y %f, got %f", tt.wantY, pos.Y)
			}
			if pos.Z != cfg.World.PlayerZ+cfg.World.DrawDistance {
				t.Errorf("Expected spawn at draw distance, got %f", pos.Z)
			}
			if !ecs.HasComponent[*components.CollisionComponent](em, id) {
				t.Error("Expected CollisionComponent")
			}
		})
	}
}

// TestNewTrackEntityRejectsEffects 测试效果类别不能在赛道上生成
func TestNewTrackEntityRejectsEffects(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	for _, c := range []types.EntityCategory{types.CategoryProjectile, types.CategoryExplosion, types.CategoryParticle} {
		if _, err := NewTrackEntity(em, cfg, c, 0); err == nil {
			t.Errorf("Expected error for category %s", c)
		}
	}
	if em.Count() != 0 {
		t.Errorf("Expected no entities created, got %d", em.Count())
	}
}

// TestNewExplosion 测试爆炸实体带寿命且无碰撞盒
func TestNewExplosion(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewExplosion(em, cfg, 2, 0, 3, "#ef4444")
	if err != nil {
		t.Fatalf("NewExplosion failed: %v", err)
	}
	life, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || life.MaxLifetime != cfg.Effects.ExplosionLifetime {
		t.Errorf("Expected lifetime %f, got %+v", cfg.Effects.ExplosionLifetime, life)
	}
	if ecs.HasComponent[*components.CollisionComponent](em, id) {
		t.Error("Expected explosion without CollisionComponent")
	}
}

// TestNewDebrisBurst 测试碎片数量、颜色与确定性
func TestNewDebrisBurst(t *testing.T) {
	cfg := config.DefaultGameConfig()

	burst := func() (*ecs.EntityManager, []ecs.EntityID) {
		em := ecs.NewEntityManager()
		ids, err := NewDebrisBurst(em, cfg, rand.New(rand.NewSource(42)), 0, 1, 10, "#22c55e")
		if err != nil {
			t.Fatalf("NewDebrisBurst failed: %v", err)
		}
		return em, ids
	}

	em1, ids1 := burst()
	em2, ids2 := burst()

	if len(ids1) != cfg.Effects.ParticleCount {
		t.Fatalf("Expected %d particles, got %d", cfg.Effects.ParticleCount, len(ids1))
	}
	for i := range ids1 {
		v1, _ := ecs.GetComponent[*components.VelocityComponent](em1, ids1[i])
		v2, _ := ecs.GetComponent[*components.VelocityComponent](em2, ids2[i])
		if *v1 != *v2 {
			t.Errorf("Expected same seed to give same velocity, got %+v vs %+v", *v1, *v2)
		}
		if v1.VY <= 0 {
			t.Errorf("Expected upward initial velocity, got %f", v1.VY)
		}
		cat, _ := ecs.GetComponent[*components.CategoryComponent](em1, ids1[i])
		if cat.Category != types.CategoryParticle || cat.Color != "#22c55e" {
			t.Errorf("Unexpected particle category %+v", *cat)
		}
	}

	if _, err := NewDebrisBurst(ecs.NewEntityManager(), cfg, nil, 0, 0, 0, ""); err == nil {
		t.Error("Expected error for nil random source")
	}
}
