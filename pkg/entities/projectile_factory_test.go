package entities

import (
	"testing"

	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// TestNewProjectile 测试投射物实体的组件
func TestNewProjectile(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewProjectile(em, cfg, 1.5, types.ProjectileFireball)
	if err != nil {
		t.Fatalf("NewProjectile failed: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("Expected PositionComponent")
	}
	if pos.X != 1.5 || pos.Y != cfg.Projectile.Height || pos.Z != cfg.World.PlayerZ+cfg.Projectile.SpawnAhead {
		t.Errorf("Unexpected projectile position %+v", *pos)
	}

	vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
	if !ok || vel.VZ != cfg.Projectile.Speed {
		t.Errorf("Expected forward velocity %f, got %+v", cfg.Projectile.Speed, vel)
	}

	cat, ok := ecs.GetComponent[*components.CategoryComponent](em, id)
	if !ok || cat.Category != types.CategoryProjectile || cat.SubType != types.ProjectileFireball {
		t.Errorf("Unexpected category component %+v", cat)
	}
}

// TestNewProjectileDefaults 测试空外观回退与参数检查
func TestNewProjectileDefaults(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewProjectile(em, cfg, 0, "")
	if err != nil {
		t.Fatalf("NewProjectile failed: %v", err)
	}
	cat, _ := ecs.GetComponent[*components.CategoryComponent](em, id)
	if cat.SubType != types.ProjectileGeneric {
		t.Errorf("Expected generic subtype, got %q", cat.SubType)
	}

	if _, err := NewProjectile(nil, cfg, 0, ""); err == nil {
		t.Error("Expected error for nil entity manager")
	}
}
