package systems

import (
	"testing"

	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// TestHazardRules 测试各类障碍在不同姿态下是否构成碰撞
func TestHazardRules(t *testing.T) {
	tests := []struct {
		name       string
		character  string
		category   types.EntityCategory
		y          float64
		locomotion types.LocomotionState
		want       bool
	}{
		{"低栏-地面", "char_1", types.CategoryLowBarrier, 0, types.LocomotionRunning, true},
		{"低栏-跳过", "char_1", types.CategoryLowBarrier, 0.6, types.LocomotionJumping, false},
		{"地刺-地面", "char_1", types.CategorySpikes, 0, types.LocomotionRunning, true},
		{"高栏-奔跑", "char_1", types.CategoryHighBarrier, 0, types.LocomotionRunning, true},
		{"高栏-翻滚", "char_1", types.CategoryHighBarrier, 0, types.LocomotionRolling, false},
		{"高栏-跳跃", "char_1", types.CategoryHighBarrier, 2, types.LocomotionJumping, true},
		{"无人机-地面", "char_1", types.CategoryDrone, 0, types.LocomotionRunning, false},
		{"无人机-空中", "char_1", types.CategoryDrone, 1.5, types.LocomotionJumping, true},
		{"火车-地面", "char_1", types.CategoryTrain, 0, types.LocomotionRunning, true},
		{"火车-跳过", "char_1", types.CategoryTrain, 3.5, types.LocomotionJumping, false},
		{"火车-相位穿越", "char_7", types.CategoryTrain, 0, types.LocomotionRunning, false},
		{"墙-相位不可穿越", "char_7", types.CategoryWall, 0, types.LocomotionRunning, true},
		{"墙-跳过", "char_1", types.CategoryWall, 3.5, types.LocomotionJumping, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, tt.character)
			w.player.Y = tt.y
			w.player.Locomotion = tt.locomotion
			if got := w.collisionSystem().HazardHits(tt.category); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestHazardDamage 测试受伤、冷却与生命值下限
func TestHazardDamage(t *testing.T) {
	w := newTestWorld(t, "char_1")
	cs := w.collisionSystem()

	first := w.place(types.CategoryLowBarrier, 0, 0, 0.5)
	report := cs.Update()
	if report.DamageTaken != 1 || w.player.Health != 2 {
		t.Fatalf("Expected 1 damage and health 2, got %+v health=%d", report, w.player.Health)
	}
	if !w.em.IsAlive(first) {
		t.Error("Expected hazard to remain after hitting the player")
	}
	if !w.player.Timers.Active(game.TimerDamageCooldown) {
		t.Error("Expected damage cooldown to start")
	}

	// 冷却期间忽略碰撞，不摧毁障碍也不加分
	w.place(types.CategoryTrain, 0, 0, 0)
	report = cs.Update()
	if report.DamageTaken != 0 || report.HazardsDestroyed != 0 || w.player.Health != 2 {
		t.Errorf("Expected hit ignored during cooldown, got %+v health=%d", report, w.player.Health)
	}
	if w.stats.Score != 0 {
		t.Errorf("Expected no bonus during cooldown, got %f", w.stats.Score)
	}
}

// TestHealthDepletionGameOver 测试生命值归零在同一帧结束
func TestHealthDepletionGameOver(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.player.Health = 1
	w.place(types.CategoryWall, 0, 0, 0)
	w.place(types.CategoryTrain, 0, 0, 0.2)

	report := w.collisionSystem().Update()
	if !report.GameOver {
		t.Fatal("Expected GameOver in the same tick")
	}
	if w.player.Health != 0 {
		t.Errorf("Expected health 0, got %d", w.player.Health)
	}
	if report.DamageTaken != 1 {
		t.Errorf("Expected resolution to stop after depletion, got %d damage", report.DamageTaken)
	}
}

// TestRampageInvulnerability 测试狂暴期间撞火车：生命不变、加分、火车被摧毁
func TestRampageInvulnerability(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.player.Timers.Start(game.TimerRampage, 5)
	train := w.place(types.CategoryTrain, 0, 0, 0.5)

	report := w.collisionSystem().Update()

	if w.player.Health != w.cfg.Rules.MaxHealth {
		t.Errorf("Expected health unchanged, got %d", w.player.Health)
	}
	if w.stats.IntScore() != w.cfg.Rules.HazardBonus {
		t.Errorf("Expected score %d, got %d", w.cfg.Rules.HazardBonus, w.stats.IntScore())
	}
	if w.em.IsAlive(train) {
		t.Error("Expected train deactivated")
	}
	if report.HazardsDestroyed != 1 {
		t.Errorf("Expected 1 hazard destroyed, got %d", report.HazardsDestroyed)
	}
	if w.countCategory(types.CategoryExplosion) != 1 {
		t.Error("Expected an explosion at the train")
	}
	if w.countCategory(types.CategoryParticle) != w.cfg.Effects.ParticleCount {
		t.Errorf("Expected %d debris particles", w.cfg.Effects.ParticleCount)
	}
}

// TestShieldAndGraceInvulnerability 测试护盾和保护期同样免伤
func TestShieldAndGraceInvulnerability(t *testing.T) {
	for _, timer := range []game.TimerName{game.TimerShield, game.TimerGrace} {
		t.Run(string(timer), func(t *testing.T) {
			w := newTestWorld(t, "char_1")
			w.player.Timers.Start(timer, 1)
			w.place(types.CategoryHighBarrier, 0, 2.5, 0)

			w.collisionSystem().Update()
			if w.player.Health != w.cfg.Rules.MaxHealth {
				t.Errorf("Expected no damage under %s, got health %d", timer, w.player.Health)
			}
		})
	}
}

// TestPickupChainToMinigame 测试 8 枚披萨再拾取 2 个：coins=10、弹药 +3、只触发一次小游戏
func TestPickupChainToMinigame(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.stats.Coins = 8
	cs := w.collisionSystem()

	w.place(types.CategoryPickup, 0, 0.5, 1.0)
	first := cs.Update()
	if first.MinigameRequested {
		t.Fatal("Expected no minigame at 9 coins")
	}

	w.place(types.CategoryPickup, 0, 0.5, 1.0)
	second := cs.Update()

	if w.stats.Coins != 10 {
		t.Errorf("Expected coins 10, got %d", w.stats.Coins)
	}
	if w.player.Ammo != 3 {
		t.Errorf("Expected ammo 3, got %d", w.player.Ammo)
	}
	if !second.MinigameRequested {
		t.Error("Expected minigame requested at 10 coins")
	}
	if !w.player.Timers.Active(game.TimerAmmoReloadToast) {
		t.Error("Expected ammo reload toast")
	}
	if got := game.Snapshot(w.player, w.stats).Coins; got != 10 {
		t.Errorf("Expected session coins 10, got %d", got)
	}
}

// TestPickupsSameTickTriggerOnce 测试同一帧拾取多个披萨只触发一次
func TestPickupsSameTickTriggerOnce(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.stats.Coins = 9
	for i := 0; i < 3; i++ {
		w.place(types.CategoryPickup, 0, 0.5, float64(i)*0.4)
	}

	report := w.collisionSystem().Update()
	if report.CoinsCollected != 3 || w.stats.Coins != 12 {
		t.Fatalf("Expected 3 coins collected, got %+v coins=%d", report, w.stats.Coins)
	}
	if !report.MinigameRequested {
		t.Error("Expected minigame requested")
	}
	if report.Reloads != 1 || w.player.Ammo != 3 {
		t.Errorf("Expected exactly one reload, got %d (ammo %d)", report.Reloads, w.player.Ammo)
	}

	w.place(types.CategoryPickup, 0, 0.5, 0)
	if w.collisionSystem().Update().MinigameRequested {
		t.Error("Expected no second trigger for the same boundary")
	}
}

// TestDoubleCoins 测试 DOUBLE_COINS 天赋每个披萨计 2 枚
func TestDoubleCoins(t *testing.T) {
	// 内置角色表中没有该天赋的角色，直接改写能力
	w := newTestWorld(t, "char_1")
	w.traits.PowerUp = types.PowerUpDoubleCoins
	w.place(types.CategoryPickup, 0, 0.5, 0)

	report := w.collisionSystem().Update()
	if w.stats.Coins != 2 || report.CoinsCollected != 2 {
		t.Errorf("Expected 2 coins with DOUBLE_COINS, got %d", w.stats.Coins)
	}
}

// TestSpeedMilestone 测试每 5 枚披萨速度倍增
func TestSpeedMilestone(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.stats.Coins = 4
	w.player.Speed = 0.01
	w.place(types.CategoryPickup, 0, 0.5, 0)

	w.collisionSystem().Update()
	want := 0.01 * w.cfg.Speed.MilestoneFactor
	if w.player.Speed != want {
		t.Errorf("Expected speed %f, got %f", want, w.player.Speed)
	}
}

// TestSpeedBoost 测试加速道具（不触发小游戏，速度有上限）
func TestSpeedBoost(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.stats.Coins = 9
	w.player.Speed = w.cfg.Speed.Max - 0.001
	boost := w.place(types.CategorySpeedBoost, 0, 0.5, 0)

	report := w.collisionSystem().Update()
	if report.SpeedBoosts != 1 || w.em.IsAlive(boost) {
		t.Errorf("Expected boost collected, got %+v", report)
	}
	if w.player.Speed != w.cfg.Speed.Max {
		t.Errorf("Expected speed capped at %f, got %f", w.cfg.Speed.Max, w.player.Speed)
	}
	if report.MinigameRequested || w.stats.Coins != 9 {
		t.Error("Expected speed boost not to count as a coin")
	}
	if !w.player.Timers.Active(game.TimerSpeedBoostToast) {
		t.Error("Expected speed boost toast")
	}
}

// TestProjectileDestroysHazard 测试投射物摧毁障碍且自身销毁
func TestProjectileDestroysHazard(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.player.Lane = 2
	w.player.X = 4
	proj := w.place(types.CategoryProjectile, 0, 1, 40)
	near := w.place(types.CategoryTrain, 0.5, 0, 41)
	behind := w.place(types.CategoryWall, 0, 0, 41.5)

	report := w.collisionSystem().Update()

	if w.em.IsAlive(proj) {
		t.Error("Expected projectile destroyed on hit")
	}
	if w.em.IsAlive(near) {
		t.Error("Expected first hazard destroyed")
	}
	if !w.em.IsAlive(behind) {
		t.Error("Expected no overpenetration")
	}
	if report.ProjectileHits != 1 || w.stats.IntScore() != w.cfg.Rules.HazardBonus {
		t.Errorf("Expected one hit worth %d, got %+v score=%f", w.cfg.Rules.HazardBonus, report, w.stats.Score)
	}
}

// TestProjectileIgnoresCollectibles 测试投射物不消耗披萨和加速道具
func TestProjectileIgnoresCollectibles(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.player.X = 4
	proj := w.place(types.CategoryProjectile, 0, 1, 40)
	pickup := w.place(types.CategoryPickup, 0, 0.5, 40)
	boost := w.place(types.CategorySpeedBoost, 0, 0.5, 40.5)

	w.collisionSystem().Update()

	if !w.em.IsAlive(proj) || !w.em.IsAlive(pickup) || !w.em.IsAlive(boost) {
		t.Error("Expected projectile to pass through collectibles")
	}
	if w.stats.Score != 0 {
		t.Errorf("Expected no bonus, got %f", w.stats.Score)
	}
}

// TestProjectileMissOutsideThreshold 测试阈值外不命中
func TestProjectileMissOutsideThreshold(t *testing.T) {
	w := newTestWorld(t, "char_1")
	w.player.X = 4
	w.place(types.CategoryProjectile, 0, 1, 40)
	w.place(types.CategoryTrain, 1.0, 0, 40) // 横向距离等于阈值
	w.place(types.CategoryTrain, 0, 0, 42)   // 纵深距离等于阈值

	if report := w.collisionSystem().Update(); report.ProjectileHits != 0 {
		t.Errorf("Expected no hits at exact thresholds, got %d", report.ProjectileHits)
	}
}
