package game

import (
	"testing"

	"github.com/gonewx/runner/pkg/config"
)

func testRules() config.RulesConfig {
	return config.DefaultGameConfig().Rules
}

// TestAddCoinsMilestones 测试披萨里程碑计算
func TestAddCoinsMilestones(t *testing.T) {
	tests := []struct {
		name         string
		start        int
		add          int
		wantSpeed    int
		wantReloads  int
		wantMinigame bool
	}{
		{"below every milestone", 0, 1, 0, 0, false},
		{"cross speed milestone", 4, 1, 1, 0, false},
		{"cross coin milestone", 9, 1, 1, 1, true},
		{"double coins across 10", 9, 2, 1, 1, true},
		{"land past 10 from 8", 8, 2, 1, 1, true},
		{"no milestone inside band", 11, 2, 0, 0, false},
		{"zero coins", 9, 0, 0, 0, false},
	}

	rules := testRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &RunStats{Coins: tt.start, lastMilestone: tt.start / rules.CoinMilestone}
			got := rs.AddCoins(tt.add, rules)
			if got.SpeedMilestones != tt.wantSpeed {
				t.Errorf("Expected %d speed milestones, got %d", tt.wantSpeed, got.SpeedMilestones)
			}
			if got.Reloads != tt.wantReloads {
				t.Errorf("Expected %d reloads, got %d", tt.wantReloads, got.Reloads)
			}
			if got.TriggerMinigame != tt.wantMinigame {
				t.Errorf("Expected minigame %v, got %v", tt.wantMinigame, got.TriggerMinigame)
			}
		})
	}
}

// TestAddCoinsTriggersOncePerBoundary 测试同一边界只触发一次小游戏
func TestAddCoinsTriggersOncePerBoundary(t *testing.T) {
	rules := testRules()
	rs := &RunStats{Coins: 9}

	if !rs.AddCoins(1, rules).TriggerMinigame {
		t.Fatal("Expected first crossing of 10 to trigger")
	}
	// 同一帧内继续拾取
	if rs.AddCoins(1, rules).TriggerMinigame {
		t.Error("Expected pending minigame to suppress re-trigger")
	}

	rs.ClearMinigame(rules)
	for i := 0; i < 8; i++ {
		if rs.AddCoins(1, rules).TriggerMinigame {
			t.Errorf("Expected no trigger at coins=%d", rs.Coins)
		}
	}
	if rs.Coins != 19 {
		t.Fatalf("Expected coins 19, got %d", rs.Coins)
	}
	if !rs.AddCoins(1, rules).TriggerMinigame {
		t.Error("Expected crossing of 20 to trigger")
	}
}

// TestClearMinigameAbsorbsPendingBoundaries 测试挂起期间跨过的边界并入同一次小游戏
func TestClearMinigameAbsorbsPendingBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start int
		adds  []int
	}{
		{"一次跨过两个边界", 9, []int{12}},
		{"挂起期间再跨边界", 9, []int{1, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := testRules()
			rs := &RunStats{Coins: tt.start}
			triggers := 0
			for _, n := range tt.adds {
				if rs.AddCoins(n, rules).TriggerMinigame {
					triggers++
				}
			}
			if triggers != 1 {
				t.Fatalf("Expected exactly one trigger, got %d", triggers)
			}

			rs.ClearMinigame(rules)
			if rs.MinigamePending() {
				t.Error("Expected pending flag cleared")
			}
			for rs.Coins < 29 {
				if rs.AddCoins(1, rules).TriggerMinigame {
					t.Fatalf("Expected absorbed boundary not to re-trigger at coins=%d", rs.Coins)
				}
			}
			if !rs.AddCoins(1, rules).TriggerMinigame {
				t.Error("Expected crossing of 30 to trigger")
			}
		})
	}
}

// TestSessionRoundTrip 测试会话交接后原样写回
func TestSessionRoundTrip(t *testing.T) {
	cfg := config.DefaultGameConfig()
	player := NewPlayerState(cfg)
	player.Distance = 123.5
	player.Speed = 0.02
	player.Ammo = 4
	player.Health = 2
	stats := &RunStats{Score: 987.75, Coins: 10}

	session := Snapshot(player, stats)
	if session.Score != 987 {
		t.Errorf("Expected integer score 987, got %d", session.Score)
	}

	other := NewPlayerState(cfg)
	otherStats := &RunStats{}
	Rehydrate(session, other, otherStats, cfg.Rules)

	if got := Snapshot(other, otherStats); got != session {
		t.Errorf("Expected round trip %+v, got %+v", session, got)
	}

	// 原对象写回未修改的会话时保留小数分
	Rehydrate(session, player, stats, cfg.Rules)
	if stats.Score != 987.75 {
		t.Errorf("Expected fractional score kept, got %f", stats.Score)
	}
}

// TestRehydrateClampsHealth 测试写回时生命值被限制在合法范围
func TestRehydrateClampsHealth(t *testing.T) {
	cfg := config.DefaultGameConfig()
	player := NewPlayerState(cfg)
	stats := &RunStats{}

	Rehydrate(SessionState{Health: 99, Ammo: -2}, player, stats, cfg.Rules)
	if player.Health != cfg.Rules.MaxHealth {
		t.Errorf("Expected health clamped to %d, got %d", cfg.Rules.MaxHealth, player.Health)
	}
	if player.Ammo != 0 {
		t.Errorf("Expected ammo clamped to 0, got %d", player.Ammo)
	}
}

// TestPlayerStateHelpers 测试玩家状态辅助方法
func TestPlayerStateHelpers(t *testing.T) {
	cfg := config.DefaultGameConfig()
	p := NewPlayerState(cfg)

	if !p.Grounded() {
		t.Error("Expected new player to be grounded")
	}
	if p.Invincible() {
		t.Error("Expected new player not to be invincible")
	}
	p.Timers.Start(TimerDamageCooldown, 1)
	if p.Invincible() {
		t.Error("Expected damage cooldown not to count as invincible")
	}
	p.Timers.Start(TimerGrace, 1)
	if !p.Invincible() {
		t.Error("Expected grace to count as invincible")
	}

	if p.SpendAmmo() {
		t.Error("Expected SpendAmmo to fail with no ammo")
	}
	p.Ammo = 1
	if !p.SpendAmmo() || p.Ammo != 0 {
		t.Errorf("Expected ammo spent to 0, got %d", p.Ammo)
	}

	p.Health = 1
	if !p.TakeDamage(3) {
		t.Error("Expected TakeDamage to report depletion")
	}
	if p.Health != 0 {
		t.Errorf("Expected health clamped to 0, got %d", p.Health)
	}
}
