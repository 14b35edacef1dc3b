package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/types"
)

// fakeSimulation 记录调用的模拟替身
type fakeSimulation struct {
	traits   config.CharacterTraits
	session  SessionState
	outcomes []TickOutcome
	ticks    int
	lastDT   float64
	commands []types.Command

	resumed        bool
	resumedSuccess bool
}

func (f *fakeSimulation) HandleCommand(cmd types.Command) {
	f.commands = append(f.commands, cmd)
}

func (f *fakeSimulation) Tick(dt float64) TickOutcome {
	f.ticks++
	f.lastDT = dt
	if len(f.outcomes) == 0 {
		return TickOutcome{Session: f.session}
	}
	out := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	f.session = out.Session
	return out
}

func (f *fakeSimulation) Session() SessionState {
	return f.session
}

func (f *fakeSimulation) Resume(session SessionState, success bool) {
	f.session = session
	f.resumed = true
	f.resumedSuccess = success
}

func (f *fakeSimulation) Snapshot() Frame {
	return Frame{HUD: HUD{Score: f.session.Score, Health: f.session.Health}}
}

// newTestMachine 创建使用替身模拟的状态机
func newTestMachine(t *testing.T) (*RunStateMachine, *[]*fakeSimulation) {
	t.Helper()
	var created []*fakeSimulation
	factory := func(traits config.CharacterTraits) Simulation {
		sim := &fakeSimulation{traits: traits, session: SessionState{Health: 3}}
		created = append(created, sim)
		return sim
	}
	m := NewRunStateMachine(config.DefaultGameConfig(), config.DefaultRoster(), factory, rand.New(rand.NewSource(1)))
	return m, &created
}

// TestStateMachineStartsInMenu 测试初始阶段
func TestStateMachineStartsInMenu(t *testing.T) {
	m, _ := newTestMachine(t)
	if m.Phase() != PhaseMenu {
		t.Errorf("Expected Menu, got %s", m.Phase())
	}
	if m.Snapshot().Phase != PhaseMenu {
		t.Error("Expected Menu snapshot")
	}
}

// TestStartRunUsesRoster 测试开局查询角色能力，未知角色回退
func TestStartRunUsesRoster(t *testing.T) {
	m, created := newTestMachine(t)

	if err := m.StartRun("char_2"); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if m.Phase() != PhaseRunning {
		t.Fatalf("Expected Running, got %s", m.Phase())
	}
	if got := (*created)[0].traits.PowerUp; got != types.PowerUpMagnet {
		t.Errorf("Expected MAGNET trait, got %s", got)
	}

	if err := m.StartRun("char_1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition while running, got %v", err)
	}

	m.Quit()
	if err := m.StartRun("nobody"); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if got := m.Traits().ID; got != "generic" {
		t.Errorf("Expected generic fallback, got %s", got)
	}
}

// TestMinigameRequestAndSuccess 测试进入小游戏并成功返回
func TestMinigameRequestAndSuccess(t *testing.T) {
	m, created := newTestMachine(t)
	m.StartRun("char_1")
	sim := (*created)[0]
	session := SessionState{Score: 400, Coins: 10, Distance: 50, Speed: 0.01, Health: 2, Ammo: 3}
	sim.outcomes = []TickOutcome{{MinigameRequested: true, Session: session}}

	m.Step(1.0 / 60)
	if m.Phase() != PhaseMinigame {
		t.Fatalf("Expected Minigame, got %s", m.Phase())
	}
	kind, pending, ok := m.PendingMinigame()
	if !ok || pending != session {
		t.Errorf("Expected pending session %+v, got %+v (ok=%v)", session, pending, ok)
	}
	switch kind {
	case types.MinigameCannon, types.MinigameMath, types.MinigameCode, types.MinigameDodge:
	default:
		t.Errorf("Expected registered minigame kind, got %q", kind)
	}

	// 小游戏期间模拟不推进
	m.Step(1.0 / 60)
	if sim.ticks != 1 {
		t.Errorf("Expected simulation halted during minigame, ticks=%d", sim.ticks)
	}

	if err := m.CompleteMinigame(true); err != nil {
		t.Fatalf("CompleteMinigame failed: %v", err)
	}
	if m.Phase() != PhaseRunning {
		t.Fatalf("Expected Running, got %s", m.Phase())
	}
	if !sim.resumed || !sim.resumedSuccess {
		t.Error("Expected same simulation resumed with success")
	}
	if sim.session.Health != 3 || sim.session.Coins != 10 || sim.session.Score != 400 {
		t.Errorf("Expected health 3 with progress kept, got %+v", sim.session)
	}
	if len(*created) != 1 {
		t.Errorf("Expected no new simulation on resume, got %d", len(*created))
	}
}

// TestMinigameHealthCap 测试成功时生命值不超过上限
func TestMinigameHealthCap(t *testing.T) {
	m, created := newTestMachine(t)
	m.StartRun("char_1")
	sim := (*created)[0]
	sim.outcomes = []TickOutcome{{MinigameRequested: true, Session: SessionState{Health: 3, Coins: 10}}}
	m.Step(0.016)

	m.CompleteMinigame(true)
	if sim.session.Health != 3 {
		t.Errorf("Expected health capped at 3, got %d", sim.session.Health)
	}
}

// TestMinigameFailure 测试失败扣血及扣到 0 时结算
func TestMinigameFailure(t *testing.T) {
	tests := []struct {
		name      string
		health    int
		wantPhase Phase
		wantHP    int
	}{
		{"survives", 2, PhaseRunning, 1},
		{"depleted", 1, PhaseGameOver, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, created := newTestMachine(t)
			m.StartRun("char_1")
			sim := (*created)[0]
			sim.outcomes = []TickOutcome{{MinigameRequested: true, Session: SessionState{Health: tt.health, Coins: 10}}}
			m.Step(0.016)

			if err := m.CompleteMinigame(false); err != nil {
				t.Fatalf("CompleteMinigame failed: %v", err)
			}
			if m.Phase() != tt.wantPhase {
				t.Fatalf("Expected %s, got %s", tt.wantPhase, m.Phase())
			}
			if tt.wantPhase == PhaseRunning {
				if sim.session.Health != tt.wantHP || sim.resumedSuccess {
					t.Errorf("Expected health %d without rampage, got %+v", tt.wantHP, sim.session)
				}
			} else if m.FinalSession().Health != 0 {
				t.Errorf("Expected final health 0, got %d", m.FinalSession().Health)
			}
		})
	}
}

// TestGameOverWinsOverMinigame 测试同帧死亡优先于小游戏
func TestGameOverWinsOverMinigame(t *testing.T) {
	m, created := newTestMachine(t)
	m.StartRun("char_1")
	(*created)[0].outcomes = []TickOutcome{{GameOver: true, MinigameRequested: true, Session: SessionState{Score: 77, Coins: 10}}}

	m.Step(0.016)
	if m.Phase() != PhaseGameOver {
		t.Fatalf("Expected GameOver, got %s", m.Phase())
	}
	if got := m.Snapshot().Summary.Score; got != 77 {
		t.Errorf("Expected summary score 77, got %d", got)
	}
	if err := m.CompleteMinigame(true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

// TestRestartCreatesFreshSimulation 测试重新开始创建新模拟并保留角色
func TestRestartCreatesFreshSimulation(t *testing.T) {
	m, created := newTestMachine(t)

	if err := m.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected restart from menu to fail, got %v", err)
	}

	m.StartRun("char_3")
	(*created)[0].outcomes = []TickOutcome{{GameOver: true}}
	m.Step(0.016)

	if err := m.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if len(*created) != 2 {
		t.Fatalf("Expected fresh simulation, got %d", len(*created))
	}
	if (*created)[1].traits.ID != "char_3" {
		t.Errorf("Expected same character, got %s", (*created)[1].traits.ID)
	}
	if m.Phase() != PhaseRunning {
		t.Errorf("Expected Running, got %s", m.Phase())
	}
}

// TestPauseSkipsMutation 测试暂停时不推进模拟且恢复后无时间跳变
func TestPauseSkipsMutation(t *testing.T) {
	m, created := newTestMachine(t)
	m.StartRun("char_1")
	sim := (*created)[0]

	m.Frame(1.0)
	m.Frame(1.05)
	if sim.ticks != 2 {
		t.Fatalf("Expected 2 ticks, got %d", sim.ticks)
	}

	if err := m.TogglePause(); err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	m.HandleCommand(types.CommandJump)
	m.Frame(2.0)
	m.Frame(60.0)
	if sim.ticks != 2 {
		t.Errorf("Expected no ticks while paused, got %d", sim.ticks)
	}
	if len(sim.commands) != 0 {
		t.Errorf("Expected commands ignored while paused, got %v", sim.commands)
	}

	m.TogglePause()
	m.Frame(60.02)
	if sim.lastDT < 0.019 || sim.lastDT > 0.021 {
		t.Errorf("Expected dt ~0.02 after unpause, got %f", sim.lastDT)
	}
}

// TestTogglePauseOutsideRunning 测试非 Running 阶段不能暂停
func TestTogglePauseOutsideRunning(t *testing.T) {
	m, _ := newTestMachine(t)
	if err := m.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

// TestQuitFromAnyPhase 测试任意阶段都能返回菜单
func TestQuitFromAnyPhase(t *testing.T) {
	m, created := newTestMachine(t)
	m.StartRun("char_1")
	(*created)[0].outcomes = []TickOutcome{{MinigameRequested: true, Session: SessionState{Health: 3}}}
	m.Step(0.016)

	m.Quit()
	if m.Phase() != PhaseMenu {
		t.Errorf("Expected Menu, got %s", m.Phase())
	}
	if m.Simulation() != nil {
		t.Error("Expected session discarded")
	}
	if _, _, ok := m.PendingMinigame(); ok {
		t.Error("Expected no pending minigame after quit")
	}
}

// TestSingleMinigameKind 测试只注册一种小游戏时总是选择它
func TestSingleMinigameKind(t *testing.T) {
	m, created := newTestMachine(t)
	m.SetMinigameKinds(types.MinigameCode)
	m.StartRun("char_1")
	(*created)[0].outcomes = []TickOutcome{{MinigameRequested: true, Session: SessionState{Health: 3}}}
	m.Step(0.016)

	if kind, _, _ := m.PendingMinigame(); kind != types.MinigameCode {
		t.Errorf("Expected code minigame, got %q", kind)
	}
}
