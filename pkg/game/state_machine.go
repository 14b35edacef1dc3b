package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/types"
)

// ErrInvalidTransition 当前阶段不允许该生命周期操作
var ErrInvalidTransition = errors.New("invalid phase transition")

// TickOutcome 单帧模拟结果
type TickOutcome struct {
	// GameOver 本帧生命值耗尽
	GameOver bool
	// MinigameRequested 本帧跨过披萨里程碑
	MinigameRequested bool
	// Session 帧末的会话快照
	Session SessionState
}

// Simulation 单局模拟上下文
//
// 由 scenes.RunScene 实现，状态机只通过该接口驱动模拟。
type Simulation interface {
	// HandleCommand 排入一个玩家指令，下一次 Tick 时生效
	HandleCommand(cmd types.Command)
	// Tick 推进一帧
	Tick(dt float64) TickOutcome
	// Session 当前会话快照
	Session() SessionState
	// Resume 小游戏结束后把会话写回原有玩家状态并继续
	Resume(session SessionState, success bool)
	// Snapshot 渲染快照
	Snapshot() Frame
}

// SimulationFactory 模拟工厂函数
// 用于创建新的一局，避免 game 与 scenes 之间的循环依赖
type SimulationFactory func(traits config.CharacterTraits) Simulation

// RunStateMachine 跑局状态机
//
// 阶段流转：Menu → Running → Minigame → Running → GameOver。
// 宿主每帧调用一次 Frame；所有状态只在调用方所在的 goroutine 中修改。
type RunStateMachine struct {
	phase  Phase
	paused bool

	cfg     *config.GameConfig
	roster  *config.Roster
	factory SimulationFactory
	rng     *rand.Rand
	clock   *FrameClock

	minigameKinds []types.MinigameKind

	sim         Simulation
	characterID string
	traits      config.CharacterTraits

	// pending 进入小游戏时冻结的会话
	pending      SessionState
	pendingKind  types.MinigameKind
	finalSession SessionState
}

// NewRunStateMachine 创建处于 Menu 阶段的状态机
func NewRunStateMachine(cfg *config.GameConfig, roster *config.Roster, factory SimulationFactory, rng *rand.Rand) *RunStateMachine {
	return &RunStateMachine{
		phase:         PhaseMenu,
		cfg:           cfg,
		roster:        roster,
		factory:       factory,
		rng:           rng,
		clock:         NewFrameClock(cfg.Timers.MaxFrameDelta),
		minigameKinds: []types.MinigameKind{types.MinigameCannon, types.MinigameMath, types.MinigameCode, types.MinigameDodge},
	}
}

// SetMinigameKinds 设置可随机选择的小游戏类型
func (m *RunStateMachine) SetMinigameKinds(kinds ...types.MinigameKind) {
	if len(kinds) == 0 {
		return
	}
	m.minigameKinds = append([]types.MinigameKind(nil), kinds...)
}

// Phase 当前阶段
func (m *RunStateMachine) Phase() Phase {
	return m.phase
}

// Paused 是否暂停
func (m *RunStateMachine) Paused() bool {
	return m.paused
}

// Simulation 当前模拟（Menu 阶段为 nil）
func (m *RunStateMachine) Simulation() Simulation {
	return m.sim
}

// Traits 当前角色能力
func (m *RunStateMachine) Traits() config.CharacterTraits {
	return m.traits
}

// PendingMinigame 当前等待结果的小游戏及其会话
func (m *RunStateMachine) PendingMinigame() (types.MinigameKind, SessionState, bool) {
	if m.phase != PhaseMinigame {
		return "", SessionState{}, false
	}
	return m.pendingKind, m.pending, true
}

// FinalSession 结算数据
func (m *RunStateMachine) FinalSession() SessionState {
	return m.finalSession
}

// StartRun 以指定角色开始新的一局
// 仅允许在 Menu 或 GameOver 阶段调用
func (m *RunStateMachine) StartRun(characterID string) error {
	if m.phase != PhaseMenu && m.phase != PhaseGameOver {
		return fmt.Errorf("start run in phase %s: %w", m.phase, ErrInvalidTransition)
	}
	if m.factory == nil {
		return fmt.Errorf("simulation factory not set: %w", ErrInvalidTransition)
	}

	m.characterID = characterID
	m.traits = m.roster.Lookup(characterID)
	m.begin()
	log.Printf("[RunStateMachine] 开始跑局: character=%s powerUp=%s", m.traits.ID, m.traits.PowerUp)
	return nil
}

// Restart 以相同角色重新开始
func (m *RunStateMachine) Restart() error {
	if m.phase == PhaseMenu {
		return fmt.Errorf("restart in phase %s: %w", m.phase, ErrInvalidTransition)
	}
	m.begin()
	log.Printf("[RunStateMachine] 重新开始: character=%s", m.traits.ID)
	return nil
}

// begin 创建全新的模拟上下文并进入 Running
func (m *RunStateMachine) begin() {
	m.sim = m.factory(m.traits)
	m.pending = SessionState{}
	m.pendingKind = ""
	m.finalSession = SessionState{}
	m.paused = false
	m.clock.Reset()
	m.setPhase(PhaseRunning)
}

// Quit 从任意阶段返回菜单，丢弃当前会话
func (m *RunStateMachine) Quit() {
	m.sim = nil
	m.pending = SessionState{}
	m.pendingKind = ""
	m.paused = false
	m.clock.Reset()
	m.setPhase(PhaseMenu)
}

// TogglePause 切换暂停，仅在 Running 阶段有效
func (m *RunStateMachine) TogglePause() error {
	if m.phase != PhaseRunning {
		return fmt.Errorf("toggle pause in phase %s: %w", m.phase, ErrInvalidTransition)
	}
	m.paused = !m.paused
	log.Printf("[RunStateMachine] 暂停: %v", m.paused)
	return nil
}

// HandleCommand 转发玩家指令
// 非 Running 阶段或暂停时忽略
func (m *RunStateMachine) HandleCommand(cmd types.Command) {
	if m.phase != PhaseRunning || m.paused || m.sim == nil {
		return
	}
	m.sim.HandleCommand(cmd)
}

// Frame 宿主每帧调用一次，now 为单调递增的秒数
//
// 暂停时只重置帧时钟基准，不推进模拟。
func (m *RunStateMachine) Frame(now float64) {
	if m.phase != PhaseRunning || m.paused {
		m.clock.Rebase(now)
		return
	}
	m.Step(m.clock.Advance(now))
}

// Step 以给定的 dt 推进一帧
func (m *RunStateMachine) Step(dt float64) {
	if m.phase != PhaseRunning || m.paused || m.sim == nil {
		return
	}

	outcome := m.sim.Tick(dt)

	// 同一帧内生命值耗尽优先于小游戏请求
	if outcome.GameOver {
		m.finish(outcome.Session)
		return
	}
	if outcome.MinigameRequested {
		m.pending = outcome.Session
		m.pendingKind = m.chooseMinigame()
		m.setPhase(PhaseMinigame)
		log.Printf("[RunStateMachine] 进入小游戏 %s: coins=%d health=%d", m.pendingKind, m.pending.Coins, m.pending.Health)
	}
}

// CompleteMinigame 接收小游戏结果
//
// 成功生命值 +1（不超过上限），失败 -1；归零则结算，
// 否则把会话写回原模拟并恢复 Running。
func (m *RunStateMachine) CompleteMinigame(success bool) error {
	if m.phase != PhaseMinigame {
		return fmt.Errorf("complete minigame in phase %s: %w", m.phase, ErrInvalidTransition)
	}

	session := m.pending
	if success {
		session.Health++
		if session.Health > m.cfg.Rules.MaxHealth {
			session.Health = m.cfg.Rules.MaxHealth
		}
	} else {
		session.Health--
		if session.Health < 0 {
			session.Health = 0
		}
	}
	log.Printf("[RunStateMachine] 小游戏结束: success=%v health=%d", success, session.Health)

	m.pending = SessionState{}
	m.pendingKind = ""

	if session.Health <= 0 {
		m.finish(session)
		return nil
	}

	m.sim.Resume(session, success)
	m.clock.Reset()
	m.setPhase(PhaseRunning)
	return nil
}

// Snapshot 当前帧快照
func (m *RunStateMachine) Snapshot() Frame {
	var frame Frame
	if m.sim != nil && (m.phase == PhaseRunning || m.phase == PhaseMinigame) {
		frame = m.sim.Snapshot()
	}
	frame.Phase = m.phase
	frame.Paused = m.paused
	if m.phase == PhaseMinigame {
		frame.Minigame = m.pendingKind
	}
	if m.phase == PhaseGameOver {
		frame.Summary = m.finalSession
	}
	return frame
}

func (m *RunStateMachine) finish(session SessionState) {
	m.finalSession = session
	m.sim = nil
	m.paused = false
	m.setPhase(PhaseGameOver)
	log.Printf("[RunStateMachine] 游戏结束: score=%d coins=%d distance=%.1f", session.Score, session.Coins, session.Distance)
}

func (m *RunStateMachine) chooseMinigame() types.MinigameKind {
	if len(m.minigameKinds) == 1 || m.rng == nil {
		return m.minigameKinds[0]
	}
	return m.minigameKinds[m.rng.Intn(len(m.minigameKinds))]
}

func (m *RunStateMachine) setPhase(p Phase) {
	if m.phase != p {
		log.Printf("[RunStateMachine] 阶段切换: %s → %s", m.phase, p)
	}
	m.phase = p
}
