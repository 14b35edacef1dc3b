package game

// Phase 跑局所处阶段，任一时刻只有一个阶段处于激活状态
type Phase int

const (
	PhaseMenu     Phase = iota // 主菜单（选择角色）
	PhaseRunning               // 跑酷中
	PhaseMinigame              // 小游戏中，模拟暂停推进
	PhaseGameOver              // 结算
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhaseRunning:
		return "Running"
	case PhaseMinigame:
		return "Minigame"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
