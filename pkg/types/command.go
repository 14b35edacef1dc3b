package types

// Command 抽象输入指令
// 键盘、触摸等设备事件由 input 包翻译为 Command
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandJump
	CommandDrop
	CommandFire
)

// String 返回指令名称（用于日志）
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandJump:
		return "Jump"
	case CommandDrop:
		return "Drop"
	case CommandFire:
		return "Fire"
	default:
		return "None"
	}
}

// LocomotionState 玩家运动状态（互斥）
type LocomotionState int

const (
	LocomotionRunning LocomotionState = iota
	LocomotionJumping
	LocomotionRolling
)

// String 返回运动状态名称
func (s LocomotionState) String() string {
	switch s {
	case LocomotionJumping:
		return "jumping"
	case LocomotionRolling:
		return "rolling"
	default:
		return "running"
	}
}

// MinigameKind 小游戏种类
type MinigameKind string

const (
	MinigameMath   MinigameKind = "math"
	MinigameCode   MinigameKind = "code"
	MinigameCannon MinigameKind = "cannon"
	MinigameDodge  MinigameKind = "dodge"
)
