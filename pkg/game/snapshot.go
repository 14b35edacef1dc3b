package game

import (
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/types"
)

// EntityView 渲染用的实体只读视图（世界坐标）
type EntityView struct {
	ID       ecs.EntityID
	Category types.EntityCategory
	SubType  string
	Color    string
	X, Y, Z  float64
	Width    float64
	Height   float64
	Rotation float64
	// Life 剩余寿命比例 (0, 1]，无寿命的实体为 1
	Life float64
}

// PlayerView 玩家只读视图
type PlayerView struct {
	Lane       int
	X, Y, Z    float64
	Locomotion types.LocomotionState

	Invincible       bool
	Shielded         bool
	DamageCooldown   bool
	HasAmmo          bool
	RampageRemaining float64

	CharacterID string
	Color       string
	AccentColor string
}

// HUD 抬头显示数据
type HUD struct {
	Score     int
	Coins     int
	Ammo      int
	Health    int
	MaxHealth int
	Distance  float64
	Speed     float64

	RampageSeconds  float64
	SpeedBoostToast bool
	AmmoReloadToast bool
}

// Frame 每帧交给渲染层的快照
// 渲染只读取快照，不得回写模拟状态
type Frame struct {
	Phase    Phase
	Paused   bool
	Player   PlayerView
	Entities []EntityView
	HUD      HUD

	// Minigame 当前小游戏类型（仅 PhaseMinigame）
	Minigame types.MinigameKind
	// Summary 结算数据（仅 PhaseGameOver）
	Summary SessionState
}
