package game

import "github.com/gonewx/runner/pkg/config"

// SessionState 跑局进度快照
// 这是交给小游戏、再原样交回的唯一载荷
type SessionState struct {
	Score    int
	Coins    int
	Distance float64
	Speed    float64
	Health   int
	Ammo     int
}

// RunStats 计分与披萨统计
type RunStats struct {
	// Score 累计得分，保留小数部分，对外取整
	Score float64
	Coins int

	// CollectedPowerups 已拾取的加速道具数
	CollectedPowerups int

	// lastMilestone 已触发过小游戏的最高披萨里程碑序号（Coins / CoinMilestone）
	lastMilestone int
	// minigamePending 已请求小游戏但尚未返回
	minigamePending bool
}

// CoinResult 一次拾取引起的里程碑变化
type CoinResult struct {
	SpeedMilestones int  // 跨过的速度里程碑数量
	Reloads         int  // 跨过的装弹里程碑数量
	TriggerMinigame bool // 本次拾取需要进入小游戏
}

// AddCoins 增加披萨数并计算跨过的里程碑
//
// 每个里程碑边界只会触发一次小游戏，
// 即使同一帧内拾取了多个披萨，或者一次跨过多个边界。
func (rs *RunStats) AddCoins(n int, rules config.RulesConfig) CoinResult {
	if n <= 0 {
		return CoinResult{}
	}
	before := rs.Coins
	rs.Coins += n

	result := CoinResult{
		SpeedMilestones: rs.Coins/rules.SpeedMilestone - before/rules.SpeedMilestone,
		Reloads:         rs.Coins/rules.CoinMilestone - before/rules.CoinMilestone,
	}

	milestone := rs.Coins / rules.CoinMilestone
	if milestone > rs.lastMilestone && !rs.minigamePending {
		rs.lastMilestone = milestone
		rs.minigamePending = true
		result.TriggerMinigame = true
	}
	return result
}

// MinigamePending 是否有尚未处理的小游戏请求
func (rs *RunStats) MinigamePending() bool {
	return rs.minigamePending
}

// ClearMinigame 小游戏结束后清除请求标志
//
// 当前披萨数所在的里程碑视为已处理：请求挂起期间又跨过的边界
// 并入这一次小游戏，不会在返回跑局后补触发。
func (rs *RunStats) ClearMinigame(rules config.RulesConfig) {
	rs.minigamePending = false
	if m := rs.Coins / rules.CoinMilestone; m > rs.lastMilestone {
		rs.lastMilestone = m
	}
}

// IntScore 取整后的得分
func (rs *RunStats) IntScore() int {
	return int(rs.Score)
}

// AddBonus 增加固定奖励分
func (rs *RunStats) AddBonus(points int) {
	rs.Score += float64(points)
}

// Snapshot 组合玩家状态和统计，生成交接载荷
func Snapshot(player *PlayerState, stats *RunStats) SessionState {
	return SessionState{
		Score:    stats.IntScore(),
		Coins:    stats.Coins,
		Distance: player.Distance,
		Speed:    player.Speed,
		Health:   player.Health,
		Ammo:     player.Ammo,
	}
}

// Rehydrate 把交接载荷写回已有的玩家状态和统计
//
// 得分未被修改时保留原有的小数部分。
func Rehydrate(session SessionState, player *PlayerState, stats *RunStats, rules config.RulesConfig) {
	if session.Score != stats.IntScore() {
		stats.Score = float64(session.Score)
	}
	stats.Coins = session.Coins
	player.Distance = session.Distance
	player.Speed = session.Speed
	player.Ammo = session.Ammo
	if player.Ammo < 0 {
		player.Ammo = 0
	}
	player.Health = session.Health
	if player.Health > rules.MaxHealth {
		player.Health = rules.MaxHealth
	}
	if player.Health < 0 {
		player.Health = 0
	}
	stats.ClearMinigame(rules)
}
