package game

import "github.com/gonewx/runner/pkg/components"

// TimerName 限时状态名称
type TimerName string

const (
	TimerShield          TimerName = "shield"            // 开局护盾
	TimerGrace           TimerName = "grace"             // 小游戏返回后的保护期
	TimerRampage         TimerName = "rampage"           // 狂暴
	TimerDamageCooldown  TimerName = "damage_cooldown"   // 受伤后短暂无敌
	TimerRoll            TimerName = "roll"              // 翻滚持续
	TimerFireCooldown    TimerName = "fire_cooldown"     // 射击间隔
	TimerSpeedBoostToast TimerName = "speed_boost_toast" // HUD 加速提示
	TimerAmmoReloadToast TimerName = "ammo_reload_toast" // HUD 装弹提示
)

// allTimerNames 固定遍历顺序，保证 Update 返回结果确定
var allTimerNames = []TimerName{
	TimerShield,
	TimerGrace,
	TimerRampage,
	TimerDamageCooldown,
	TimerRoll,
	TimerFireCooldown,
	TimerSpeedBoostToast,
	TimerAmmoReloadToast,
}

// StatusTimers 一组命名倒计时
//
// 所有限时状态共用同一个递减-清除流程：
// 计时归零的那一次 Update 返回该计时器名称，此后不再重复报告。
type StatusTimers struct {
	timers map[TimerName]*components.TimerComponent
}

// NewStatusTimers 创建全部处于停止状态的计时器组
func NewStatusTimers() *StatusTimers {
	st := &StatusTimers{
		timers: make(map[TimerName]*components.TimerComponent, len(allTimerNames)),
	}
	for _, name := range allTimerNames {
		st.timers[name] = &components.TimerComponent{Name: string(name)}
	}
	return st
}

// Start 启动（或重新启动）计时器
// seconds <= 0 等同于 Stop
func (st *StatusTimers) Start(name TimerName, seconds float64) {
	timer := st.get(name)
	if seconds <= 0 {
		timer.Active = false
		timer.Remaining = 0
		return
	}
	timer.Duration = seconds
	timer.Remaining = seconds
	timer.Active = true
}

// Stop 立即停止计时器，不产生到期事件
func (st *StatusTimers) Stop(name TimerName) {
	timer := st.get(name)
	timer.Active = false
	timer.Remaining = 0
}

// Active 计时器是否正在计时
func (st *StatusTimers) Active(name TimerName) bool {
	return st.get(name).Active
}

// Remaining 剩余秒数（未激活为 0）
func (st *StatusTimers) Remaining(name TimerName) float64 {
	timer := st.get(name)
	if !timer.Active {
		return 0
	}
	return timer.Remaining
}

// Update 按经过的时间递减所有激活的计时器
//
// 返回本次调用中到期的计时器名称（按固定顺序）。
func (st *StatusTimers) Update(dt float64) []TimerName {
	var expired []TimerName
	for _, name := range allTimerNames {
		timer := st.timers[name]
		if !timer.Active {
			continue
		}
		timer.Remaining -= dt
		if timer.Remaining <= 0 {
			timer.Remaining = 0
			timer.Active = false
			expired = append(expired, name)
		}
	}
	return expired
}

// Reset 停止所有计时器
func (st *StatusTimers) Reset() {
	for _, name := range allTimerNames {
		st.Stop(name)
	}
}

func (st *StatusTimers) get(name TimerName) *components.TimerComponent {
	timer, ok := st.timers[name]
	if !ok {
		timer = &components.TimerComponent{Name: string(name)}
		st.timers[name] = timer
	}
	return timer
}
