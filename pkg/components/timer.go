package components

// TimerComponent 倒计时计时器
// 用于无敌、狂暴、受伤冷却、翻滚、射击冷却等限时状态
type TimerComponent struct {
	Name      string  // 计时器名称，如 "rampage"
	Duration  float64 // 最近一次启动时的总时长（秒）
	Remaining float64 // 剩余时间（秒）
	Active    bool    // 是否正在计时
}
