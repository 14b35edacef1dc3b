package game

// FrameClock 把宿主提供的时间戳换算为每帧经过的秒数
//
// 单帧间隔被限制在 maxDelta 以内，
// 暂停期间通过 Rebase 重置基准，恢复后不会出现时间跳变。
type FrameClock struct {
	last     float64
	started  bool
	maxDelta float64
}

// NewFrameClock 创建帧时钟，maxDelta <= 0 表示不限制
func NewFrameClock(maxDelta float64) *FrameClock {
	return &FrameClock{maxDelta: maxDelta}
}

// Advance 记录新的时间戳并返回距上一帧的秒数
// 第一次调用只建立基准，返回 0
func (c *FrameClock) Advance(now float64) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

// Rebase 把基准移动到 now，不产生经过时间
func (c *FrameClock) Rebase(now float64) {
	c.started = true
	c.last = now
}

// Reset 清除基准，下一次 Advance 重新建立
func (c *FrameClock) Reset() {
	c.started = false
	c.last = 0
}
