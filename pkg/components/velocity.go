package components

// VelocityComponent 速度组件（每帧位移）
// 目前只有碎片粒子使用
type VelocityComponent struct {
	VX float64
	VY float64
	VZ float64
}
