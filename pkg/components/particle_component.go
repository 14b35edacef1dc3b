package components

// SpinComponent 碎片粒子的旋转状态
type SpinComponent struct {
	Rotation      float64 // 当前角度（度）
	RotationSpeed float64 // 每帧角速度（度）
}
