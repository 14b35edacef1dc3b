package components

// PositionComponent 实体的世界坐标
//
// 坐标系：
//   - X: 横向偏移（车道号 * 车道宽度），0 为中间车道
//   - Y: 离地高度，0 为地面
//   - Z: 纵深，数值越大离玩家越远
type PositionComponent struct {
	X float64
	Y float64
	Z float64
}
