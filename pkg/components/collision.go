package components

// CollisionComponent 定义实体的碰撞尺寸
// 碰撞判定以车道距离和纵深距离阈值为主，尺寸用于渲染和调试
type CollisionComponent struct {
	Width  float64 // 横向宽度（世界单位）
	Height float64 // 竖直高度（世界单位）
}
