package components

import "github.com/gonewx/runner/pkg/types"

// CategoryComponent 标识实体类别
// MovementSystem 和 CollisionSystem 根据类别决定如何处理该实体
type CategoryComponent struct {
	Category types.EntityCategory
	SubType  string // 子弹外观（由发射角色决定）
	Color    string // 爆炸/碎片颜色标签
}
