// Package types 定义共享的基础类型
package types

// EntityCategory 定义世界实体的类别
type EntityCategory int

const (
	// CategoryUnknown 未知类别
	CategoryUnknown EntityCategory = iota

	// 地面障碍：需要跳跃越过
	CategoryLowBarrier // 低栏
	CategorySpikes     // 地刺

	// 高处障碍：需要翻滚通过（高栏）或保持在地面（无人机）
	CategoryHighBarrier // 高栏
	CategoryDrone       // 无人机

	// 整条车道阻挡：火车可被相移穿过，墙只能从上方越过
	CategoryTrain // 火车
	CategoryWall  // 墙

	// 可收集物
	CategoryPickup     // 披萨（金币）
	CategorySpeedBoost // 加速道具

	// 玩家发射的子弹
	CategoryProjectile

	// 纯视觉效果，不参与碰撞
	CategoryExplosion // 爆炸
	CategoryParticle  // 碎片粒子
)

// categoryStringMap 类别到配置字符串的映射
var categoryStringMap = map[EntityCategory]string{
	CategoryLowBarrier:  "low_barrier",
	CategorySpikes:      "spikes",
	CategoryHighBarrier: "high_barrier",
	CategoryDrone:       "drone",
	CategoryTrain:       "train",
	CategoryWall:        "wall",
	CategoryPickup:      "pickup",
	CategorySpeedBoost:  "speed_boost",
	CategoryProjectile:  "projectile",
	CategoryExplosion:   "explosion",
	CategoryParticle:    "particle",
}

// stringToCategoryMap 配置字符串到类别的反向映射
var stringToCategoryMap map[string]EntityCategory

func init() {
	stringToCategoryMap = make(map[string]EntityCategory, len(categoryStringMap))
	for c, s := range categoryStringMap {
		stringToCategoryMap[s] = c
	}
	// 原版命名
	stringToCategoryMap["pizza"] = CategoryPickup
}

// String 返回类别的配置字符串表示
func (c EntityCategory) String() string {
	if s, ok := categoryStringMap[c]; ok {
		return s
	}
	return "unknown"
}

// CategoryFromString 将配置字符串转换为 EntityCategory
func CategoryFromString(s string) EntityCategory {
	if c, ok := stringToCategoryMap[s]; ok {
		return c
	}
	return CategoryUnknown
}

// SpawnableCategories 返回生成器可以产生的类别（固定顺序）
func SpawnableCategories() []EntityCategory {
	return []EntityCategory{
		CategorySpeedBoost,
		CategoryPickup,
		CategoryLowBarrier,
		CategoryHighBarrier,
		CategoryTrain,
		CategoryWall,
		CategoryDrone,
		CategorySpikes,
	}
}

// IsHazard 判断是否为会伤害玩家的障碍
func (c EntityCategory) IsHazard() bool {
	switch c {
	case CategoryLowBarrier, CategorySpikes, CategoryHighBarrier, CategoryDrone, CategoryTrain, CategoryWall:
		return true
	default:
		return false
	}
}

// IsCollectible 判断是否为玩家可收集的物品
func (c EntityCategory) IsCollectible() bool {
	return c == CategoryPickup || c == CategorySpeedBoost
}

// IsCosmetic 判断是否为纯视觉实体
func (c EntityCategory) IsCosmetic() bool {
	return c == CategoryExplosion || c == CategoryParticle
}

// Scrolls 判断实体是否随世界向玩家滚动
func (c EntityCategory) Scrolls() bool {
	return c.IsHazard() || c.IsCollectible()
}
