package types

// PowerUpType 角色天赋类型
type PowerUpType int

const (
	PowerUpNone        PowerUpType = iota
	PowerUpShield                  // 开局护盾：一段时间内无敌
	PowerUpMagnet                  // 磁铁：吸引前方披萨
	PowerUpDoubleScore             // 双倍距离得分
	PowerUpSuperJump               // 超级跳
	PowerUpSlowTime                // 世界滚动减速
	PowerUpDoubleCoins             // 每个披萨计2枚
	PowerUpPhaseShift              // 穿过火车
	PowerUpFloaty                  // 低重力
)

var powerUpStringMap = map[PowerUpType]string{
	PowerUpNone:        "NONE",
	PowerUpShield:      "SHIELD",
	PowerUpMagnet:      "MAGNET",
	PowerUpDoubleScore: "DOUBLE_SCORE",
	PowerUpSuperJump:   "SUPER_JUMP",
	PowerUpSlowTime:    "SLOW_TIME",
	PowerUpDoubleCoins: "DOUBLE_COINS",
	PowerUpPhaseShift:  "PHASE_SHIFT",
	PowerUpFloaty:      "FLOATY",
}

// String 返回天赋的配置字符串
func (p PowerUpType) String() string {
	if s, ok := powerUpStringMap[p]; ok {
		return s
	}
	return "NONE"
}

// PowerUpFromString 将配置字符串转换为 PowerUpType
// 未知字符串返回 PowerUpNone 和 false
func PowerUpFromString(s string) (PowerUpType, bool) {
	for p, name := range powerUpStringMap {
		if name == s {
			return p, true
		}
	}
	return PowerUpNone, false
}

// 子弹外观子类型
const (
	ProjectileHandcuff    = "HANDCUFF"
	ProjectileFireball    = "FIREBALL"
	ProjectileBlood       = "BLOOD"
	ProjectileLightStar   = "LIGHT_STAR"
	ProjectileNeonCat     = "NEON_CAT"
	ProjectileNumberBolt  = "NUMBER_BOLT"
	ProjectileEctoBlast   = "ECTO_BLAST"
	ProjectileRocket      = "ROCKET"
	ProjectileSoccerBall  = "SOCCER_BALL"
	ProjectileWaterBottle = "WATER_BOTTLE"
	ProjectileGeneric     = "GENERIC"
)
