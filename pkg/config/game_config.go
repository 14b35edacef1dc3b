package config

import (
	"fmt"
	"math"
	"os"

	"github.com/gonewx/runner/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfig 跑酷模拟的全部调参项
//
// 配置文件位置: data/game_config.yaml
// 文件中缺省的字段保留 DefaultGameConfig 中的默认值。
//
// 时间单位约定：
//   - Timers / Effects 中的时长单位为秒
//   - 速度、重力、位移类参数为「每帧」增量（模拟按帧推进）
type GameConfig struct {
	Lanes      LaneConfig       `yaml:"lanes"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Speed      SpeedConfig      `yaml:"speed"`
	World      WorldConfig      `yaml:"world"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Collision  CollisionConfig  `yaml:"collision"`
	Rules      RulesConfig      `yaml:"rules"`
	Timers     TimerConfig      `yaml:"timers"`
	Effects    EffectsConfig    `yaml:"effects"`
	Magnet     MagnetConfig     `yaml:"magnet"`
}

// LaneConfig 车道配置
type LaneConfig struct {
	// Width 相邻车道的横向间距
	Width float64 `yaml:"width"`
	// Min/Max 车道号范围（含端点）
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	// Smoothing 每帧横向插值系数
	Smoothing float64 `yaml:"smoothing"`
}

// PhysicsConfig 玩家跳跃与翻滚参数
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	JumpForce          float64 `yaml:"jumpForce"`
	SuperJumpForce     float64 `yaml:"superJumpForce"`
	FloatyGravityScale float64 `yaml:"floatyGravityScale"`
	// RollDuration 翻滚持续时间（秒）
	RollDuration float64 `yaml:"rollDuration"`
}

// SpeedConfig 速度曲线
type SpeedConfig struct {
	Initial     float64 `yaml:"initial"`
	Max         float64 `yaml:"max"`
	Increment   float64 `yaml:"increment"`
	BoostAmount float64 `yaml:"boostAmount"`
	// MilestoneFactor 每收集 SpeedMilestone 枚披萨的速度倍率
	MilestoneFactor float64 `yaml:"milestoneFactor"`
	// ScrollScale 世界每帧滚动距离 = speed * ScrollScale
	ScrollScale float64 `yaml:"scrollScale"`
	// SlowTimeScale SlowTime 天赋下的滚动倍率
	SlowTimeScale float64 `yaml:"slowTimeScale"`
}

// WorldConfig 世界尺度
type WorldConfig struct {
	DrawDistance float64 `yaml:"drawDistance"`
	PlayerZ      float64 `yaml:"playerZ"`
	// CullMargin 实体落后玩家超过此距离即被剔除
	CullMargin float64 `yaml:"cullMargin"`
}

// SpawnProfile 某类实体生成时的高度和尺寸
type SpawnProfile struct {
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Extent float64 `yaml:"extent"` // 碰撞盒高度
}

// SpawnConfig 生成器配置
type SpawnConfig struct {
	// Chance 每帧生成一个实体的概率
	Chance float64 `yaml:"chance"`
	// Weights 类别权重，key 为类别字符串（如 "pickup"）
	Weights map[string]float64 `yaml:"weights"`
	// Profiles 类别高度/尺寸
	Profiles map[string]SpawnProfile `yaml:"profiles"`
}

// ProjectileConfig 子弹参数
type ProjectileConfig struct {
	Speed      float64 `yaml:"speed"`
	SpawnAhead float64 `yaml:"spawnAhead"`
	Height     float64 `yaml:"height"`
	Size       float64 `yaml:"size"`
	// FireInterval 两次射击最小间隔（秒）
	FireInterval float64 `yaml:"fireInterval"`
}

// CollisionConfig 碰撞阈值（横向距离、纵深距离）
type CollisionConfig struct {
	ProjectileLane  float64 `yaml:"projectileLane"`
	ProjectileDepth float64 `yaml:"projectileDepth"`
	PickupLane      float64 `yaml:"pickupLane"`
	PickupDepth     float64 `yaml:"pickupDepth"`
	HazardLane      float64 `yaml:"hazardLane"`
	HazardDepth     float64 `yaml:"hazardDepth"`
	// LowClearance 玩家高度低于此值会撞上低栏/地刺
	LowClearance float64 `yaml:"lowClearance"`
	// TallClearance 玩家高度超过此值可越过火车/墙
	TallClearance float64 `yaml:"tallClearance"`
}

// RulesConfig 计分与里程碑规则
type RulesConfig struct {
	MaxHealth      int `yaml:"maxHealth"`
	SpeedMilestone int `yaml:"speedMilestone"`
	CoinMilestone  int `yaml:"coinMilestone"`
	AmmoPerReload  int `yaml:"ammoPerReload"`
	HazardBonus    int `yaml:"hazardBonus"`
	// RampageScoreMultiplier 狂暴期间距离得分倍率
	RampageScoreMultiplier float64 `yaml:"rampageScoreMultiplier"`
	// DoubleScoreMultiplier DoubleScore 天赋的距离得分倍率
	DoubleScoreMultiplier float64 `yaml:"doubleScoreMultiplier"`
}

// TimerConfig 各类限时状态时长（秒）
type TimerConfig struct {
	Shield          float64 `yaml:"shield"`
	ResumeGrace     float64 `yaml:"resumeGrace"`
	Rampage         float64 `yaml:"rampage"`
	DamageCooldown  float64 `yaml:"damageCooldown"`
	SpeedBoostToast float64 `yaml:"speedBoostToast"`
	AmmoReloadToast float64 `yaml:"ammoReloadToast"`
	// MaxFrameDelta 单帧最大时间步长，防止卡顿后出现巨大的 dt
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`
}

// EffectsConfig 爆炸与碎片
type EffectsConfig struct {
	ExplosionLifetime float64           `yaml:"explosionLifetime"`
	ParticleLifetime  float64           `yaml:"particleLifetime"`
	ParticleCount     int               `yaml:"particleCount"`
	ParticleGravity   float64           `yaml:"particleGravity"`
	BounceDamping     float64           `yaml:"bounceDamping"`
	Colors            map[string]string `yaml:"colors"`
}

// MagnetConfig 磁铁天赋
type MagnetConfig struct {
	Window float64 `yaml:"window"`
	Pull   float64 `yaml:"pull"`
}

// DefaultGameConfig 返回内置默认配置（与 data/game_config.yaml 一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Lanes: LaneConfig{Width: 2.0, Min: -2, Max: 2, Smoothing: 0.2},
		Physics: PhysicsConfig{
			Gravity:            0.04,
			JumpForce:          0.9,
			SuperJumpForce:     1.4,
			FloatyGravityScale: 0.6,
			RollDuration:       0.8,
		},
		Speed: SpeedConfig{
			Initial:         0.005,
			Max:             0.05,
			Increment:       0.000001,
			BoostAmount:     0.005,
			MilestoneFactor: 1.05,
			ScrollScale:     20,
			SlowTimeScale:   0.75,
		},
		World: WorldConfig{DrawDistance: 150, PlayerZ: 0, CullMargin: 5},
		Spawn: SpawnConfig{
			Chance: 0.035,
			Weights: map[string]float64{
				"speed_boost":  5,
				"pickup":       35,
				"low_barrier":  10,
				"high_barrier": 10,
				"train":        10,
				"wall":         10,
				"drone":        10,
				"spikes":       10,
			},
			Profiles: map[string]SpawnProfile{
				"speed_boost":  {Height: 0.5, Width: 0.8, Extent: 0.8},
				"pickup":       {Height: 0.5, Width: 0.6, Extent: 0.6},
				"low_barrier":  {Height: 0, Width: 1, Extent: 1},
				"high_barrier": {Height: 2.5, Width: 1, Extent: 1},
				"train":        {Height: 0, Width: 1.6, Extent: 3},
				"wall":         {Height: 0, Width: 1.8, Extent: 3.5},
				"drone":        {Height: 2.0, Width: 0.8, Extent: 0.6},
				"spikes":       {Height: 0, Width: 1, Extent: 0.4},
			},
		},
		Projectile: ProjectileConfig{
			Speed:        1.5,
			SpawnAhead:   1,
			Height:       1.0,
			Size:         0.8,
			FireInterval: 0.25,
		},
		Collision: CollisionConfig{
			ProjectileLane:  1.0,
			ProjectileDepth: 2.0,
			PickupLane:      1.0,
			PickupDepth:     1.5,
			HazardLane:      0.8,
			HazardDepth:     1.2,
			LowClearance:    0.5,
			TallClearance:   3.0,
		},
		Rules: RulesConfig{
			MaxHealth:              3,
			SpeedMilestone:         5,
			CoinMilestone:          10,
			AmmoPerReload:          3,
			HazardBonus:            50,
			RampageScoreMultiplier: 2,
			DoubleScoreMultiplier:  2,
		},
		Timers: TimerConfig{
			Shield:          10,
			ResumeGrace:     2,
			Rampage:         10,
			DamageCooldown:  1.5,
			SpeedBoostToast: 1.5,
			AmmoReloadToast: 2,
			MaxFrameDelta:   0.1,
		},
		Effects: EffectsConfig{
			ExplosionLifetime: 0.5,
			ParticleLifetime:  1.5,
			ParticleCount:     8,
			ParticleGravity:   0.02,
			BounceDamping:     0.5,
			Colors: map[string]string{
				"low_barrier":  "#f97316",
				"high_barrier": "#eab308",
				"train":        "#64748b",
				"wall":         "#a8a29e",
				"drone":        "#22d3ee",
				"spikes":       "#ef4444",
			},
		},
		Magnet: MagnetConfig{Window: 15, Pull: 0.1},
	}
}

// LoadGameConfig 加载游戏配置
//
// 从指定路径加载 YAML 格式的配置文件，缺省字段使用默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game_config.yaml"）
//
// 返回:
//   - *GameConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 从 YAML 字节解析配置（用于嵌入资源）
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Lanes.Width <= 0 {
		return fmt.Errorf("lane width must be positive, got %.3f", c.Lanes.Width)
	}
	if c.Lanes.Min >= c.Lanes.Max {
		return fmt.Errorf("lane range invalid: min(%d) >= max(%d)", c.Lanes.Min, c.Lanes.Max)
	}
	if c.Lanes.Smoothing <= 0 || c.Lanes.Smoothing > 1 {
		return fmt.Errorf("lane smoothing must be in (0, 1], got %.3f", c.Lanes.Smoothing)
	}
	if c.Physics.Gravity <= 0 || c.Physics.JumpForce <= 0 || c.Physics.SuperJumpForce <= 0 {
		return fmt.Errorf("gravity and jump forces must be positive")
	}
	if c.Physics.FloatyGravityScale <= 0 {
		return fmt.Errorf("floaty gravity scale must be positive, got %.3f", c.Physics.FloatyGravityScale)
	}
	if c.Speed.Initial <= 0 || c.Speed.Max < c.Speed.Initial {
		return fmt.Errorf("speed range invalid: initial(%.4f) max(%.4f)", c.Speed.Initial, c.Speed.Max)
	}
	if c.Speed.MilestoneFactor < 1 {
		return fmt.Errorf("speed milestone factor must be >= 1, got %.3f", c.Speed.MilestoneFactor)
	}
	if c.World.DrawDistance <= 0 || c.World.CullMargin < 0 {
		return fmt.Errorf("world distances invalid: draw(%.1f) cull(%.1f)", c.World.DrawDistance, c.World.CullMargin)
	}
	if c.Spawn.Chance < 0 || c.Spawn.Chance > 1 {
		return fmt.Errorf("spawn chance must be in [0, 1], got %.3f", c.Spawn.Chance)
	}

	total := 0.0
	for name, w := range c.Spawn.Weights {
		category := types.CategoryFromString(name)
		if !category.Scrolls() {
			return fmt.Errorf("spawn weight for non-spawnable category %q", name)
		}
		if w < 0 {
			return fmt.Errorf("spawn weight for %q is negative: %.2f", name, w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("spawn weights must sum to a positive value")
	}
	for name := range c.Spawn.Profiles {
		if !types.CategoryFromString(name).Scrolls() {
			return fmt.Errorf("spawn profile for non-spawnable category %q", name)
		}
	}

	if c.Projectile.Speed <= 0 || c.Projectile.FireInterval < 0 {
		return fmt.Errorf("projectile speed must be positive and fire interval non-negative")
	}

	col := c.Collision
	if col.ProjectileLane <= 0 || col.ProjectileDepth <= 0 || col.PickupLane <= 0 ||
		col.PickupDepth <= 0 || col.HazardLane <= 0 || col.HazardDepth <= 0 {
		return fmt.Errorf("collision thresholds must be positive")
	}

	// 最高速度下每帧滚动距离须小于碰撞窗口 2*depth
	if c.Speed.ScrollScale <= 0 {
		return fmt.Errorf("scroll scale must be positive, got %.3f", c.Speed.ScrollScale)
	}
	maxScroll := c.Speed.Max * c.Speed.ScrollScale
	if window := 2 * math.Min(col.HazardDepth, col.PickupDepth); maxScroll >= window {
		return fmt.Errorf("max scroll per tick %.3f must be below collision window %.3f", maxScroll, window)
	}

	if c.Rules.MaxHealth < 1 {
		return fmt.Errorf("max health must be at least 1, got %d", c.Rules.MaxHealth)
	}
	if c.Rules.SpeedMilestone <= 0 || c.Rules.CoinMilestone <= 0 {
		return fmt.Errorf("milestones must be positive: speed(%d) coin(%d)", c.Rules.SpeedMilestone, c.Rules.CoinMilestone)
	}
	if c.Rules.AmmoPerReload < 0 {
		return fmt.Errorf("ammo per reload must be non-negative, got %d", c.Rules.AmmoPerReload)
	}
	if c.Timers.MaxFrameDelta <= 0 {
		return fmt.Errorf("max frame delta must be positive, got %.3f", c.Timers.MaxFrameDelta)
	}
	if c.Effects.BounceDamping < 0 || c.Effects.BounceDamping > 1 {
		return fmt.Errorf("bounce damping must be in [0, 1], got %.3f", c.Effects.BounceDamping)
	}

	return nil
}

// SpawnWeight 返回类别的生成权重（未配置为 0）
func (c *GameConfig) SpawnWeight(category types.EntityCategory) float64 {
	return c.Spawn.Weights[category.String()]
}

// SpawnProfileFor 返回类别的生成高度与尺寸
// 未配置的类别使用 1x1 的地面实体
func (c *GameConfig) SpawnProfileFor(category types.EntityCategory) SpawnProfile {
	if p, ok := c.Spawn.Profiles[category.String()]; ok {
		return p
	}
	return SpawnProfile{Height: 0, Width: 1, Extent: 1}
}

// EffectColor 返回类别对应的爆炸颜色标签
func (c *GameConfig) EffectColor(category types.EntityCategory) string {
	if color, ok := c.Effects.Colors[category.String()]; ok {
		return color
	}
	return "#ffffff"
}
