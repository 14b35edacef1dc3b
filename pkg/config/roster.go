package config

import (
	"fmt"
	"log"
	"os"

	"github.com/gonewx/runner/pkg/types"
	"gopkg.in/yaml.v3"
)

// CharacterConfig 角色配置（YAML 原始结构）
type CharacterConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	AccentColor string `yaml:"accentColor"`
	PowerUp     string `yaml:"powerUp"`
	Projectile  string `yaml:"projectile"`
	Description string `yaml:"description"`
}

// RosterConfig 角色表配置
//
// 配置文件位置: data/characters.yaml
type RosterConfig struct {
	Characters []CharacterConfig `yaml:"characters"`
	// Fallback 未知角色 ID 使用的通用角色
	Fallback CharacterConfig `yaml:"fallback"`
}

// CharacterTraits 角色能力表条目
// 在开局时查询一次，模拟过程中不再按角色 ID 分支
type CharacterTraits struct {
	ID          string
	Name        string
	PowerUp     types.PowerUpType
	Projectile  string
	Color       string
	AccentColor string
}

// Has 判断角色是否拥有指定天赋
func (t CharacterTraits) Has(p types.PowerUpType) bool {
	return t.PowerUp == p
}

// Roster 角色 ID → 能力表
type Roster struct {
	traits   map[string]CharacterTraits
	order    []string
	fallback CharacterTraits
}

// NewRoster 从配置构建角色表
func NewRoster(cfg RosterConfig) (*Roster, error) {
	if len(cfg.Characters) == 0 {
		return nil, fmt.Errorf("roster has no characters")
	}

	r := &Roster{
		traits: make(map[string]CharacterTraits, len(cfg.Characters)),
		order:  make([]string, 0, len(cfg.Characters)),
	}

	for i, c := range cfg.Characters {
		if c.ID == "" {
			return nil, fmt.Errorf("character #%d has empty id", i)
		}
		if _, dup := r.traits[c.ID]; dup {
			return nil, fmt.Errorf("duplicate character id %q", c.ID)
		}
		traits, err := c.toTraits()
		if err != nil {
			return nil, err
		}
		r.traits[c.ID] = traits
		r.order = append(r.order, c.ID)
	}

	fallback := cfg.Fallback
	if fallback.ID == "" {
		fallback = CharacterConfig{ID: "generic", Name: "Generic", Color: "#94a3b8", AccentColor: "#e2e8f0"}
	}
	traits, err := fallback.toTraits()
	if err != nil {
		return nil, fmt.Errorf("invalid fallback character: %w", err)
	}
	r.fallback = traits

	return r, nil
}

func (c CharacterConfig) toTraits() (CharacterTraits, error) {
	powerUp := types.PowerUpNone
	if c.PowerUp != "" {
		p, ok := types.PowerUpFromString(c.PowerUp)
		if !ok {
			return CharacterTraits{}, fmt.Errorf("character %q has unknown power-up %q", c.ID, c.PowerUp)
		}
		powerUp = p
	}
	projectile := c.Projectile
	if projectile == "" {
		projectile = types.ProjectileGeneric
	}
	return CharacterTraits{
		ID:          c.ID,
		Name:        c.Name,
		PowerUp:     powerUp,
		Projectile:  projectile,
		Color:       c.Color,
		AccentColor: c.AccentColor,
	}, nil
}

// Lookup 返回角色能力，未知 ID 回退到通用角色
func (r *Roster) Lookup(id string) CharacterTraits {
	if t, ok := r.traits[id]; ok {
		return t
	}
	log.Printf("[Roster] Unknown character %q, using fallback %q", id, r.fallback.ID)
	return r.fallback
}

// Get 返回角色能力及是否存在
func (r *Roster) Get(id string) (CharacterTraits, bool) {
	t, ok := r.traits[id]
	return t, ok
}

// IDs 返回按配置顺序排列的角色 ID
func (r *Roster) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len 返回角色数量
func (r *Roster) Len() int {
	return len(r.order)
}

// LoadRoster 加载角色表
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster config: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster 从 YAML 字节解析角色表
func ParseRoster(data []byte) (*Roster, error) {
	var cfg RosterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse roster config: %w", err)
	}
	roster, err := NewRoster(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid roster config: %w", err)
	}
	return roster, nil
}

// DefaultRoster 返回内置角色表（与 data/characters.yaml 一致）
func DefaultRoster() *Roster {
	roster, err := NewRoster(defaultRosterConfig())
	if err != nil {
		// 内置数据有误属于编程错误
		panic(fmt.Sprintf("default roster invalid: %v", err))
	}
	return roster
}

func defaultRosterConfig() RosterConfig {
	return RosterConfig{
		Characters: []CharacterConfig{
			{ID: "char_1", Name: "Roberto", Color: "#1e3a8a", AccentColor: "#60a5fa", PowerUp: "DOUBLE_SCORE", Projectile: types.ProjectileHandcuff},
			{ID: "char_2", Name: "Steve", Color: "#b91c1c", AccentColor: "#fca5a5", PowerUp: "MAGNET", Projectile: types.ProjectileFireball},
			{ID: "char_3", Name: "El", Color: "#fca5a5", AccentColor: "#ef4444", PowerUp: "SUPER_JUMP", Projectile: types.ProjectileBlood},
			{ID: "char_4", Name: "Lord Amber", Color: "#f59e0b", AccentColor: "#000000", PowerUp: "SHIELD", Projectile: types.ProjectileLightStar},
			{ID: "char_5", Name: "Hopper", Color: "#78350f", AccentColor: "#d4d4d8", PowerUp: "SLOW_TIME", Projectile: types.ProjectileNeonCat},
			{ID: "char_6", Name: "6-7", Color: "#10b981", AccentColor: "#34d399", PowerUp: "FLOATY", Projectile: types.ProjectileNumberBolt},
			{ID: "char_7", Name: "Specter", Color: "#64748b", AccentColor: "#94a3b8", PowerUp: "PHASE_SHIFT", Projectile: types.ProjectileEctoBlast},
			{ID: "char_8", Name: "Shotgun-Bomb", Color: "#f472b6", AccentColor: "#be185d", PowerUp: "NONE", Projectile: types.ProjectileRocket},
			{ID: "char_9", Name: "Bragnaldo", Color: "#166534", AccentColor: "#dc2626", PowerUp: "NONE", Projectile: types.ProjectileSoccerBall},
			{ID: "char_10", Name: "Cyclo", Color: "#475569", AccentColor: "#38bdf8", PowerUp: "NONE", Projectile: types.ProjectileWaterBottle},
			{ID: "char_11", Name: "Generic 3", Color: "#f97316", AccentColor: "#fb923c", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
			{ID: "char_12", Name: "Generic 4", Color: "#a855f7", AccentColor: "#c084fc", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
			{ID: "char_13", Name: "Generic 5", Color: "#84cc16", AccentColor: "#a3e635", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
			{ID: "char_14", Name: "Generic 6", Color: "#f43f5e", AccentColor: "#fb7185", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
			{ID: "char_15", Name: "Generic 7", Color: "#8b5cf6", AccentColor: "#a78bfa", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
			{ID: "char_16", Name: "Generic 8", Color: "#ec4899", AccentColor: "#f472b6", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
		},
		Fallback: CharacterConfig{ID: "generic", Name: "Generic", Color: "#94a3b8", AccentColor: "#e2e8f0", PowerUp: "NONE", Projectile: types.ProjectileGeneric},
	}
}
