package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/entities"
	"github.com/gonewx/runner/pkg/types"
)

// SpawnSystem 程序化生成赛道实体
//
// 每帧以固定概率在远端生成一个实体：
// 车道均匀随机，类别按配置权重累积和选择。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	rng           *rand.Rand

	categories []types.EntityCategory
	weights    []float64
	total      float64
}

// NewSpawnSystem 创建生成系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（生成概率、权重、尺寸）
//   - rng: 随机源，测试中使用固定种子
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand) *SpawnSystem {
	s := &SpawnSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
	}

	for _, c := range types.SpawnableCategories() {
		w := cfg.SpawnWeight(c)
		if w <= 0 {
			continue
		}
		s.categories = append(s.categories, c)
		s.weights = append(s.weights, w)
		s.total += w
	}
	if s.total <= 0 {
		log.Printf("[SpawnSystem] WARNING: All spawn weights are zero, nothing will spawn")
	}
	return s
}

// Update 执行一帧的生成判定
//
// 返回:
//   - ecs.EntityID: 新生成的实体，未生成时为 0
func (s *SpawnSystem) Update() ecs.EntityID {
	if s.total <= 0 || s.rng.Float64() >= s.config.Spawn.Chance {
		return 0
	}

	category := s.SelectCategory(s.rng.Float64())
	lane := s.SelectLane()

	id, err := entities.NewTrackEntity(s.entityManager, s.config, category, lane)
	if err != nil {
		log.Printf("[SpawnSystem] Failed to spawn %s: %v", category, err)
		return 0
	}
	return id
}

// SelectLane 均匀随机选择车道
func (s *SpawnSystem) SelectLane() int {
	lanes := s.config.Lanes.Max - s.config.Lanes.Min + 1
	return s.config.Lanes.Min + s.rng.Intn(lanes)
}

// SelectCategory 按权重累积和选择类别
//
// 参数:
//   - r: [0, 1) 区间的随机数
func (s *SpawnSystem) SelectCategory(r float64) types.EntityCategory {
	if len(s.categories) == 0 {
		return types.CategoryPickup
	}

	target := r * s.total
	cumulative := 0.0
	for i, w := range s.weights {
		cumulative += w
		if target < cumulative {
			return s.categories[i]
		}
	}
	return s.categories[len(s.categories)-1]
}

// Categories 返回参与生成的类别（按累积顺序）
func (s *SpawnSystem) Categories() []types.EntityCategory {
	out := make([]types.EntityCategory, len(s.categories))
	copy(out, s.categories)
	return out
}
