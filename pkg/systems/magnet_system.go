package systems

import (
	"github.com/gonewx/runner/pkg/components"
	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/ecs"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// MagnetSystem 磁铁天赋：把玩家前方一段距离内的披萨横向拉向玩家
type MagnetSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	player        *game.PlayerState
}

// NewMagnetSystem 创建磁铁系统
func NewMagnetSystem(em *ecs.EntityManager, cfg *config.GameConfig, player *game.PlayerState) *MagnetSystem {
	return &MagnetSystem{
		entityManager: em,
		config:        cfg,
		player:        player,
	}
}

// Update 每帧拉动窗口内的披萨
func (s *MagnetSystem) Update() {
	near := s.player.Z
	far := s.player.Z + s.config.Magnet.Window

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.CategoryComponent](s.entityManager) {
		if !s.entityManager.IsActive(id) {
			continue
		}
		cat, _ := ecs.GetComponent[*components.CategoryComponent](s.entityManager, id)
		if cat.Category != types.CategoryPickup {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if pos.Z > near && pos.Z < far {
			pos.X += (s.player.X - pos.X) * s.config.Magnet.Pull
		}
	}
}
