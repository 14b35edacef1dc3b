package main

import (
	"math"

	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/types"
)

// autopilot 根据渲染快照选择指令的简单策略
type autopilot struct {
	laneWidth  float64
	minLane    int
	maxLane    int
	reactDepth float64 // 障碍进入该纵深范围后开始躲避
	fireDepth  float64 // 障碍进入该纵深范围后开火
}

// threat 玩家所在车道上最近的障碍
func (a *autopilot) threat(frame game.Frame, lane int) (game.EntityView, bool) {
	var nearest game.EntityView
	found := false
	for _, e := range frame.Entities {
		if !e.Category.IsHazard() || e.Z < frame.Player.Z {
			continue
		}
		if int(math.Round(e.X/a.laneWidth)) != lane {
			continue
		}
		if !found || e.Z < nearest.Z {
			nearest = e
			found = true
		}
	}
	return nearest, found
}

// laneClear 车道在反应距离内是否没有障碍
func (a *autopilot) laneClear(frame game.Frame, lane int) bool {
	e, ok := a.threat(frame, lane)
	return !ok || e.Z-frame.Player.Z > a.reactDepth
}

// Decide 返回本帧要发出的指令（可能为空）
func (a *autopilot) Decide(frame game.Frame) []types.Command {
	p := frame.Player
	e, ok := a.threat(frame, p.Lane)
	if !ok {
		return nil
	}
	dz := e.Z - p.Z

	var cmds []types.Command
	if frame.Player.HasAmmo && dz < a.fireDepth {
		cmds = append(cmds, types.CommandFire)
	}
	if dz > a.reactDepth {
		return cmds
	}

	switch e.Category {
	case types.CategoryLowBarrier, types.CategorySpikes:
		if p.Y == 0 {
			cmds = append(cmds, types.CommandJump)
		}
	case types.CategoryHighBarrier:
		if p.Locomotion != types.LocomotionRolling {
			cmds = append(cmds, types.CommandDrop)
		}
	case types.CategoryDrone:
		if p.Y > 0 {
			cmds = append(cmds, types.CommandDrop)
		}
	default:
		if cmd, ok := a.sidestep(frame); ok {
			cmds = append(cmds, cmd)
		} else if p.Y == 0 {
			cmds = append(cmds, types.CommandJump)
		}
	}
	return cmds
}

// sidestep 换到相邻的空车道
func (a *autopilot) sidestep(frame game.Frame) (types.Command, bool) {
	lane := frame.Player.Lane
	if lane > a.minLane && a.laneClear(frame, lane-1) {
		return types.CommandMoveLeft, true
	}
	if lane < a.maxLane && a.laneClear(frame, lane+1) {
		return types.CommandMoveRight, true
	}
	return types.CommandNone, false
}
