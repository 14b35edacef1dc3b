// simulate 无窗口运行跑局模拟，用简单策略自动驾驶并打印结算
//
// 用法:
//
//	go run ./cmd/simulate --character char_2 --ticks 20000 --seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/scenes"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	configPath  = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	rosterPath  = flag.String("roster", "", "角色表路径（默认使用内置角色表）")
	character   = flag.String("character", "char_1", "角色 ID")
	ticks       = flag.Int("ticks", 10000, "最多模拟的帧数")
	seed        = flag.Int64("seed", 1, "随机种子")
	winRate     = flag.Float64("minigame-win", 0.5, "小游戏成功概率")
	reportEvery = flag.Int("report", 0, "每隔多少帧打印一次进度，0 表示不打印")
)

const tickDelta = 1.0 / 60.0

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, roster, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	res, err := run(cfg, roster, *character, *ticks, *seed, *winRate, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "模拟失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("character=%s ticks=%d minigames=%d (won %d) gameOver=%v\n",
		*character, res.Ticks, res.Minigames, res.MinigamesWon, res.GameOver)
	s := res.Session
	fmt.Printf("score=%d coins=%d distance=%.1f speed=%.4f health=%d ammo=%d\n",
		s.Score, s.Coins, s.Distance, s.Speed, s.Health, s.Ammo)
}

func loadConfigs() (*config.GameConfig, *config.Roster, error) {
	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadGameConfig(*configPath); err != nil {
			return nil, nil, err
		}
	}
	roster := config.DefaultRoster()
	if *rosterPath != "" {
		var err error
		if roster, err = config.LoadRoster(*rosterPath); err != nil {
			return nil, nil, err
		}
	}
	return cfg, roster, nil
}

// result 一次模拟的结果
type result struct {
	Ticks        int
	Minigames    int
	MinigamesWon int
	GameOver     bool
	Session      game.SessionState
}

// run 以固定步长推进状态机，直到游戏结束或达到帧数上限
func run(cfg *config.GameConfig, roster *config.Roster, characterID string, maxTicks int, seed int64, winRate float64, progress io.Writer) (result, error) {
	seeds := rand.New(rand.NewSource(seed))
	machine := game.NewRunStateMachine(cfg, roster, scenes.NewSimulationFactory(cfg, seeds), rand.New(rand.NewSource(seeds.Int63())))
	outcomes := rand.New(rand.NewSource(seeds.Int63()))

	pilot := &autopilot{
		laneWidth:  cfg.Lanes.Width,
		minLane:    cfg.Lanes.Min,
		maxLane:    cfg.Lanes.Max,
		reactDepth: 8,
		fireDepth:  30,
	}

	if err := machine.StartRun(characterID); err != nil {
		return result{}, err
	}

	var res result
	for res.Ticks < maxTicks {
		switch machine.Phase() {
		case game.PhaseRunning:
			for _, cmd := range pilot.Decide(machine.Snapshot()) {
				machine.HandleCommand(cmd)
			}
			machine.Step(tickDelta)
			res.Ticks++
			if *reportEvery > 0 && res.Ticks%*reportEvery == 0 && machine.Simulation() != nil {
				s := machine.Simulation().Session()
				fmt.Fprintf(progress, "tick=%d score=%d coins=%d health=%d\n", res.Ticks, s.Score, s.Coins, s.Health)
			}
		case game.PhaseMinigame:
			res.Minigames++
			won := outcomes.Float64() < winRate
			if won {
				res.MinigamesWon++
			}
			if err := machine.CompleteMinigame(won); err != nil {
				return res, err
			}
		case game.PhaseGameOver:
			res.GameOver = true
			res.Session = machine.FinalSession()
			return res, nil
		default:
			return res, fmt.Errorf("unexpected phase %s", machine.Phase())
		}
	}

	if sim := machine.Simulation(); sim != nil {
		res.Session = sim.Session()
	}
	return res, nil
}
