// Package app 提供游戏应用的核心包装器
//
// 该包把配置加载、状态机、输入和渲染组装成 ebiten.Game，
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/input"
	"github.com/gonewx/runner/pkg/minigames"
	"github.com/gonewx/runner/pkg/scenes"
	"github.com/gonewx/runner/pkg/types"
	"github.com/gonewx/runner/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// digitKeys 菜单选角色 / 心算选答案
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空则使用嵌入的 data/game_config.yaml
	ConfigPath string
	// RosterPath 角色表路径，为空则使用嵌入的 data/characters.yaml
	RosterPath string
	// Character 直接以该角色开局（跳过菜单）
	Character string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	machine  *game.RunStateMachine
	roster   *config.Roster
	renderer *Renderer
	input    *input.EbitenSource

	minigame    minigames.Minigame
	minigameRNG *rand.Rand
	uiClock     *game.FrameClock

	start    time.Time
	selected int
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入配置前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, roster, err := LoadConfigs(cfg.ConfigPath, cfg.RosterPath)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seeds := rand.New(rand.NewSource(seed))
	log.Printf("[App] 随机种子: %d", seed)

	machine := game.NewRunStateMachine(gameCfg, roster, scenes.NewSimulationFactory(gameCfg, seeds), rand.New(rand.NewSource(seeds.Int63())))

	a := &App{
		machine:     machine,
		roster:      roster,
		renderer:    NewRenderer(gameCfg, utils.DefaultCamera(), ScreenWidth, ScreenHeight),
		input:       input.NewEbitenSource(nil),
		minigameRNG: rand.New(rand.NewSource(seeds.Int63())),
		uiClock:     game.NewFrameClock(gameCfg.Timers.MaxFrameDelta),
		start:       time.Now(),
		verbose:     cfg.Verbose,
	}

	if cfg.Character != "" {
		if err := machine.StartRun(cfg.Character); err != nil {
			return nil, fmt.Errorf("start run: %w", err)
		}
	}
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	commands := a.input.Poll()
	now := time.Since(a.start).Seconds()

	switch a.machine.Phase() {
	case game.PhaseMenu:
		a.updateMenu(commands)
	case game.PhaseRunning:
		a.updateRunning(commands, now)
	case game.PhaseMinigame:
		a.updateMinigame(commands, now)
	case game.PhaseGameOver:
		a.updateGameOver()
	}
	return nil
}

func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

func (a *App) updateMenu(commands []types.Command) {
	count := a.roster.Len()
	for _, cmd := range commands {
		switch cmd {
		case types.CommandMoveLeft:
			a.selected = (a.selected - 1 + count) % count
		case types.CommandMoveRight:
			a.selected = (a.selected + 1) % count
		}
	}
	for i, key := range digitKeys {
		if i < count && inpututil.IsKeyJustPressed(key) {
			a.selected = i
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		id := a.roster.IDs()[a.selected]
		if err := a.machine.StartRun(id); err != nil {
			log.Printf("[App] 无法开局: %v", err)
		}
	}
}

func (a *App) updateRunning(commands []types.Command, now float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.machine.Quit()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := a.machine.TogglePause(); err != nil {
			log.Printf("[App] %v", err)
		}
	}

	for _, cmd := range commands {
		a.machine.HandleCommand(cmd)
	}
	a.machine.Frame(now)

	if a.machine.Phase() == game.PhaseMinigame {
		a.beginMinigame(now)
	}
}

func (a *App) beginMinigame(now float64) {
	kind, _, ok := a.machine.PendingMinigame()
	if !ok {
		return
	}
	mg, err := minigames.New(kind, a.minigameRNG)
	if err != nil {
		log.Printf("[App] %v，按失败处理", err)
		if err := a.machine.CompleteMinigame(false); err != nil {
			log.Printf("[App] %v", err)
		}
		return
	}
	a.minigame = mg
	a.uiClock.Reset()
	a.uiClock.Advance(now)
}

func (a *App) updateMinigame(commands []types.Command, now float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.minigame = nil
		a.machine.Quit()
		return
	}
	if a.minigame == nil {
		a.beginMinigame(now)
		return
	}

	mg := a.minigame
	mg.Update(a.uiClock.Advance(now))
	for _, cmd := range commands {
		mg.HandleCommand(cmd)
	}
	if quiz, ok := mg.(*minigames.MathMinigame); ok {
		for i, key := range digitKeys[:minigames.MathOptionCount] {
			if inpututil.IsKeyJustPressed(key) {
				quiz.Choose(i)
			}
		}
	}

	if finished, success := mg.Done(); finished {
		a.minigame = nil
		if err := a.machine.CompleteMinigame(success); err != nil {
			log.Printf("[App] %v", err)
		}
	}
}

func (a *App) updateGameOver() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if err := a.machine.Restart(); err != nil {
			log.Printf("[App] %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.machine.Quit()
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	frame := a.machine.Snapshot()
	switch frame.Phase {
	case game.PhaseMenu:
		a.renderer.DrawMenu(screen, a.roster, a.selected)
	case game.PhaseRunning:
		a.renderer.DrawRun(screen, frame)
	case game.PhaseMinigame:
		a.renderer.DrawMinigame(screen, frame, a.minigame)
	case game.PhaseGameOver:
		a.renderer.DrawGameOver(screen, frame.Summary)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Machine 返回跑局状态机
func (a *App) Machine() *game.RunStateMachine {
	return a.machine
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
