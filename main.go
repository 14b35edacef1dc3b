package main

import (
	"flag"
	"log"

	"github.com/gonewx/runner/pkg/app"
	"github.com/gonewx/runner/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用嵌入的 data/game_config.yaml）")
	rosterPath := flag.String("roster", "", "角色表路径（默认使用嵌入的 data/characters.yaml）")
	character := flag.String("character", "", "跳过菜单，直接以该角色开局（如 char_2）")
	seed := flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	flag.Parse()

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		RosterPath: *rosterPath,
		Character:  *character,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Lane Runner")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
