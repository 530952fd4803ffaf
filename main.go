package main

import (
	"flag"
	"log"

	"github.com/decker502/deepdive/pkg/app"
	"github.com/decker502/deepdive/pkg/embedded"
	"github.com/decker502/deepdive/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configPath = flag.String("config", "", "场景配置文件路径（默认使用嵌入的 data/dive.yaml）")
	mute       = flag.Bool("mute", false, "禁用音频")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
	ebiten.SetWindowTitle("Deep Dive - 湖泊潜水")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先保存潜水日志与设置
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
