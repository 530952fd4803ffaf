// Package app 提供潜水应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/embedded"
	"github.com/decker502/deepdive/pkg/game"
	"github.com/decker502/deepdive/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 嵌入的默认场景配置
const DefaultConfigPath = "data/dive.yaml"

// SceneDive 潜水场景名称
const SceneDive = "dive"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部场景配置文件，为空时使用嵌入的 data/dive.yaml
	ConfigPath string
	// Mute 不创建音频上下文（无声模式）
	Mute bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	diveConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	gameState := game.GetGameState()
	settings := gameState.GetSettingsManager()
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(game.SampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settings)
	resourceManager := game.NewResourceManager()
	hudFont := resourceManager.DefaultFont(14)
	log.Printf("[App] AudioManager initialized (muted=%v)", cfg.Mute)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != SceneDive {
			log.Printf("[App] Unknown scene: %s", name)
			return nil
		}
		scene, err := scenes.NewDiveScene(diveConfig, settings, gameState.GetDiveLog(), audioManager)
		if err != nil {
			log.Printf("[App] Failed to create dive scene: %v", err)
			return nil
		}
		scene.SetFont(hudFont)
		scene.SetRestartHandler(func() { sceneManager.Reload() })
		return scene
	})

	if !sceneManager.LoadScene(SceneDive) {
		return nil, fmt.Errorf("failed to load scene %q", SceneDive)
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 加载场景配置
// path 为空时读取嵌入资源，否则从文件系统读取
func LoadConfig(path string) (*config.DiveConfig, error) {
	if path != "" {
		log.Printf("[App] Loading dive config from %s", path)
		return config.LoadDiveConfig(path)
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dive config: %w", err)
	}
	return config.ParseDiveConfig(data)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// F11 切换全屏并记住设置
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.gameState.GetSettingsManager().SetFullscreen(fullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Shutdown 保存当前场景状态
func (a *App) Shutdown() {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[App] Warning: scene failed to save on exit")
		}
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
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

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.WindowWidth, scenes.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
