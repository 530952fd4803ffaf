package scenes

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/game"
	"github.com/decker502/deepdive/pkg/utils"
)

// scriptedInput 按帧返回预设输入，用完后返回空输入
type scriptedInput struct {
	frames []utils.DiveInput
	next   int
}

func (si *scriptedInput) read() utils.DiveInput {
	if si.next >= len(si.frames) {
		return utils.DiveInput{}
	}
	in := si.frames[si.next]
	si.next++
	return in
}

func testDiveConfig() *config.DiveConfig {
	cfg := config.DefaultDiveConfig()
	cfg.Oxygen.SurfacePoint = &config.PoseConfig{Position: utils.Vec3{Y: 1}, Rotation: utils.IdentityQuat()}
	cfg.WaterVolumes = []config.WaterVolumeConfig{{
		Name:     "lake",
		SurfaceY: 0,
		Min:      utils.Vec3{X: -30, Y: -45, Z: -30},
		Max:      utils.Vec3{X: 30, Y: 0, Z: 30},
	}}
	cfg.Flock.Count = 0
	return cfg
}

func newTestScene(t *testing.T, cfg *config.DiveConfig, diveLog *game.DiveLogManager, frames ...utils.DiveInput) *DiveScene {
	t.Helper()
	scene, err := NewDiveScene(cfg, nil, diveLog, nil)
	if err != nil {
		t.Fatalf("NewDiveScene failed: %v", err)
	}
	input := &scriptedInput{frames: frames}
	scene.SetInputSource(input.read)
	return scene
}

func diverState(t *testing.T, scene *DiveScene) (*components.OxygenComponent, *components.TransformComponent) {
	t.Helper()
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](scene.EntityManager(), scene.DiverID())
	if !ok {
		t.Fatal("Diver has no oxygen component")
	}
	transform, _ := ecs.GetComponent[*components.TransformComponent](scene.EntityManager(), scene.DiverID())
	return oxygen, transform
}

func stepScene(scene *DiveScene, n int) {
	for i := 0; i < n; i++ {
		scene.Update(0.5)
	}
}

// TestNewDiveSceneErrors 无效配置
func TestNewDiveSceneErrors(t *testing.T) {
	if _, err := NewDiveScene(nil, nil, nil, nil); err == nil {
		t.Error("Expected error for nil config")
	}

	cfg := testDiveConfig()
	cfg.RefillZones = []config.RefillZoneConfig{{Name: "broken", Mode: "teleport"}}
	if _, err := NewDiveScene(cfg, nil, nil, nil); err == nil {
		t.Error("Expected error for invalid refill zone")
	}
}

// TestDiveSceneDescendAndDrain 下潜后经过缓冲期开始消耗
func TestDiveSceneDescendAndDrain(t *testing.T) {
	scene := newTestScene(t, testDiveConfig(), nil, utils.DiveInput{MoveY: -1})

	stepScene(scene, 1)
	oxygen, transform := diverState(t, scene)
	if !approx(transform.Position.Y, -1) {
		t.Fatalf("Diver should be at y=-1, got %.3f", transform.Position.Y)
	}
	if !oxygen.IsUnderwater {
		t.Fatal("Diver should be underwater after descending")
	}
	if oxygen.Current != oxygen.Max {
		t.Errorf("No drain during grace, got %.2f", oxygen.Current)
	}

	stepScene(scene, 5)
	if !approx(oxygen.Current, 90) {
		t.Errorf("Expected 90 oxygen after grace + 1s of draining, got %.2f", oxygen.Current)
	}

	env, ok := ecs.GetComponent[*components.DepthEnvironmentComponent](scene.EntityManager(), scene.DiverID())
	if !ok || !approx(env.Depth, 1) {
		t.Errorf("Expected depth 1, got %+v", env)
	}
}

// TestDiveSceneDebugActions 调试键直接修改氧气
func TestDiveSceneDebugActions(t *testing.T) {
	scene := newTestScene(t, testDiveConfig(), nil,
		utils.DiveInput{DrainDebug: true},
		utils.DiveInput{RefillFull: true},
	)
	oxygen, _ := diverState(t, scene)

	stepScene(scene, 1)
	if !approx(oxygen.Current, oxygen.Max*DebugDrainFraction) {
		t.Errorf("Drain debug: expected %.1f, got %.2f", oxygen.Max*DebugDrainFraction, oxygen.Current)
	}

	stepScene(scene, 1)
	if oxygen.Current != oxygen.Max {
		t.Errorf("Refill: expected full, got %.2f", oxygen.Current)
	}
}

// TestDiveSceneReturnToSurface 返回水面动作与平滑返回完成
func TestDiveSceneReturnToSurface(t *testing.T) {
	diveLog := game.NewDiveLogManager(nil)
	scene := newTestScene(t, testDiveConfig(), diveLog,
		utils.DiveInput{MoveY: -1},
		utils.DiveInput{ReturnToSurface: true, MoveX: 1},
	)
	oxygen, transform := diverState(t, scene)

	stepScene(scene, 2)
	if !scene.OxygenSystem().IsReturning(scene.DiverID()) {
		t.Fatal("Diver should be returning")
	}
	if transform.Position.X != 0 {
		t.Errorf("Movement input ignored while returning, got x=%.3f", transform.Position.X)
	}

	// 返回持续 1.5s：第 2 帧 0.5s，第 4 帧完成
	stepScene(scene, 2)
	if scene.OxygenSystem().IsReturning(scene.DiverID()) {
		t.Fatal("Return should be complete")
	}
	if transform.Position != (utils.Vec3{Y: 1}) {
		t.Errorf("Expected surface point, got %v", transform.Position)
	}
	if oxygen.IsUnderwater || oxygen.Current != oxygen.Max {
		t.Errorf("Expected surfaced with full oxygen, got underwater=%v current=%.2f", oxygen.IsUnderwater, oxygen.Current)
	}

	stats := diveLog.Stats()
	if stats.TotalDives != 1 || stats.SurfaceReturns != 1 {
		t.Errorf("Expected 1 dive and 1 return, got %+v", stats)
	}
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit should succeed without storage")
	}
}

// TestDiveSceneResetZones 重置补给区
func TestDiveSceneResetZones(t *testing.T) {
	cfg := testDiveConfig()
	cfg.RefillZones = []config.RefillZoneConfig{{
		Name:          "tank",
		Mode:          config.RefillModeInstant,
		InstantAmount: 50,
		MaxUses:       1,
		Min:           utils.Vec3{X: -2, Y: -3, Z: -2},
		Max:           utils.Vec3{X: 2, Y: 0, Z: 2},
	}}
	scene := newTestScene(t, cfg, nil,
		utils.DiveInput{MoveY: -1},
		utils.DiveInput{ResetZones: true},
	)

	zoneIDs := ecs.GetEntitiesWith1[*components.RefillZoneComponent](scene.EntityManager())
	if len(zoneIDs) != 1 {
		t.Fatalf("Expected 1 zone, got %d", len(zoneIDs))
	}
	zone, _ := ecs.GetComponent[*components.RefillZoneComponent](scene.EntityManager(), zoneIDs[0])

	stepScene(scene, 1)
	if !zone.IsDepleted || zone.UsesRemaining != 0 {
		t.Fatalf("Zone should be depleted after entry, got %+v", zone)
	}

	stepScene(scene, 1)
	if zone.IsDepleted || zone.UsesRemaining != 1 {
		t.Errorf("Zone should be reset, got depleted=%v uses=%d", zone.IsDepleted, zone.UsesRemaining)
	}
}

// TestDiveScenePauseAndRestart 暂停与重新开始
func TestDiveScenePauseAndRestart(t *testing.T) {
	scene := newTestScene(t, testDiveConfig(), nil,
		utils.DiveInput{TogglePause: true},
		utils.DiveInput{MoveY: -1},
		utils.DiveInput{TogglePause: true, MoveY: -1},
		utils.DiveInput{Restart: true},
	)
	_, transform := diverState(t, scene)

	stepScene(scene, 2)
	if !scene.IsPaused() {
		t.Fatal("Scene should be paused")
	}
	if !approx(transform.Position.Y, 1) {
		t.Errorf("Paused scene should not move the diver, got y=%.3f", transform.Position.Y)
	}

	stepScene(scene, 1)
	if scene.IsPaused() || !approx(transform.Position.Y, -1) {
		t.Errorf("Unpaused frame should move the diver, paused=%v y=%.3f", scene.IsPaused(), transform.Position.Y)
	}

	restarted := false
	scene.SetRestartHandler(func() { restarted = true })
	stepScene(scene, 1)
	if !restarted {
		t.Error("Restart handler should be called")
	}
}

// TestSceneSettingsOverride 设置覆盖自动返回
func TestSceneSettingsOverride(t *testing.T) {
	settings := game.NewSettingsManager(nil)
	settings.SetAutoReturn(false)

	scene, err := NewDiveScene(testDiveConfig(), settings, nil, nil)
	if err != nil {
		t.Fatalf("NewDiveScene failed: %v", err)
	}
	oxygen, _ := diverState(t, scene)
	if oxygen.AutoReturn {
		t.Error("AutoReturn should be disabled by settings")
	}
}

// TestApplyExposure 曝光缩放
func TestApplyExposure(t *testing.T) {
	base := color.RGBA{R: 100, G: 200, B: 50, A: 255}
	tests := []struct {
		ev   float64
		want color.RGBA
	}{
		{0, base},
		{-1, color.RGBA{R: 50, G: 100, B: 25, A: 255}},
		{1, color.RGBA{R: 200, G: 255, B: 100, A: 255}},
	}
	for _, tt := range tests {
		if got := applyExposure(base, tt.ev); got != tt.want {
			t.Errorf("applyExposure(ev=%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

// TestCameraWorldToScreen 相机中心映射到屏幕中心，Y 轴翻转
func TestCameraWorldToScreen(t *testing.T) {
	cam := camera{centerX: 5, centerY: -10, width: 800, height: 600}

	x, y := cam.worldToScreen(5, -10)
	if x != 400 || y != 300 {
		t.Errorf("Center: got (%v, %v)", x, y)
	}
	x, y = cam.worldToScreen(6, -9)
	if x != 400+PixelsPerMeter || y != 300-PixelsPerMeter {
		t.Errorf("Offset: got (%v, %v)", x, y)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestDiveSceneReloadKeepsManagersAttached 重新开始后日志与提示音继续接收新场景的通知
func TestDiveSceneReloadKeepsManagersAttached(t *testing.T) {
	diveLog := game.NewDiveLogManager(nil)
	audioManager := game.NewAudioManager(nil, nil)

	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(name string) game.Scene {
		scene, err := NewDiveScene(testDiveConfig(), nil, diveLog, audioManager)
		if err != nil {
			t.Fatalf("NewDiveScene failed: %v", err)
		}
		input := &scriptedInput{frames: []utils.DiveInput{{MoveY: -1, DrainDebug: true}}}
		scene.SetInputSource(input.read)
		return scene
	})

	if !sm.LoadScene("dive") {
		t.Fatal("LoadScene failed")
	}
	first := sm.GetCurrentScene()
	if !sm.Reload() {
		t.Fatal("Reload failed")
	}
	if sm.GetCurrentScene() == first {
		t.Fatal("Reload should create a new scene")
	}

	// 第 1 帧入水并降到 10%，缓冲 2s 后第 5 帧开始消耗并触发低氧
	for i := 0; i < 5; i++ {
		sm.Update(0.5)
	}

	if got := diveLog.Stats().TotalDives; got != 1 {
		t.Errorf("Expected 1 dive logged after reload, got %d", got)
	}
	if got := audioManager.PlayCount(game.SoundOxygenLow); got != 1 {
		t.Errorf("Expected low oxygen cue after reload, got %d", got)
	}
}
