package scenes

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/entities"
	"github.com/decker502/deepdive/pkg/event"
	"github.com/decker502/deepdive/pkg/game"
	"github.com/decker502/deepdive/pkg/systems"
	"github.com/decker502/deepdive/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	// 屏幕尺寸（逻辑分辨率）
	WindowWidth  = 800
	WindowHeight = 600

	// DebugDrainFraction 调试键把氧气设为最大值的该比例
	DebugDrainFraction = 0.1
)

// InputSource 每帧输入来源，测试时可替换
type InputSource func() utils.DiveInput

// DiveScene 湖泊潜水场景
// 组装氧气、补给区、深度环境、鱼群等系统，按固定顺序每帧更新。
type DiveScene struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	config        *config.DiveConfig

	settingsManager *game.SettingsManager
	diveLog         *game.DiveLogManager
	audioManager    *game.AudioManager

	// 系统
	controlSystem    *systems.DiverControlSystem
	triggerSystem    *systems.WaterTriggerSystem
	oxygenSystem     *systems.OxygenSystem
	refillZoneSystem *systems.RefillZoneSystem
	depthSystem      *systems.DepthEnvironmentSystem
	displaySystem    *systems.OxygenDisplaySystem
	flockSystem      *systems.FishFlockSystem
	hudRenderSystem  *systems.OxygenHUDRenderSystem

	// 实体
	diverID   ecs.EntityID
	displayID ecs.EntityID
	zoneIDs   []ecs.EntityID

	face      *text.GoTextFace
	input     InputSource
	onRestart func()
	paused    bool
	elapsed   float64
}

// NewDiveScene 创建潜水场景
//
// 参数:
//   - cfg: 场景配置（必须已通过验证）
//   - settings: 设置管理器，可为 nil；非 nil 时覆盖自动返回与平滑返回配置
//   - diveLog: 潜水日志，可为 nil
//   - audioManager: 音频管理器，可为 nil
func NewDiveScene(cfg *config.DiveConfig, settings *game.SettingsManager, diveLog *game.DiveLogManager, audioManager *game.AudioManager) (*DiveScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("dive config is nil")
	}

	s := &DiveScene{
		entityManager:   ecs.NewEntityManager(),
		bus:             event.NewBus(),
		config:          cfg,
		settingsManager: settings,
		diveLog:         diveLog,
		audioManager:    audioManager,
		input: func() utils.DiveInput {
			return utils.ReadDiveInput(WindowWidth, WindowHeight)
		},
	}

	if err := s.setup(); err != nil {
		s.detach()
		return nil, err
	}

	log.Printf("[DiveScene] Created: diver=%d, %d zones, %d volumes", s.diverID, len(s.zoneIDs), len(cfg.WaterVolumes))
	return s, nil
}

// setup 创建系统与实体
func (s *DiveScene) setup() error {
	em := s.entityManager

	s.oxygenSystem = systems.NewOxygenSystem(em, s.bus)
	s.refillZoneSystem = systems.NewRefillZoneSystem(em, s.oxygenSystem, s.bus)
	s.triggerSystem = systems.NewWaterTriggerSystem(em, s.oxygenSystem, s.refillZoneSystem)
	s.controlSystem = systems.NewDiverControlSystem(em, s.oxygenSystem)
	s.depthSystem = systems.NewDepthEnvironmentSystem(em, s.triggerSystem, s.config.DepthEnvironment)
	s.displaySystem = systems.NewOxygenDisplaySystem(em, s.bus)
	s.flockSystem = systems.NewFishFlockSystem(em, s.config.Flock)
	s.hudRenderSystem = systems.NewOxygenHUDRenderSystem(em)

	if s.diveLog != nil {
		s.diveLog.Attach(s.bus)
	}
	if s.audioManager != nil {
		s.audioManager.Attach(s.bus)
	}

	for i, wv := range s.config.WaterVolumes {
		if _, err := entities.NewWaterVolumeEntity(em, wv); err != nil {
			return fmt.Errorf("water volume %d: %w", i, err)
		}
	}
	for i, rz := range s.config.RefillZones {
		id, err := entities.NewRefillZoneEntity(em, rz)
		if err != nil {
			return fmt.Errorf("refill zone %d: %w", i, err)
		}
		s.zoneIDs = append(s.zoneIDs, id)
	}
	for _, o := range s.config.Obstacles {
		entities.NewObstacleEntity(em, o)
	}
	if len(s.config.WaterVolumes) > 0 && s.config.Flock.Count > 0 {
		entities.SpawnFlock(em, 1, s.config.Flock, s.config.WaterVolumes[0], rand.Float64)
	}

	oxygenCfg := s.config.Oxygen
	if s.settingsManager != nil {
		s.settingsManager.GetSettings().ApplyTo(&oxygenCfg)
	}
	diverID, err := entities.NewDiverEntity(em, s.config.DiverSpawn, oxygenCfg)
	if err != nil {
		return fmt.Errorf("failed to create diver: %w", err)
	}
	s.diverID = diverID

	s.displayID = entities.NewOxygenDisplayEntity(em, diverID)
	s.displaySystem.Refresh(s.displayID)
	return nil
}

// SetInputSource 替换输入来源
func (s *DiveScene) SetInputSource(source InputSource) {
	if source != nil {
		s.input = source
	}
}

// SetFont 设置 HUD 与调试信息字体；nil 时使用调试字体
func (s *DiveScene) SetFont(face *text.GoTextFace) {
	s.face = face
	s.hudRenderSystem.SetFont(face)
}

// SetRestartHandler 设置按下重新开始键时的回调
func (s *DiveScene) SetRestartHandler(handler func()) {
	s.onRestart = handler
}

// Update 更新场景
//
// 每帧顺序：输入操作 → 移动 → 触发区检测 → 氧气 → 深度环境 → 氧气显示 → 鱼群 → 潜水日志。
// 触发区检测必须早于氧气更新，使本帧消耗基于最新的入水状态。
func (s *DiveScene) Update(deltaTime float64) {
	in := s.input()

	if in.TogglePause {
		s.paused = !s.paused
		log.Printf("[DiveScene] Paused: %v", s.paused)
	}
	if in.Restart && s.onRestart != nil {
		s.onRestart()
		return
	}
	if s.paused {
		return
	}

	s.elapsed += deltaTime
	s.handleActions(in)

	s.controlSystem.SetInput(in)
	s.controlSystem.Update(deltaTime)
	s.triggerSystem.Update(deltaTime)
	s.oxygenSystem.Update(deltaTime)
	s.depthSystem.Update(deltaTime)
	s.displaySystem.Update(deltaTime)
	s.flockSystem.Update(deltaTime)

	if s.diveLog != nil {
		if env, ok := ecs.GetComponent[*components.DepthEnvironmentComponent](s.entityManager, s.diverID); ok {
			oxygen, _ := ecs.GetComponent[*components.OxygenComponent](s.entityManager, s.diverID)
			s.diveLog.RecordFrame(env.Depth, oxygen != nil && oxygen.IsUnderwater, deltaTime)
		}
	}

	s.entityManager.RemoveMarkedEntities()
}

// handleActions 处理单次触发的操作键
func (s *DiveScene) handleActions(in utils.DiveInput) {
	if in.ReturnToSurface {
		if err := s.oxygenSystem.ReturnToSurface(s.diverID); err != nil {
			log.Printf("[DiveScene] Return to surface failed: %v", err)
		}
	}
	if in.CancelReturn {
		s.oxygenSystem.CancelReturn(s.diverID)
	}
	if in.RefillFull {
		s.oxygenSystem.RefillOxygenFull(s.diverID)
	}
	if in.DrainDebug {
		if oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, s.diverID); ok {
			s.oxygenSystem.SetOxygen(s.diverID, oxygen.Max*DebugDrainFraction)
		}
	}
	if in.ResetZones {
		for _, id := range s.zoneIDs {
			s.refillZoneSystem.ResetZone(id)
		}
	}
}

// IsPaused 是否暂停
func (s *DiveScene) IsPaused() bool {
	return s.paused
}

// DiverID 潜水员实体
func (s *DiveScene) DiverID() ecs.EntityID {
	return s.diverID
}

// EntityManager 返回场景的实体管理器
func (s *DiveScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// OxygenSystem 返回氧气系统
func (s *DiveScene) OxygenSystem() *systems.OxygenSystem {
	return s.oxygenSystem
}

// SaveOnExit 实现 game.Saveable：保存潜水日志与设置，并取消全部订阅
func (s *DiveScene) SaveOnExit() bool {
	ok := true
	if s.diveLog != nil {
		if err := s.diveLog.Save(); err != nil {
			log.Printf("[DiveScene] Warning: failed to save dive log: %v", err)
			ok = false
		}
	}
	if s.settingsManager != nil {
		if err := s.settingsManager.Save(); err != nil {
			log.Printf("[DiveScene] Warning: failed to save settings: %v", err)
			ok = false
		}
	}
	if s.audioManager != nil {
		s.audioManager.StopAmbient()
	}
	s.detach()
	return ok
}

// detach 取消外部管理器对本场景总线的订阅
// 重新开始时新场景先于旧场景退出完成订阅，因此只解除本场景自己的总线
func (s *DiveScene) detach() {
	if s.diveLog != nil {
		s.diveLog.DetachFrom(s.bus)
	}
	if s.audioManager != nil {
		s.audioManager.DetachFrom(s.bus)
	}
	if s.displaySystem != nil {
		s.displaySystem.Close()
	}
}
