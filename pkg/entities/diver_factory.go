package entities

import (
	"fmt"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// 潜水员默认参数
const (
	DefaultDiverHeadOffset = 0.6
	DefaultDiverSwimSpeed  = 4.0
)

// NewDiverEntity 创建潜水员实体
//
// 参数:
//   - em: 实体管理器
//   - spawn: 出生位姿
//   - oxygenCfg: 氧气配置（复制到 OxygenComponent）
//
// 返回:
//   - ecs.EntityID: 潜水员实体ID
//   - error: 参数无效时返回错误
//
// 注意：创建时氧气为满，处于水面（IsUnderwater=false），由 WaterTriggerSystem 在首帧判定
func NewDiverEntity(em *ecs.EntityManager, spawn config.PoseConfig, oxygenCfg config.OxygenConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if err := oxygenCfg.Validate(); err != nil {
		return 0, fmt.Errorf("invalid oxygen config: %w", err)
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PlayerComponent{
		Name:       "diver",
		HeadOffset: DefaultDiverHeadOffset,
		SwimSpeed:  DefaultDiverSwimSpeed,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: spawn.Position,
		Rotation: spawn.Rotation,
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, NewOxygenComponent(oxygenCfg))
	ecs.AddComponent(em, id, &components.SurfaceReturnComponent{})
	ecs.AddComponent(em, id, &components.ZoneOccupancyComponent{Zones: make(map[ecs.EntityID]bool)})
	ecs.AddComponent(em, id, &components.DepthEnvironmentComponent{})

	return id, nil
}

// NewOxygenComponent 根据配置创建满氧的氧气组件
func NewOxygenComponent(cfg config.OxygenConfig) *components.OxygenComponent {
	oxygen := &components.OxygenComponent{
		Current:        cfg.MaxOxygen,
		Max:            cfg.MaxOxygen,
		DrainRate:      cfg.DrainRate,
		GraceTime:      cfg.GraceTime,
		LowThreshold:   cfg.LowThreshold,
		AutoReturn:     cfg.AutoReturn,
		SmoothReturn:   cfg.SmoothReturn,
		ReturnDuration: cfg.ReturnDuration,
	}
	if oxygen.LowThreshold <= 0 {
		oxygen.LowThreshold = config.LowOxygenThreshold
	}
	if cfg.SurfacePoint != nil {
		oxygen.HasDestination = true
		oxygen.Destination = cfg.SurfacePoint.Position
		oxygen.DestinationRotation = cfg.SurfacePoint.Rotation
		if oxygen.DestinationRotation == (utils.Quat{}) {
			oxygen.DestinationRotation = utils.IdentityQuat()
		}
	}
	return oxygen
}

// NewOxygenDisplayEntity 创建氧气显示实体（HUD）
func NewOxygenDisplayEntity(em *ecs.EntityManager, target ecs.EntityID) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OxygenDisplayComponent{
		Target:  target,
		FlashOn: true,
	})
	return id
}
