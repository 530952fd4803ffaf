package entities

import (
	"fmt"
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// NewWaterVolumeEntity 创建水体触发区实体
func NewWaterVolumeEntity(em *ecs.EntityManager, cfg config.WaterVolumeConfig) (ecs.EntityID, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.WaterVolumeComponent{
		Name:     cfg.Name,
		SurfaceY: cfg.SurfaceY,
		Min:      cfg.Min,
		Max:      cfg.Max,
	})
	return id, nil
}

// NewRefillZoneEntity 创建氧气补给区实体
//
// 补给区创建时满次数、未被占用
func NewRefillZoneEntity(em *ecs.EntityManager, cfg config.RefillZoneConfig) (ecs.EntityID, error) {
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("invalid refill zone: %w", err)
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.RefillZoneComponent{
		Name:          cfg.Name,
		Mode:          cfg.Mode,
		RefillRate:    cfg.RefillRate,
		InstantAmount: cfg.InstantAmount,
		RefillOnEnter: cfg.RefillOnEnter,
		MaxUses:       cfg.MaxUses,
		UsesRemaining: cfg.MaxUses,
		Min:           cfg.Min,
		Max:           cfg.Max,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: utils.LerpVec3(cfg.Min, cfg.Max, 0.5),
		Rotation: utils.IdentityQuat(),
	})
	return id, nil
}

// NewObstacleEntity 创建鱼群回避的球形障碍物
func NewObstacleEntity(em *ecs.EntityManager, cfg config.ObstacleConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: cfg.Center, Rotation: utils.IdentityQuat()})
	ecs.AddComponent(em, id, &components.FlockObstacleComponent{Radius: cfg.Radius})
	return id
}

// NewFishEntity 创建一条鱼
func NewFishEntity(em *ecs.EntityManager, flockID int, pos, vel utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.FishComponent{FlockID: flockID})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pos,
		Rotation: utils.QuatFromYaw(math.Atan2(vel.X, vel.Z)),
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{Velocity: vel})
	return id
}

// SpawnFlock 在水体内按确定的伪随机分布生成鱼群
//
// 使用 rnd 提供 [0,1) 随机数，便于测试注入固定序列
func SpawnFlock(em *ecs.EntityManager, flockID int, cfg config.FlockConfig, volume config.WaterVolumeConfig, rnd func() float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, cfg.Count)
	top := math.Min(volume.Max.Y, volume.SurfaceY) - 1
	for i := 0; i < cfg.Count; i++ {
		pos := utils.Vec3{
			X: utils.Lerp(volume.Min.X+2, volume.Max.X-2, rnd()),
			Y: utils.Lerp(volume.Min.Y+2, top, rnd()),
			Z: utils.Lerp(volume.Min.Z+2, volume.Max.Z-2, rnd()),
		}
		heading := rnd() * 2 * math.Pi
		speed := utils.Lerp(cfg.MinSpeed, cfg.MaxSpeed, 0.5)
		vel := utils.Vec3{X: math.Sin(heading) * speed, Z: math.Cos(heading) * speed}
		ids = append(ids, NewFishEntity(em, flockID, pos, vel))
	}
	return ids
}
