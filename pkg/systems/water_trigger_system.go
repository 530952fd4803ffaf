package systems

import (
	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// WaterTriggerSystem 触发区检测系统
// 职责：
//   - 根据潜水员头部位置判断是否位于任一水体水面以下，通知 OxygenSystem
//   - 对每个补给区做进入 / 停留 / 离开的边沿检测，转发给 RefillZoneSystem
//
// 每帧应在 OxygenSystem.Update 之前运行，使本帧的消耗基于最新的入水状态。
type WaterTriggerSystem struct {
	entityManager    *ecs.EntityManager
	oxygenSystem     *OxygenSystem
	refillZoneSystem *RefillZoneSystem
}

// NewWaterTriggerSystem 创建触发区检测系统
func NewWaterTriggerSystem(em *ecs.EntityManager, oxygen *OxygenSystem, zones *RefillZoneSystem) *WaterTriggerSystem {
	return &WaterTriggerSystem{
		entityManager:    em,
		oxygenSystem:     oxygen,
		refillZoneSystem: zones,
	}
}

// Update 更新入水状态与补给区占用
// 参数:
//   - deltaTime: 自上次更新以来的时间（秒）
func (s *WaterTriggerSystem) Update(deltaTime float64) {
	divers := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.TransformComponent,
		*components.OxygenComponent,
	](s.entityManager)

	for _, diverID := range divers {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, diverID)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, diverID)

		head := transform.Position.Add(utils.Vec3{Y: player.HeadOffset})
		s.oxygenSystem.SetUnderwater(diverID, s.IsSubmerged(head))

		s.updateZones(diverID, transform.Position, deltaTime)
	}
}

// IsSubmerged 点是否位于任一水体的水面以下
func (s *WaterTriggerSystem) IsSubmerged(p utils.Vec3) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.WaterVolumeComponent](s.entityManager) {
		volume, _ := ecs.GetComponent[*components.WaterVolumeComponent](s.entityManager, id)
		if volume.Submerges(p) {
			return true
		}
	}
	return false
}

// SurfaceYAt 返回覆盖 (x, z) 的水体水面高度；没有水体覆盖时返回 false
func (s *WaterTriggerSystem) SurfaceYAt(p utils.Vec3) (float64, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.WaterVolumeComponent](s.entityManager) {
		volume, _ := ecs.GetComponent[*components.WaterVolumeComponent](s.entityManager, id)
		if p.X >= volume.Min.X && p.X <= volume.Max.X && p.Z >= volume.Min.Z && p.Z <= volume.Max.Z {
			return volume.SurfaceY, true
		}
	}
	return 0, false
}

// updateZones 补给区边沿检测
func (s *WaterTriggerSystem) updateZones(diverID ecs.EntityID, pos utils.Vec3, deltaTime float64) {
	if s.refillZoneSystem == nil {
		return
	}

	occupancy, ok := ecs.GetComponent[*components.ZoneOccupancyComponent](s.entityManager, diverID)
	if !ok {
		occupancy = &components.ZoneOccupancyComponent{Zones: make(map[ecs.EntityID]bool)}
		ecs.AddComponent(s.entityManager, diverID, occupancy)
	}

	zones := ecs.GetEntitiesWith1[*components.RefillZoneComponent](s.entityManager)
	present := make(map[ecs.EntityID]bool, len(zones))

	for _, zoneID := range zones {
		present[zoneID] = true
		zone, _ := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, zoneID)

		inside := zone.Contains(pos)
		wasInside := occupancy.Zones[zoneID]

		switch {
		case inside && !wasInside:
			occupancy.Zones[zoneID] = true
			s.refillZoneSystem.OnEnter(zoneID, diverID)
		case inside && wasInside:
			s.refillZoneSystem.OnStay(zoneID, diverID, deltaTime)
		case !inside && wasInside:
			delete(occupancy.Zones, zoneID)
			s.refillZoneSystem.OnExit(zoneID, diverID)
		}
	}

	// 已销毁的补给区
	for zoneID := range occupancy.Zones {
		if !present[zoneID] {
			delete(occupancy.Zones, zoneID)
		}
	}
}
