package systems

import (
	"log"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/event"
)

// RefillZoneSystem 氧气补给区系统
// 职责：
//   - 处理进入 / 停留 / 离开补给区
//   - 通过 OxygenSystem.RefillOxygen 发放氧气
//   - 管理使用次数与耗尽状态（耗尽后直到 ResetZone 都不再补给）
//
// 入口/出口的边沿检测由 WaterTriggerSystem 负责，本系统只处理回调。
type RefillZoneSystem struct {
	entityManager *ecs.EntityManager
	oxygenSystem  *OxygenSystem
	bus           *event.Bus
}

// NewRefillZoneSystem 创建补给区系统
func NewRefillZoneSystem(em *ecs.EntityManager, oxygen *OxygenSystem, bus *event.Bus) *RefillZoneSystem {
	return &RefillZoneSystem{
		entityManager: em,
		oxygenSystem:  oxygen,
		bus:           bus,
	}
}

// OnEnter 角色进入补给区
// 已耗尽：发出 RefillZoneDepleted 后直接返回。
// 否则记录占用者，按配置一次性补给，并开始进入反馈。
func (s *RefillZoneSystem) OnEnter(zoneID, actor ecs.EntityID) {
	zone, ok := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, zoneID)
	if !ok {
		return
	}

	if zone.IsDepleted {
		log.Printf("[RefillZoneSystem] Zone '%s' is depleted, no effect for entity %d", zone.Name, actor)
		s.bus.Publish(event.Event{Type: event.RefillZoneDepleted, Entity: actor, Zone: zoneID})
		return
	}

	zone.Occupant = actor

	if zone.Mode == config.RefillModeInstant || zone.RefillOnEnter {
		s.grant(zoneID, zone, actor, zone.InstantAmount)
	}

	// 一次性补给可能刚好耗尽补给区，此时不再播放反馈
	if !zone.IsDepleted && !zone.FeedbackActive {
		zone.FeedbackActive = true
		s.bus.Publish(event.Event{Type: event.RefillFeedback, Entity: actor, Zone: zoneID, Active: true})
	}
}

// OnStay 角色停留在补给区内
// 仅 gradual 模式、占用者匹配且未耗尽时，每步补给 RefillRate*deltaTime
func (s *RefillZoneSystem) OnStay(zoneID, actor ecs.EntityID, deltaTime float64) {
	zone, ok := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, zoneID)
	if !ok {
		return
	}
	if zone.Mode != config.RefillModeGradual || zone.Occupant != actor || zone.IsDepleted {
		return
	}
	if deltaTime <= 0 {
		return
	}
	s.grant(zoneID, zone, actor, zone.RefillRate*deltaTime)
}

// OnExit 角色离开补给区，清除占用者并停止反馈
func (s *RefillZoneSystem) OnExit(zoneID, actor ecs.EntityID) {
	zone, ok := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, zoneID)
	if !ok {
		return
	}
	if zone.Occupant == actor {
		zone.Occupant = ecs.InvalidEntity
	}
	s.stopFeedback(zoneID, zone, actor)
}

// ResetZone 重置补给区的使用次数与耗尽状态
func (s *RefillZoneSystem) ResetZone(zoneID ecs.EntityID) {
	zone, ok := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, zoneID)
	if !ok {
		return
	}
	zone.UsesRemaining = zone.MaxUses
	zone.IsDepleted = false
	log.Printf("[RefillZoneSystem] Zone '%s' reset (%d uses)", zone.Name, zone.MaxUses)
}

// grant 发放氧气并结算使用次数
func (s *RefillZoneSystem) grant(zoneID ecs.EntityID, zone *components.RefillZoneComponent, actor ecs.EntityID, amount float64) {
	granted := s.oxygenSystem.RefillOxygen(actor, amount)
	s.bus.Publish(event.Event{Type: event.RefillGranted, Entity: actor, Zone: zoneID, Amount: granted})

	if zone.MaxUses <= 0 {
		return
	}

	zone.UsesRemaining--
	if zone.UsesRemaining <= 0 {
		zone.UsesRemaining = 0
		zone.IsDepleted = true
		log.Printf("[RefillZoneSystem] Zone '%s' depleted", zone.Name)
		s.stopFeedback(zoneID, zone, actor)
		s.bus.Publish(event.Event{Type: event.RefillZoneDepleted, Entity: actor, Zone: zoneID})
	}
}

// stopFeedback 停止进入反馈
func (s *RefillZoneSystem) stopFeedback(zoneID ecs.EntityID, zone *components.RefillZoneComponent, actor ecs.EntityID) {
	if !zone.FeedbackActive {
		return
	}
	zone.FeedbackActive = false
	s.bus.Publish(event.Event{Type: event.RefillFeedback, Entity: actor, Zone: zoneID, Active: false})
}
