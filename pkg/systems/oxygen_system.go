package systems

import (
	"errors"
	"log"
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/event"
	"github.com/decker502/deepdive/pkg/utils"
)

// ErrNoDestination 未配置返回水面的目标位姿
var ErrNoDestination = errors.New("no surface destination configured")

// ErrNoOxygen 实体没有 OxygenComponent
var ErrNoOxygen = errors.New("entity has no oxygen component")

// OxygenSystem 氧气状态控制器
// 职责：
//   - 入水/出水状态切换（入水缓冲期、消耗开关、低氧警告复位）
//   - 水下逐帧消耗氧气，发出变化 / 低氧 / 耗尽通知
//   - 补充氧气（逐步或一次性）与调试直接设置
//   - 返回水面（瞬移或平滑移动），耗尽时可自动触发
//
// 所有通知通过 event.Bus 同步发出，显示与音效等消费者只需订阅。
type OxygenSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
}

// NewOxygenSystem 创建氧气系统
// 参数:
//   - em: EntityManager 实例
//   - bus: 事件总线（可为 nil，此时不发出通知）
func NewOxygenSystem(em *ecs.EntityManager, bus *event.Bus) *OxygenSystem {
	return &OxygenSystem{
		entityManager: em,
		bus:           bus,
	}
}

// Update 更新所有拥有氧气组件的实体
// 参数:
//   - deltaTime: 自上次更新以来的时间（秒）
func (s *OxygenSystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}

	for _, id := range ecs.GetEntitiesWith1[*components.OxygenComponent](s.entityManager) {
		// 返回水面期间不消耗氧气，只推进返回动画
		if s.IsReturning(id) {
			s.advanceReturn(id, deltaTime)
			continue
		}

		oxygen, _ := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
		if oxygen.IsUnderwater {
			s.Tick(id, deltaTime)
		}
	}
}

// SetUnderwater 设置入水状态
//
// 状态未变化时不做任何处理（重叠触发区重复调用不会重启缓冲计时）。
// 入水：重置缓冲计时，停止消耗。
// 出水：停止消耗，重置缓冲计时，清除低氧警告标记（下次下潜重新布防）。
func (s *OxygenSystem) SetUnderwater(id ecs.EntityID, underwater bool) {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok {
		return
	}
	if oxygen.IsUnderwater == underwater {
		return
	}

	oxygen.IsUnderwater = underwater
	oxygen.GraceTimer = 0
	oxygen.IsDraining = false
	if !underwater {
		oxygen.HasTriggeredLowWarning = false
	}

	if underwater {
		log.Printf("[OxygenSystem] Entity %d entered water (grace %.1fs)", id, oxygen.GraceTime)
	} else {
		log.Printf("[OxygenSystem] Entity %d left water (oxygen %.1f/%.1f)", id, oxygen.Current, oxygen.Max)
	}

	s.bus.Publish(event.Event{
		Type:     event.SubmersionChanged,
		Entity:   id,
		Fraction: fraction(oxygen),
		Active:   underwater,
	})
}

// Tick 推进一个模拟步
//
// 仅在水下且未处于返回水面过程中生效：
//   - 缓冲期：累计 GraceTimer，达到 GraceTime 后开始消耗（本步不扣氧气）
//   - 消耗期：扣除 DrainRate*deltaTime 并限制到 >= 0，发出变化通知；
//     比例首次 <= 低氧阈值时发出一次低氧通知；降到 0 时发出耗尽通知，
//     开启自动返回时随即返回水面
func (s *OxygenSystem) Tick(id ecs.EntityID, deltaTime float64) {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok || !oxygen.IsUnderwater || s.IsReturning(id) {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}

	if !oxygen.IsDraining {
		oxygen.GraceTimer += deltaTime
		if oxygen.GraceTimer >= oxygen.GraceTime {
			oxygen.IsDraining = true
			log.Printf("[OxygenSystem] Entity %d grace period over, oxygen draining at %.1f/s", id, oxygen.DrainRate)
		}
		return
	}

	if oxygen.Current <= 0 {
		return
	}

	oxygen.Current = math.Max(0, oxygen.Current-oxygen.DrainRate*deltaTime)
	f := fraction(oxygen)

	if config.DebugOxygen {
		log.Printf("[OxygenSystem] Entity %d oxygen %.2f/%.2f (%.0f%%)", id, oxygen.Current, oxygen.Max, f*100)
	}

	s.bus.Publish(event.Event{Type: event.OxygenChanged, Entity: id, Fraction: f})

	if f <= oxygen.LowThreshold && !oxygen.HasTriggeredLowWarning {
		oxygen.HasTriggeredLowWarning = true
		log.Printf("[OxygenSystem] Entity %d oxygen low (%.0f%%)", id, f*100)
		s.bus.Publish(event.Event{Type: event.OxygenLow, Entity: id, Fraction: f})
	}

	// 只有从 >0 降到 0 的这一步会到达这里，耗尽通知天然只发一次
	if oxygen.Current <= 0 {
		log.Printf("[OxygenSystem] Entity %d oxygen depleted", id)
		s.bus.Publish(event.Event{Type: event.OxygenDepleted, Entity: id})

		if oxygen.AutoReturn {
			if err := s.ReturnToSurface(id); err != nil {
				log.Printf("[OxygenSystem] Warning: auto return failed for entity %d: %v", id, err)
			}
		}
	}
}

// RefillOxygen 补充氧气
//
// 负数补给量被忽略。结果限制到 Max，并发出变化通知；
// 新比例高于低氧阈值时重新布防低氧警告。
//
// 返回:
//   - float64: 实际增加的氧气量
func (s *OxygenSystem) RefillOxygen(id ecs.EntityID, amount float64) float64 {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	if amount < 0 || math.IsNaN(amount) {
		log.Printf("[OxygenSystem] Warning: ignoring invalid refill amount %v for entity %d", amount, id)
		return 0
	}

	before := oxygen.Current
	oxygen.Current = math.Min(oxygen.Max, oxygen.Current+amount)
	f := fraction(oxygen)
	s.bus.Publish(event.Event{Type: event.OxygenChanged, Entity: id, Fraction: f})

	if f > oxygen.LowThreshold {
		oxygen.HasTriggeredLowWarning = false
	}
	return oxygen.Current - before
}

// RefillOxygenFull 补满氧气，等价于 RefillOxygen(id, Max)
func (s *OxygenSystem) RefillOxygenFull(id ecs.EntityID) {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.RefillOxygen(id, oxygen.Max)
}

// SetOxygen 直接设置氧气量（调试/测试入口）
//
// 值限制到 [0, Max] 并发出变化通知。
// 注意：与 RefillOxygen 不同，这里不会重新布防低氧警告，
// 调试时把氧气设高再设低不会重复触发警告。
func (s *OxygenSystem) SetOxygen(id ecs.EntityID, value float64) {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok || math.IsNaN(value) {
		return
	}
	oxygen.Current = utils.Clamp(value, 0, oxygen.Max)
	s.bus.Publish(event.Event{Type: event.OxygenChanged, Entity: id, Fraction: fraction(oxygen)})
}

// ReturnToSurface 返回水面
//
// 未配置目标位姿时记录警告并发出 ReturnFailed，不改变任何状态。
// 已在返回过程中时直接返回（不会重复触发）。
// 瞬移模式：设置位置与朝向、出水、补满氧气。
// 平滑模式：启动 SurfaceReturnComponent，由 Update 逐帧推进，完成时执行与瞬移相同的收尾。
func (s *OxygenSystem) ReturnToSurface(id ecs.EntityID) error {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok {
		return ErrNoOxygen
	}
	if !oxygen.HasDestination {
		log.Printf("[OxygenSystem] Warning: entity %d has no surface destination, cannot return", id)
		s.bus.Publish(event.Event{Type: event.ReturnFailed, Entity: id, Fraction: fraction(oxygen)})
		return ErrNoDestination
	}
	if s.IsReturning(id) {
		return nil
	}

	transform, hasTransform := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !oxygen.SmoothReturn || oxygen.ReturnDuration <= 0 || !hasTransform {
		s.completeReturn(id)
		return nil
	}

	ret, ok := ecs.GetComponent[*components.SurfaceReturnComponent](s.entityManager, id)
	if !ok {
		ret = &components.SurfaceReturnComponent{}
		ecs.AddComponent(s.entityManager, id, ret)
	}
	*ret = components.SurfaceReturnComponent{
		IsReturning:    true,
		Duration:       oxygen.ReturnDuration,
		StartPosition:  transform.Position,
		StartRotation:  transform.Rotation,
		TargetPosition: oxygen.Destination,
		TargetRotation: oxygen.DestinationRotation,
	}

	log.Printf("[OxygenSystem] Entity %d returning to surface over %.2fs", id, ret.Duration)
	s.bus.Publish(event.Event{Type: event.ReturnStarted, Entity: id, Fraction: fraction(oxygen)})
	return nil
}

// CancelReturn 取消进行中的平滑返回，实体停在当前位置且不补充氧气
//
// 返回:
//   - bool: 是否确实取消了一次返回
func (s *OxygenSystem) CancelReturn(id ecs.EntityID) bool {
	ret, ok := ecs.GetComponent[*components.SurfaceReturnComponent](s.entityManager, id)
	if !ok || !ret.IsReturning {
		return false
	}
	ret.IsReturning = false

	log.Printf("[OxygenSystem] Entity %d surface return cancelled at %.2f/%.2fs", id, ret.Elapsed, ret.Duration)
	s.bus.Publish(event.Event{Type: event.ReturnCancelled, Entity: id})
	return true
}

// IsReturning 实体是否正在平滑返回水面
func (s *OxygenSystem) IsReturning(id ecs.EntityID) bool {
	ret, ok := ecs.GetComponent[*components.SurfaceReturnComponent](s.entityManager, id)
	return ok && ret.IsReturning
}

// GetFraction 返回实体当前氧气比例
func (s *OxygenSystem) GetFraction(id ecs.EntityID) (float64, bool) {
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)
	if !ok {
		return 0, false
	}
	return fraction(oxygen), true
}

// advanceReturn 推进平滑返回
// 位置使用 EaseOutCubic 插值，朝向使用球面插值
func (s *OxygenSystem) advanceReturn(id ecs.EntityID, deltaTime float64) {
	ret, _ := ecs.GetComponent[*components.SurfaceReturnComponent](s.entityManager, id)
	ret.Elapsed += deltaTime

	if ret.Elapsed >= ret.Duration {
		s.completeReturn(id)
		return
	}

	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}
	t := utils.EaseOutCubic(utils.Clamp01(ret.Elapsed / ret.Duration))
	transform.Position = utils.LerpVec3(ret.StartPosition, ret.TargetPosition, t)
	transform.Rotation = utils.Slerp(ret.StartRotation, ret.TargetRotation, t)
}

// completeReturn 返回水面的收尾：到达目标位姿、出水、补满氧气
func (s *OxygenSystem) completeReturn(id ecs.EntityID) {
	oxygen, _ := ecs.GetComponent[*components.OxygenComponent](s.entityManager, id)

	if ret, ok := ecs.GetComponent[*components.SurfaceReturnComponent](s.entityManager, id); ok {
		ret.IsReturning = false
		ret.Elapsed = ret.Duration
	}

	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		transform.Position = oxygen.Destination
		transform.Rotation = oxygen.DestinationRotation
	}

	s.SetUnderwater(id, false)
	s.RefillOxygenFull(id)

	log.Printf("[OxygenSystem] Entity %d returned to surface at (%.1f, %.1f, %.1f)",
		id, oxygen.Destination.X, oxygen.Destination.Y, oxygen.Destination.Z)
	s.bus.Publish(event.Event{Type: event.ReturnCompleted, Entity: id, Fraction: fraction(oxygen)})
}

// fraction 计算氧气比例
func fraction(oxygen *components.OxygenComponent) float64 {
	if oxygen.Max <= 0 {
		return 0
	}
	return oxygen.Current / oxygen.Max
}
