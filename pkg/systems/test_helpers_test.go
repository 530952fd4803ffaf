package systems

import (
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/event"
	"github.com/decker502/deepdive/pkg/utils"
)

// allEventTypes 测试中录制的全部事件类型
var allEventTypes = []event.Type{
	event.SubmersionChanged,
	event.OxygenChanged,
	event.OxygenLow,
	event.OxygenDepleted,
	event.ReturnStarted,
	event.ReturnCompleted,
	event.ReturnCancelled,
	event.ReturnFailed,
	event.RefillGranted,
	event.RefillZoneDepleted,
	event.RefillFeedback,
}

// eventRecorder 记录总线上的所有事件
type eventRecorder struct {
	events []event.Event
}

func newEventRecorder(bus *event.Bus) *eventRecorder {
	r := &eventRecorder{}
	for _, t := range allEventTypes {
		bus.Subscribe(t, func(e event.Event) {
			r.events = append(r.events, e)
		})
	}
	return r
}

func (r *eventRecorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (r *eventRecorder) last(t event.Type) (event.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}

func (r *eventRecorder) reset() {
	r.events = nil
}

// newTestOxygen 默认测试参数：100 上限，10/s 消耗，2s 缓冲，25% 低氧
func newTestOxygen() *components.OxygenComponent {
	return &components.OxygenComponent{
		Current:        100,
		Max:            100,
		DrainRate:      10,
		GraceTime:      2,
		LowThreshold:   0.25,
		ReturnDuration: 1,
	}
}

// newTestDiver 创建带位置的潜水员
func newTestDiver(em *ecs.EntityManager, oxygen *components.OxygenComponent, pos utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{Name: "diver", HeadOffset: 0.5})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Rotation: utils.IdentityQuat()})
	ecs.AddComponent(em, id, oxygen)
	return id
}

// withSurfacePoint 配置返回水面的目标位姿
func withSurfacePoint(oxygen *components.OxygenComponent, pos utils.Vec3) *components.OxygenComponent {
	oxygen.HasDestination = true
	oxygen.Destination = pos
	oxygen.DestinationRotation = utils.IdentityQuat()
	return oxygen
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// runSteps 以固定步长推进 n 步
func runSteps(update func(float64), dt float64, n int) {
	for i := 0; i < n; i++ {
		update(dt)
	}
}
