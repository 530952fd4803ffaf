// Package event 提供同步的观察者通知总线
//
// 系统在产生状态变化的同一帧内同步调用订阅者，调用顺序与订阅顺序一致。
// 显示、音效、潜水日志等被动消费者通过订阅获得氧气相关通知，
// OxygenSystem 不需要知道它们的存在。
package event

import "github.com/decker502/deepdive/pkg/ecs"

// Type 事件类型
type Type string

const (
	// SubmersionChanged 入水/出水状态变化
	SubmersionChanged Type = "submersion_changed"
	// OxygenChanged 氧气量变化（携带新的比例）
	OxygenChanged Type = "oxygen_changed"
	// OxygenLow 氧气比例首次降到低氧阈值以下（每个消耗周期一次）
	OxygenLow Type = "oxygen_low"
	// OxygenDepleted 氧气耗尽
	OxygenDepleted Type = "oxygen_depleted"
	// ReturnStarted 开始平滑返回水面
	ReturnStarted Type = "return_started"
	// ReturnCompleted 返回水面完成
	ReturnCompleted Type = "return_completed"
	// ReturnCancelled 平滑返回被取消
	ReturnCancelled Type = "return_cancelled"
	// ReturnFailed 未配置返回目标，无法返回
	ReturnFailed Type = "return_failed"
	// RefillGranted 补给区发放了氧气
	RefillGranted Type = "refill_granted"
	// RefillZoneDepleted 补给区已耗尽（耗尽时刻或耗尽后被进入时）
	RefillZoneDepleted Type = "refill_zone_depleted"
	// RefillFeedback 补给区反馈开始/停止
	RefillFeedback Type = "refill_feedback"
)

// Event 一次通知
type Event struct {
	Type Type

	// Entity 事件主体（潜水员）
	Entity ecs.EntityID

	// Zone 相关补给区，非补给事件为 ecs.InvalidEntity
	Zone ecs.EntityID

	// Fraction 氧气比例（OxygenChanged / OxygenLow / OxygenDepleted）
	Fraction float64

	// Amount 补给量（RefillGranted）
	Amount float64

	// Active 布尔负载：SubmersionChanged 表示是否入水，RefillFeedback 表示是否开始
	Active bool
}

// Handler 订阅回调
type Handler func(Event)

// SubscriptionID 订阅句柄，用于取消订阅
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus 事件总线（单线程使用，不加锁）
type Bus struct {
	nextID    SubscriptionID
	listeners map[Type][]subscription
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		nextID:    1,
		listeners: make(map[Type][]subscription),
	}
}

// Subscribe 订阅事件
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	id := b.nextID
	b.nextID++
	b.listeners[eventType] = append(b.listeners[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe 取消订阅，未知句柄忽略
func (b *Bus) Unsubscribe(id SubscriptionID) {
	for eventType, subs := range b.listeners {
		for i, s := range subs {
			if s.id == id {
				b.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish 同步分发事件
// 分发期间新增的订阅从下一次 Publish 开始生效
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	subs := b.listeners[e.Type]
	for _, s := range subs {
		s.handler(e)
	}
}
