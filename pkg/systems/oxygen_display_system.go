package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/event"
	"github.com/decker502/deepdive/pkg/utils"
)

const (
	// OxygenFlashInterval 低氧闪烁半周期（秒）
	OxygenFlashInterval = 0.25
)

var (
	oxygenColorFull  = color.RGBA{R: 64, G: 220, B: 120, A: 255}
	oxygenColorHalf  = color.RGBA{R: 240, G: 210, B: 60, A: 255}
	oxygenColorEmpty = color.RGBA{R: 230, G: 50, B: 50, A: 255}
)

// OxygenDisplaySystem 氧气显示适配器
// 订阅氧气通知，把比例转换为百分比文本、颜色与闪烁状态。
type OxygenDisplaySystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	subscriptions []event.SubscriptionID
}

// NewOxygenDisplaySystem 创建显示系统并订阅氧气事件
func NewOxygenDisplaySystem(em *ecs.EntityManager, bus *event.Bus) *OxygenDisplaySystem {
	s := &OxygenDisplaySystem{
		entityManager: em,
		bus:           bus,
	}
	if bus != nil {
		s.subscriptions = append(s.subscriptions,
			bus.Subscribe(event.OxygenChanged, s.onOxygenChanged),
			bus.Subscribe(event.SubmersionChanged, s.onSubmersionChanged),
		)
	}
	return s
}

// Close 取消订阅
func (s *OxygenDisplaySystem) Close() {
	for _, id := range s.subscriptions {
		s.bus.Unsubscribe(id)
	}
	s.subscriptions = nil
}

// Refresh 从目标的氧气组件同步显示（创建显示实体后调用一次）
func (s *OxygenDisplaySystem) Refresh(displayID ecs.EntityID) {
	display, ok := ecs.GetComponent[*components.OxygenDisplayComponent](s.entityManager, displayID)
	if !ok {
		return
	}
	oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, display.Target)
	if !ok {
		return
	}
	s.applyFraction(display, fraction(oxygen), oxygen.LowThreshold)
	display.Visible = oxygen.IsUnderwater || display.Fraction < 1
}

// Update 推进低氧闪烁
func (s *OxygenDisplaySystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OxygenDisplayComponent](s.entityManager) {
		display, _ := ecs.GetComponent[*components.OxygenDisplayComponent](s.entityManager, id)
		if !display.IsLow {
			display.FlashOn = true
			display.FlashTimer = 0
			continue
		}
		display.FlashTimer += deltaTime
		for display.FlashTimer >= OxygenFlashInterval {
			display.FlashTimer -= OxygenFlashInterval
			display.FlashOn = !display.FlashOn
		}
	}
}

func (s *OxygenDisplaySystem) onOxygenChanged(e event.Event) {
	threshold := config.LowOxygenThreshold
	underwater := true
	if oxygen, ok := ecs.GetComponent[*components.OxygenComponent](s.entityManager, e.Entity); ok {
		threshold = oxygen.LowThreshold
		underwater = oxygen.IsUnderwater
	}
	for _, display := range s.displaysFor(e.Entity) {
		s.applyFraction(display, e.Fraction, threshold)
		display.Visible = underwater || display.Fraction < 1
	}
}

func (s *OxygenDisplaySystem) onSubmersionChanged(e event.Event) {
	for _, display := range s.displaysFor(e.Entity) {
		display.Visible = e.Active || display.Fraction < 1
	}
}

func (s *OxygenDisplaySystem) displaysFor(target ecs.EntityID) []*components.OxygenDisplayComponent {
	result := make([]*components.OxygenDisplayComponent, 0, 1)
	for _, id := range ecs.GetEntitiesWith1[*components.OxygenDisplayComponent](s.entityManager) {
		display, _ := ecs.GetComponent[*components.OxygenDisplayComponent](s.entityManager, id)
		if display.Target == target {
			result = append(result, display)
		}
	}
	return result
}

func (s *OxygenDisplaySystem) applyFraction(display *components.OxygenDisplayComponent, f, lowThreshold float64) {
	f = utils.Clamp01(f)
	display.Fraction = f
	display.Percent = int(math.Round(f * 100))
	display.Label = fmt.Sprintf("O2 %d%%", display.Percent)
	display.BarColor = OxygenBarColor(f)
	display.IsLow = f <= lowThreshold
}

// OxygenBarColor 氧气条颜色：0 红 → 0.5 黄 → 1 绿
func OxygenBarColor(f float64) color.RGBA {
	f = utils.Clamp01(f)
	if f < 0.5 {
		return utils.LerpColor(oxygenColorEmpty, oxygenColorHalf, f/0.5)
	}
	return utils.LerpColor(oxygenColorHalf, oxygenColorFull, (f-0.5)/0.5)
}
