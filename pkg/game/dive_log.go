package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/deepdive/pkg/event"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	diveLogObject   = "divelog"
	diveLogProperty = "stats"
)

// DiveStats 潜水累计统计
type DiveStats struct {
	TotalDives       int       `yaml:"totalDives"`       // 入水次数
	SubmergedSeconds float64   `yaml:"submergedSeconds"` // 水下累计时间
	DeepestDepth     float64   `yaml:"deepestDepth"`     // 最大深度（米）
	Depletions       int       `yaml:"depletions"`       // 氧气耗尽次数
	SurfaceReturns   int       `yaml:"surfaceReturns"`   // 返回水面完成次数
	OxygenRefilled   float64   `yaml:"oxygenRefilled"`   // 补给区累计发放量
	LastDive         time.Time `yaml:"lastDive"`         // 最近一次入水时间
}

// DiveLogManager 潜水日志
// 订阅氧气通知累计统计，通过 gdata 以 YAML 持久化。
// gdataManager 为 nil 时只在内存中统计。
type DiveLogManager struct {
	gdataManager  *gdata.Manager
	stats         DiveStats
	bus           *event.Bus
	subscriptions []event.SubscriptionID
	now           func() time.Time
}

// NewDiveLogManager 创建潜水日志并加载已保存的统计
func NewDiveLogManager(gdataManager *gdata.Manager) *DiveLogManager {
	dl := &DiveLogManager{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := dl.Load(); err != nil {
		log.Printf("[DiveLogManager] Warning: Failed to load dive log: %v (starting fresh)", err)
	}
	return dl
}

// Attach 订阅事件总线；重复调用会先取消旧订阅
func (dl *DiveLogManager) Attach(bus *event.Bus) {
	dl.Detach()
	if bus == nil {
		return
	}
	dl.bus = bus
	dl.subscriptions = []event.SubscriptionID{
		bus.Subscribe(event.SubmersionChanged, dl.onSubmersionChanged),
		bus.Subscribe(event.OxygenDepleted, func(event.Event) { dl.stats.Depletions++ }),
		bus.Subscribe(event.ReturnCompleted, func(event.Event) { dl.stats.SurfaceReturns++ }),
		bus.Subscribe(event.RefillGranted, func(e event.Event) { dl.stats.OxygenRefilled += e.Amount }),
	}
}

// Detach 取消订阅
func (dl *DiveLogManager) Detach() {
	if dl.bus == nil {
		return
	}
	for _, id := range dl.subscriptions {
		dl.bus.Unsubscribe(id)
	}
	dl.subscriptions = nil
	dl.bus = nil
}

// DetachFrom 仅取消对指定总线的订阅；已改为订阅其他总线时不做处理
func (dl *DiveLogManager) DetachFrom(bus *event.Bus) {
	if bus == nil || dl.bus != bus {
		return
	}
	dl.Detach()
}

func (dl *DiveLogManager) onSubmersionChanged(e event.Event) {
	if !e.Active {
		return
	}
	dl.stats.TotalDives++
	dl.stats.LastDive = dl.now()
}

// RecordFrame 记录一帧的深度与水下时间
func (dl *DiveLogManager) RecordFrame(depth float64, underwater bool, deltaTime float64) {
	if !underwater || deltaTime <= 0 {
		return
	}
	dl.stats.SubmergedSeconds += deltaTime
	if depth > dl.stats.DeepestDepth {
		dl.stats.DeepestDepth = depth
	}
}

// Stats 返回当前统计的副本
func (dl *DiveLogManager) Stats() DiveStats {
	return dl.stats
}

// Load 从 gdata 加载统计；没有存档时从零开始
func (dl *DiveLogManager) Load() error {
	dl.stats = DiveStats{}
	if dl.gdataManager == nil {
		return nil
	}
	if !dl.gdataManager.ObjectPropExists(diveLogObject, diveLogProperty) {
		return nil
	}

	data, err := dl.gdataManager.LoadObjectProp(diveLogObject, diveLogProperty)
	if err != nil {
		return fmt.Errorf("failed to load dive log: %w", err)
	}

	var stats DiveStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("failed to unmarshal dive log: %w", err)
	}
	dl.stats = stats
	log.Printf("[DiveLogManager] Loaded dive log: %d dives, deepest %.1fm", stats.TotalDives, stats.DeepestDepth)
	return nil
}

// Save 保存统计到 gdata
func (dl *DiveLogManager) Save() error {
	if dl.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&dl.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal dive log: %w", err)
	}
	if err := dl.gdataManager.SaveObjectProp(diveLogObject, diveLogProperty, data); err != nil {
		return fmt.Errorf("failed to save dive log: %w", err)
	}

	log.Printf("[DiveLogManager] Dive log saved")
	return nil
}

// Reset 清空统计（不会自动保存）
func (dl *DiveLogManager) Reset() {
	dl.stats = DiveStats{}
}
