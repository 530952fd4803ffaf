package components

import (
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// RefillZoneComponent 氧气补给区
//
// 除使用次数外无状态。IsDepleted 置位后不再补给，直到 RefillZoneSystem.ResetZone。
type RefillZoneComponent struct {
	Name string

	Mode          config.RefillMode
	RefillRate    float64 // gradual 模式每秒补给量
	InstantAmount float64 // 一次性补给量
	RefillOnEnter bool    // gradual 模式下进入时是否额外一次性补给

	// MaxUses 最大使用次数，0 表示无限
	MaxUses       int
	UsesRemaining int
	IsDepleted    bool

	// Occupant 当前占用者，ecs.InvalidEntity 表示无人
	Occupant ecs.EntityID

	// FeedbackActive 进入反馈（气泡声/粒子）是否正在播放
	FeedbackActive bool

	// 轴对齐包围盒
	Min utils.Vec3
	Max utils.Vec3
}

// Contains 判断点是否在补给区内（含边界）
func (z *RefillZoneComponent) Contains(p utils.Vec3) bool {
	return p.X >= z.Min.X && p.X <= z.Max.X &&
		p.Y >= z.Min.Y && p.Y <= z.Max.Y &&
		p.Z >= z.Min.Z && p.Z <= z.Max.Z
}

// WaterVolumeComponent 水体触发区
type WaterVolumeComponent struct {
	Name     string
	SurfaceY float64
	Min      utils.Vec3
	Max      utils.Vec3
}

// Submerges 判断点是否位于水面以下且在水体水平范围内
func (w *WaterVolumeComponent) Submerges(p utils.Vec3) bool {
	return p.Y < w.SurfaceY && p.Y >= w.Min.Y &&
		p.X >= w.Min.X && p.X <= w.Max.X &&
		p.Z >= w.Min.Z && p.Z <= w.Max.Z
}

// ZoneOccupancyComponent 记录潜水员当前所在的补给区（入口/出口边沿检测用）
type ZoneOccupancyComponent struct {
	Zones map[ecs.EntityID]bool
}
