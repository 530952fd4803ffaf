package components

import "github.com/decker502/deepdive/pkg/utils"

// OxygenComponent 潜水员的氧气状态
//
// 不变量（每次观察时都成立）：
//   - 0 <= Current <= Max
//   - IsDraining 为 true 时 IsUnderwater 必为 true
//   - HasTriggeredLowWarning 在两次"从下方越过低氧阈值"之间最多置位一次
//
// 注意：遵循 ECS 原则，组件仅存储数据，状态变更由 OxygenSystem 负责
type OxygenComponent struct {
	// Current 当前氧气量
	Current float64

	// Max 最大氧气量
	Max float64

	// IsUnderwater 是否处于水下（由 WaterTriggerSystem 设置）
	IsUnderwater bool

	// IsDraining 是否正在消耗氧气（入水缓冲期结束后才为 true）
	IsDraining bool

	// GraceTimer 入水缓冲计时器（秒）
	GraceTimer float64

	// HasTriggeredLowWarning 本轮消耗周期内是否已发出低氧警告
	HasTriggeredLowWarning bool

	// 配置参数（创建时从 config.OxygenConfig 复制）
	DrainRate      float64
	GraceTime      float64
	LowThreshold   float64
	AutoReturn     bool
	SmoothReturn   bool
	ReturnDuration float64

	// HasDestination 是否配置了返回水面的目标位姿
	HasDestination      bool
	Destination         utils.Vec3
	DestinationRotation utils.Quat
}

// SurfaceReturnComponent 平滑返回水面的进行状态
//
// 替代协程式的逐帧等待：每次 OxygenSystem.Update 推进 Elapsed，
// Elapsed >= Duration 时完成并执行与瞬移相同的收尾逻辑。
type SurfaceReturnComponent struct {
	IsReturning bool

	// Elapsed 已经过时间（秒）
	Elapsed float64

	// Duration 总持续时间（秒）
	Duration float64

	StartPosition  utils.Vec3
	StartRotation  utils.Quat
	TargetPosition utils.Vec3
	TargetRotation utils.Quat
}
