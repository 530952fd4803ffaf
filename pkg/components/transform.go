package components

import "github.com/decker502/deepdive/pkg/utils"

// TransformComponent 实体的世界位姿
// 位置单位为米，Y 轴向上；水面高度由 WaterVolumeComponent.SurfaceY 定义
type TransformComponent struct {
	Position utils.Vec3
	Rotation utils.Quat
}

// VelocityComponent 线速度（米/秒）
type VelocityComponent struct {
	Velocity utils.Vec3
}
