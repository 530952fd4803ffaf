package systems

import (
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// 潜水员活动范围
const (
	// DiverFloatHeight 允许高出水面的距离（米），即在水面漂浮的高度
	DiverFloatHeight = 1.0
	// DiverFloorClearance 距水底的最小距离（米）
	DiverFloorClearance = 0.5
)

// DiverControlSystem 潜水员移动系统
// 把一帧的输入转换为速度并积分位置，限制在水体范围内。
// 返回水面过程中位置由 OxygenSystem 接管，本系统不移动该实体。
type DiverControlSystem struct {
	entityManager *ecs.EntityManager
	oxygenSystem  *OxygenSystem
	input         utils.DiveInput
}

// NewDiverControlSystem 创建移动系统
func NewDiverControlSystem(em *ecs.EntityManager, oxygen *OxygenSystem) *DiverControlSystem {
	return &DiverControlSystem{
		entityManager: em,
		oxygenSystem:  oxygen,
	}
}

// SetInput 设置本帧输入
func (s *DiverControlSystem) SetInput(input utils.DiveInput) {
	s.input = input
}

// Update 移动所有潜水员
func (s *DiverControlSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	divers := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.TransformComponent,
		*components.VelocityComponent,
	](s.entityManager)

	volume, hasVolume := firstWaterVolume(s.entityManager)

	for _, id := range divers {
		velocity, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if s.oxygenSystem != nil && s.oxygenSystem.IsReturning(id) {
			velocity.Velocity = utils.Vec3{}
			continue
		}

		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		dir := utils.Vec3{X: s.input.MoveX, Y: s.input.MoveY}.Normalize()
		velocity.Velocity = dir.Scale(player.SwimSpeed)

		pos := transform.Position.Add(velocity.Velocity.Scale(deltaTime))
		if hasVolume {
			pos = clampToVolume(pos, volume)
		}
		transform.Position = pos

		if s.input.MoveX != 0 {
			transform.Rotation = utils.QuatFromYaw(math.Copysign(math.Pi/2, s.input.MoveX))
		}
	}
}

// clampToVolume 限制在水体水平范围内，垂直方向从水底到水面上方漂浮高度
func clampToVolume(p utils.Vec3, volume *components.WaterVolumeComponent) utils.Vec3 {
	return utils.Vec3{
		X: utils.Clamp(p.X, volume.Min.X, volume.Max.X),
		Y: utils.Clamp(p.Y, volume.Min.Y+DiverFloorClearance, volume.SurfaceY+DiverFloatHeight),
		Z: utils.Clamp(p.Z, volume.Min.Z, volume.Max.Z),
	}
}
