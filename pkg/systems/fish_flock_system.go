package systems

import (
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// flockBoundsMargin 距水体边界多近开始转向（米）
const flockBoundsMargin = 1.5

// FishFlockSystem 鱼群移动系统
// 经典 boids：分离 / 对齐 / 聚合，加上球形障碍物回避与水体边界约束。
// 同一帧内先基于快照计算全部转向，再统一积分，结果与遍历顺序无关。
type FishFlockSystem struct {
	entityManager *ecs.EntityManager
	config        config.FlockConfig
}

// NewFishFlockSystem 创建鱼群系统
func NewFishFlockSystem(em *ecs.EntityManager, cfg config.FlockConfig) *FishFlockSystem {
	return &FishFlockSystem{
		entityManager: em,
		config:        cfg,
	}
}

type boid struct {
	id    ecs.EntityID
	flock int
	pos   utils.Vec3
	vel   utils.Vec3
}

type sphere struct {
	center utils.Vec3
	radius float64
}

// Update 更新所有鱼的速度与位置
func (s *FishFlockSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	ids := ecs.GetEntitiesWith3[
		*components.FishComponent,
		*components.TransformComponent,
		*components.VelocityComponent,
	](s.entityManager)
	if len(ids) == 0 {
		return
	}

	boids := make([]boid, 0, len(ids))
	for _, id := range ids {
		fish, _ := ecs.GetComponent[*components.FishComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		velocity, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		boids = append(boids, boid{id: id, flock: fish.FlockID, pos: transform.Position, vel: velocity.Velocity})
	}

	obstacles := s.collectObstacles()
	volume, hasVolume := firstWaterVolume(s.entityManager)

	for i := range boids {
		steer := s.flockSteer(boids, i)
		steer = steer.Add(s.avoidSteer(boids[i].pos, obstacles).Scale(s.config.AvoidanceWeight))
		if hasVolume {
			steer = steer.Add(boundsSteer(boids[i].pos, volume).Scale(s.config.BoundsWeight))
		}
		steer = steer.ClampLength(0, s.config.MaxSteer)

		vel := boids[i].vel.Add(steer.Scale(deltaTime))
		if vel.Length() == 0 {
			vel = utils.Vec3{Z: 1}
		}
		vel = vel.ClampLength(s.config.MinSpeed, s.config.MaxSpeed)

		velocity, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, boids[i].id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, boids[i].id)
		velocity.Velocity = vel
		transform.Position = boids[i].pos.Add(vel.Scale(deltaTime))
		transform.Rotation = utils.QuatFromYaw(math.Atan2(vel.X, vel.Z))
	}
}

// flockSteer 分离、对齐、聚合三项之和（已乘权重）
func (s *FishFlockSystem) flockSteer(boids []boid, i int) utils.Vec3 {
	self := boids[i]
	var separation, avgVel, avgPos utils.Vec3
	neighbors := 0

	for j, other := range boids {
		if j == i || other.flock != self.flock {
			continue
		}
		offset := self.pos.Sub(other.pos)
		dist := offset.Length()
		if dist >= s.config.NeighborRadius {
			continue
		}
		neighbors++
		avgVel = avgVel.Add(other.vel)
		avgPos = avgPos.Add(other.pos)

		if dist < s.config.SeparationRadius {
			if dist == 0 {
				// 完全重合时按 ID 顺序错开
				offset = utils.Vec3{X: float64(int(self.id) - int(other.id))}
				dist = 1
			}
			separation = separation.Add(offset.Normalize().Scale(1 / dist))
		}
	}

	if neighbors == 0 {
		return utils.Vec3{}
	}

	n := float64(neighbors)
	alignment := avgVel.Scale(1 / n).Sub(self.vel)
	cohesion := avgPos.Scale(1 / n).Sub(self.pos)

	return separation.Scale(s.config.SeparationWeight).
		Add(alignment.Scale(s.config.AlignmentWeight)).
		Add(cohesion.Scale(s.config.CohesionWeight))
}

// avoidSteer 障碍物回避：距离表面越近推力越大，进入内部时推力最大
func (s *FishFlockSystem) avoidSteer(pos utils.Vec3, obstacles []sphere) utils.Vec3 {
	var steer utils.Vec3
	for _, o := range obstacles {
		offset := pos.Sub(o.center)
		surfaceDist := offset.Length() - o.radius
		if surfaceDist >= s.config.AvoidRadius {
			continue
		}
		strength := 1.0
		if surfaceDist > 0 {
			strength = (s.config.AvoidRadius - surfaceDist) / s.config.AvoidRadius
		}
		dir := offset.Normalize()
		if dir.Length() == 0 {
			dir = utils.Vec3{Y: 1}
		}
		steer = steer.Add(dir.Scale(strength * s.config.MaxSteer))
	}
	return steer
}

// boundsSteer 靠近水体边界（含水面）时向内转向
func boundsSteer(pos utils.Vec3, volume *components.WaterVolumeComponent) utils.Vec3 {
	top := math.Min(volume.Max.Y, volume.SurfaceY)
	return utils.Vec3{
		X: axisPush(pos.X, volume.Min.X, volume.Max.X),
		Y: axisPush(pos.Y, volume.Min.Y, top),
		Z: axisPush(pos.Z, volume.Min.Z, volume.Max.Z),
	}
}

func axisPush(v, min, max float64) float64 {
	if v < min+flockBoundsMargin {
		return (min + flockBoundsMargin - v) / flockBoundsMargin
	}
	if v > max-flockBoundsMargin {
		return -(v - (max - flockBoundsMargin)) / flockBoundsMargin
	}
	return 0
}

func (s *FishFlockSystem) collectObstacles() []sphere {
	ids := ecs.GetEntitiesWith2[*components.FlockObstacleComponent, *components.TransformComponent](s.entityManager)
	result := make([]sphere, 0, len(ids))
	for _, id := range ids {
		obstacle, _ := ecs.GetComponent[*components.FlockObstacleComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		result = append(result, sphere{center: transform.Position, radius: obstacle.Radius})
	}
	return result
}

// firstWaterVolume 返回 ID 最小的水体
func firstWaterVolume(em *ecs.EntityManager) (*components.WaterVolumeComponent, bool) {
	ids := ecs.GetEntitiesWith1[*components.WaterVolumeComponent](em)
	if len(ids) == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.WaterVolumeComponent](em, ids[0])
}
