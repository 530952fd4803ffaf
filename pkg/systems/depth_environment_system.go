package systems

import (
	"image/color"
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
)

// 深度分段名称
const (
	BandSurface = "surface"
	BandMid     = "mid"
	BandDeep    = "deep"
	BandFloor   = "floor"
)

// EnvironmentParams 某一深度下的环境参数
type EnvironmentParams struct {
	Depth      float64
	Band       string
	FogDensity float64
	FogColor   color.RGBA
	Exposure   float64
}

// EvaluateDepth 纯函数：深度 → 环境参数
//
// 四个锚点之间使用 SmoothStep 插值；浅于水面锚点或深于水底锚点时取端点常量。
func EvaluateDepth(cfg *config.DepthEnvironmentConfig, depth float64) EnvironmentParams {
	stops := cfg.Stops()
	names := [4]string{BandSurface, BandMid, BandDeep, BandFloor}

	if depth <= stops[0].Depth {
		return paramsAt(stops[0], depth, BandSurface)
	}
	if depth >= stops[3].Depth {
		return paramsAt(stops[3], depth, BandFloor)
	}

	for i := 0; i < 3; i++ {
		from, to := stops[i], stops[i+1]
		if depth >= to.Depth {
			continue
		}
		t := utils.SmoothStep(utils.InverseLerp(from.Depth, to.Depth, depth))
		return EnvironmentParams{
			Depth:      depth,
			Band:       names[i],
			FogDensity: utils.Lerp(from.FogDensity, to.FogDensity, t),
			FogColor:   utils.LerpColor(from.FogColor.ToColor(), to.FogColor.ToColor(), t),
			Exposure:   utils.Lerp(from.Exposure, to.Exposure, t),
		}
	}

	return paramsAt(stops[3], depth, BandFloor)
}

func paramsAt(stop config.DepthStop, depth float64, band string) EnvironmentParams {
	return EnvironmentParams{
		Depth:      depth,
		Band:       band,
		FogDensity: stop.FogDensity,
		FogColor:   stop.FogColor.ToColor(),
		Exposure:   stop.Exposure,
	}
}

// DepthEnvironmentSystem 深度环境控制器
// 根据潜水员所在深度计算雾与曝光参数，写入 DepthEnvironmentComponent。
// 只是视图层的派生计算，不参与任何游戏决策。
type DepthEnvironmentSystem struct {
	entityManager *ecs.EntityManager
	triggers      *WaterTriggerSystem
	config        config.DepthEnvironmentConfig
}

// NewDepthEnvironmentSystem 创建深度环境系统
// 参数:
//   - triggers: 用于查询水面高度（可为 nil，此时水面高度视为 0）
func NewDepthEnvironmentSystem(em *ecs.EntityManager, triggers *WaterTriggerSystem, cfg config.DepthEnvironmentConfig) *DepthEnvironmentSystem {
	return &DepthEnvironmentSystem{
		entityManager: em,
		triggers:      triggers,
		config:        cfg,
	}
}

// Update 更新所有带环境组件的实体
func (s *DepthEnvironmentSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.DepthEnvironmentComponent,
		*components.TransformComponent,
	](s.entityManager)

	for _, id := range entities {
		env, _ := ecs.GetComponent[*components.DepthEnvironmentComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		surfaceY := 0.0
		if s.triggers != nil {
			if y, ok := s.triggers.SurfaceYAt(transform.Position); ok {
				surfaceY = y
			}
		}

		target := EvaluateDepth(&s.config, surfaceY-transform.Position.Y)
		s.apply(env, target, deltaTime)
	}
}

// apply 将目标参数写入组件
// Responsiveness > 0 时按指数衰减追随目标，避免瞬移后雾色突变
func (s *DepthEnvironmentSystem) apply(env *components.DepthEnvironmentComponent, target EnvironmentParams, deltaTime float64) {
	env.Depth = target.Depth
	env.Band = target.Band

	if !env.Initialized || s.config.Responsiveness <= 0 {
		env.FogDensity = target.FogDensity
		env.FogColor = target.FogColor
		env.Exposure = target.Exposure
		env.Initialized = true
		return
	}

	k := 1 - math.Exp(-s.config.Responsiveness*deltaTime)
	env.FogDensity = utils.Lerp(env.FogDensity, target.FogDensity, k)
	env.FogColor = utils.LerpColor(env.FogColor, target.FogColor, k)
	env.Exposure = utils.Lerp(env.Exposure, target.Exposure, k)
}
