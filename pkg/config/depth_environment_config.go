package config

import (
	"fmt"
	"image/color"
)

// RGBA YAML 友好的颜色
type RGBA struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// ToColor 转换为 image/color 颜色
func (c RGBA) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// DepthStop 深度分段的一个锚点
//
// 深度 = 水面高度 - 角色高度，水面为 0，向下为正
type DepthStop struct {
	// Depth 锚点深度（米）
	Depth float64 `yaml:"depth"`

	// FogDensity 雾密度
	FogDensity float64 `yaml:"fogDensity"`

	// FogColor 雾颜色
	FogColor RGBA `yaml:"fogColor"`

	// Exposure 后处理曝光补偿（EV）
	Exposure float64 `yaml:"exposure"`
}

// DepthEnvironmentConfig 深度环境配置
//
// 四个有序锚点：水面 → 中层 → 深层 → 水底。
// 相邻锚点之间使用 SmoothStep 插值，范围外取端点的常量值。
type DepthEnvironmentConfig struct {
	Surface DepthStop `yaml:"surface"`
	Mid     DepthStop `yaml:"mid"`
	Deep    DepthStop `yaml:"deep"`
	Floor   DepthStop `yaml:"floor"`

	// Responsiveness 输出参数追随目标值的速度（1/秒），0 表示立即生效
	Responsiveness float64 `yaml:"responsiveness"`
}

// Stops 按深度顺序返回四个锚点
func (c *DepthEnvironmentConfig) Stops() [4]DepthStop {
	return [4]DepthStop{c.Surface, c.Mid, c.Deep, c.Floor}
}

// DefaultDepthEnvironmentConfig 默认深度环境（湖泊/洞穴潜水）
func DefaultDepthEnvironmentConfig() DepthEnvironmentConfig {
	return DepthEnvironmentConfig{
		Surface: DepthStop{Depth: 0, FogDensity: 0.01, FogColor: RGBA{96, 170, 200, 255}, Exposure: 0},
		Mid:     DepthStop{Depth: 10, FogDensity: 0.04, FogColor: RGBA{40, 110, 150, 255}, Exposure: -0.5},
		Deep:    DepthStop{Depth: 25, FogDensity: 0.09, FogColor: RGBA{12, 50, 80, 255}, Exposure: -1.2},
		Floor:   DepthStop{Depth: 40, FogDensity: 0.15, FogColor: RGBA{4, 16, 30, 255}, Exposure: -2},
	}
}

// Validate 验证锚点深度严格递增且密度非负
func (c *DepthEnvironmentConfig) Validate() error {
	names := [4]string{"surface", "mid", "deep", "floor"}
	stops := c.Stops()
	for i, stop := range stops {
		if stop.FogDensity < 0 {
			return fmt.Errorf("%s fogDensity must be >= 0, got %.3f", names[i], stop.FogDensity)
		}
		if i > 0 && stop.Depth <= stops[i-1].Depth {
			return fmt.Errorf("%s depth (%.2f) must be greater than %s depth (%.2f)",
				names[i], stop.Depth, names[i-1], stops[i-1].Depth)
		}
	}
	if c.Responsiveness < 0 {
		return fmt.Errorf("responsiveness must be >= 0, got %.2f", c.Responsiveness)
	}
	return nil
}
