package components

import (
	"image/color"

	"github.com/decker502/deepdive/pkg/ecs"
)

// OxygenDisplayComponent 氧气显示适配器的状态
// 由 OxygenDisplaySystem 根据通知更新，OxygenHUDRenderSystem 读取绘制
type OxygenDisplayComponent struct {
	// Target 显示的潜水员实体
	Target ecs.EntityID

	// Fraction 氧气比例 0..1
	Fraction float64

	// Percent 百分比（四舍五入）
	Percent int

	// Label 文本，如 "O2 75%"
	Label string

	// BarColor 氧气条颜色（绿 → 黄 → 红）
	BarColor color.RGBA

	// IsLow 是否低于低氧阈值
	IsLow bool

	// FlashTimer 低氧闪烁计时器（秒）
	FlashTimer float64

	// FlashOn 闪烁当前相位是否可见
	FlashOn bool

	// Visible 水面满氧时隐藏
	Visible bool
}

// DepthEnvironmentComponent 深度环境输出参数（雾、曝光）
type DepthEnvironmentComponent struct {
	Depth      float64
	Band       string
	FogDensity float64
	FogColor   color.RGBA
	Exposure   float64

	// Initialized 首次更新直接取目标值，不做平滑
	Initialized bool
}
