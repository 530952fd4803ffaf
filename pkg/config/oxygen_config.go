package config

import (
	"fmt"

	"github.com/decker502/deepdive/pkg/utils"
)

// 氧气系统常量
const (
	// LowOxygenThreshold 低氧警告阈值（氧气比例）
	// 比例 <= 0.25 时触发一次低氧警告；回升到 0.25 以上时重新布防
	LowOxygenThreshold = 0.25

	// DefaultMaxOxygen 默认最大氧气量
	DefaultMaxOxygen = 100.0

	// DefaultDrainRate 默认消耗速度（单位/秒）
	DefaultDrainRate = 10.0

	// DefaultGraceTime 默认入水缓冲时间（秒），缓冲期内不消耗氧气
	DefaultGraceTime = 2.0

	// DefaultReturnDuration 默认平滑返回水面的持续时间（秒）
	DefaultReturnDuration = 1.5
)

// DebugOxygen 是否输出逐帧氧气调试日志
var DebugOxygen = false

// PoseConfig 位置 + 朝向
type PoseConfig struct {
	Position utils.Vec3 `yaml:"position"`
	Rotation utils.Quat `yaml:"rotation"`
}

// OxygenConfig 氧气系统配置
//
// 配置文件位置: data/dive.yaml 的 oxygen 段
type OxygenConfig struct {
	// MaxOxygen 最大氧气量
	MaxOxygen float64 `yaml:"maxOxygen"`

	// DrainRate 缓冲期结束后每秒消耗的氧气
	DrainRate float64 `yaml:"drainRate"`

	// GraceTime 入水后开始消耗前的缓冲时间（秒）
	GraceTime float64 `yaml:"graceTime"`

	// LowThreshold 低氧警告阈值（比例），缺省为 LowOxygenThreshold
	LowThreshold float64 `yaml:"lowThreshold"`

	// AutoReturn 氧气耗尽时是否自动返回水面
	AutoReturn bool `yaml:"autoReturn"`

	// SmoothReturn 是否平滑移动返回（false 为瞬移）
	SmoothReturn bool `yaml:"smoothReturn"`

	// ReturnDuration 平滑返回持续时间（秒）
	ReturnDuration float64 `yaml:"returnDuration"`

	// SurfacePoint 返回水面的目标位姿，为空表示未配置
	SurfacePoint *PoseConfig `yaml:"surfacePoint"`
}

// DefaultOxygenConfig 返回默认氧气配置（未配置返回点）
func DefaultOxygenConfig() OxygenConfig {
	return OxygenConfig{
		MaxOxygen:      DefaultMaxOxygen,
		DrainRate:      DefaultDrainRate,
		GraceTime:      DefaultGraceTime,
		LowThreshold:   LowOxygenThreshold,
		AutoReturn:     true,
		SmoothReturn:   true,
		ReturnDuration: DefaultReturnDuration,
	}
}

// Validate 验证配置有效性
//
// 检查：
//   - MaxOxygen 必须为正
//   - DrainRate、GraceTime 不能为负
//   - LowThreshold 在 (0, 1) 之间
//   - 启用平滑返回时 ReturnDuration 必须为正
func (c *OxygenConfig) Validate() error {
	if c.MaxOxygen <= 0 {
		return fmt.Errorf("maxOxygen must be > 0, got %.2f", c.MaxOxygen)
	}
	if c.DrainRate < 0 {
		return fmt.Errorf("drainRate must be >= 0, got %.2f", c.DrainRate)
	}
	if c.GraceTime < 0 {
		return fmt.Errorf("graceTime must be >= 0, got %.2f", c.GraceTime)
	}
	if c.LowThreshold <= 0 || c.LowThreshold >= 1 {
		return fmt.Errorf("lowThreshold must be in (0, 1), got %.2f", c.LowThreshold)
	}
	if c.SmoothReturn && c.ReturnDuration <= 0 {
		return fmt.Errorf("returnDuration must be > 0 when smoothReturn is enabled, got %.2f", c.ReturnDuration)
	}
	return nil
}

// applyDefaults 为 YAML 中缺省的字段填充默认值
func (c *OxygenConfig) applyDefaults() {
	if c.LowThreshold == 0 {
		c.LowThreshold = LowOxygenThreshold
	}
	if c.ReturnDuration == 0 {
		c.ReturnDuration = DefaultReturnDuration
	}
	if c.SurfacePoint != nil && c.SurfacePoint.Rotation == (utils.Quat{}) {
		c.SurfacePoint.Rotation = utils.IdentityQuat()
	}
}
