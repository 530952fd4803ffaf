package config

import (
	"fmt"

	"github.com/decker502/deepdive/pkg/utils"
)

// RefillMode 补给区补给方式
type RefillMode string

const (
	// RefillModeGradual 停留期间按速度持续补给
	RefillModeGradual RefillMode = "gradual"
	// RefillModeInstant 进入时一次性补给
	RefillModeInstant RefillMode = "instant"
)

// RefillZoneConfig 氧气补给区配置
type RefillZoneConfig struct {
	// Name 补给区名称（日志与调试用）
	Name string `yaml:"name"`

	// Mode 补给方式: gradual / instant
	Mode RefillMode `yaml:"mode"`

	// RefillRate gradual 模式下每秒补给量
	RefillRate float64 `yaml:"refillRate"`

	// InstantAmount 一次性补给量（instant 模式，或 gradual 模式下 refillOnEnter 时使用）
	InstantAmount float64 `yaml:"instantAmount"`

	// RefillOnEnter gradual 模式下进入时是否额外一次性补给
	RefillOnEnter bool `yaml:"refillOnEnter"`

	// MaxUses 最大使用次数，0 表示无限
	MaxUses int `yaml:"maxUses"`

	// Min, Max 补给区的轴对齐包围盒
	Min utils.Vec3 `yaml:"min"`
	Max utils.Vec3 `yaml:"max"`
}

// Validate 验证补给区配置
func (c *RefillZoneConfig) Validate() error {
	switch c.Mode {
	case RefillModeGradual:
		if c.RefillRate <= 0 {
			return fmt.Errorf("refill zone '%s': refillRate must be > 0 in gradual mode, got %.2f", c.Name, c.RefillRate)
		}
		if c.RefillOnEnter && c.InstantAmount <= 0 {
			return fmt.Errorf("refill zone '%s': instantAmount must be > 0 when refillOnEnter is set", c.Name)
		}
	case RefillModeInstant:
		if c.InstantAmount <= 0 {
			return fmt.Errorf("refill zone '%s': instantAmount must be > 0 in instant mode, got %.2f", c.Name, c.InstantAmount)
		}
	default:
		return fmt.Errorf("refill zone '%s': unknown mode '%s'", c.Name, c.Mode)
	}

	if c.MaxUses < 0 {
		return fmt.Errorf("refill zone '%s': maxUses must be >= 0, got %d", c.Name, c.MaxUses)
	}
	if c.Min.X > c.Max.X || c.Min.Y > c.Max.Y || c.Min.Z > c.Max.Z {
		return fmt.Errorf("refill zone '%s': bounds min %v exceeds max %v", c.Name, c.Min, c.Max)
	}
	return nil
}

// WaterVolumeConfig 水体配置（触发入水/出水判定）
type WaterVolumeConfig struct {
	Name string `yaml:"name"`

	// SurfaceY 水面高度，低于该高度视为在水下
	SurfaceY float64 `yaml:"surfaceY"`

	// Min, Max 水体的水平范围与底部（Max.Y 一般等于 SurfaceY）
	Min utils.Vec3 `yaml:"min"`
	Max utils.Vec3 `yaml:"max"`
}

// Validate 验证水体配置
func (c *WaterVolumeConfig) Validate() error {
	if c.Min.X > c.Max.X || c.Min.Y > c.Max.Y || c.Min.Z > c.Max.Z {
		return fmt.Errorf("water volume '%s': bounds min %v exceeds max %v", c.Name, c.Min, c.Max)
	}
	if c.SurfaceY < c.Min.Y {
		return fmt.Errorf("water volume '%s': surfaceY %.2f is below the floor %.2f", c.Name, c.SurfaceY, c.Min.Y)
	}
	return nil
}
