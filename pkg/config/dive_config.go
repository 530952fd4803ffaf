package config

import (
	"fmt"
	"os"

	"github.com/decker502/deepdive/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DiveConfig 潜水场景配置
//
// 配置文件位置: data/dive.yaml
type DiveConfig struct {
	// Oxygen 氧气系统配置
	Oxygen OxygenConfig `yaml:"oxygen"`

	// DiverSpawn 潜水员出生点
	DiverSpawn PoseConfig `yaml:"diverSpawn"`

	// WaterVolumes 水体列表
	WaterVolumes []WaterVolumeConfig `yaml:"waterVolumes"`

	// RefillZones 氧气补给区列表
	RefillZones []RefillZoneConfig `yaml:"refillZones"`

	// DepthEnvironment 深度环境配置
	DepthEnvironment DepthEnvironmentConfig `yaml:"depthEnvironment"`

	// Flock 鱼群配置
	Flock FlockConfig `yaml:"flock"`

	// Obstacles 鱼群回避的球形障碍物
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig 球形障碍物（岩石、沉船等）
type ObstacleConfig struct {
	Center utils.Vec3 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

// DefaultDiveConfig 返回完整的默认配置
// 缺省段落在解析时以此为基础覆盖
func DefaultDiveConfig() *DiveConfig {
	return &DiveConfig{
		Oxygen:           DefaultOxygenConfig(),
		DiverSpawn:       PoseConfig{Position: utils.Vec3{Y: 1}, Rotation: utils.IdentityQuat()},
		DepthEnvironment: DefaultDepthEnvironmentConfig(),
		Flock:            DefaultFlockConfig(),
	}
}

// LoadDiveConfig 加载潜水场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/dive.yaml"）
//
// 返回:
//   - *DiveConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadDiveConfig(path string) (*DiveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dive config: %w", err)
	}
	return ParseDiveConfig(data)
}

// ParseDiveConfig 从 YAML 字节解析潜水场景配置（用于嵌入资源）
func ParseDiveConfig(data []byte) (*DiveConfig, error) {
	cfg := DefaultDiveConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dive config: %w", err)
	}

	cfg.Oxygen.applyDefaults()
	if cfg.DiverSpawn.Rotation == (utils.Quat{}) {
		cfg.DiverSpawn.Rotation = utils.IdentityQuat()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dive config: %w", err)
	}
	return cfg, nil
}

// Validate 逐段验证配置
func (c *DiveConfig) Validate() error {
	if err := c.Oxygen.Validate(); err != nil {
		return fmt.Errorf("oxygen: %w", err)
	}
	for i := range c.WaterVolumes {
		if err := c.WaterVolumes[i].Validate(); err != nil {
			return fmt.Errorf("waterVolumes[%d]: %w", i, err)
		}
	}
	for i := range c.RefillZones {
		if err := c.RefillZones[i].Validate(); err != nil {
			return fmt.Errorf("refillZones[%d]: %w", i, err)
		}
	}
	if err := c.DepthEnvironment.Validate(); err != nil {
		return fmt.Errorf("depthEnvironment: %w", err)
	}
	if err := c.Flock.Validate(); err != nil {
		return fmt.Errorf("flock: %w", err)
	}
	for i, o := range c.Obstacles {
		if o.Radius <= 0 {
			return fmt.Errorf("obstacles[%d]: radius must be > 0, got %.2f", i, o.Radius)
		}
	}
	return nil
}
