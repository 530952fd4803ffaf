package config

import "fmt"

// FlockConfig 鱼群配置
type FlockConfig struct {
	// Count 生成数量
	Count int `yaml:"count"`

	// NeighborRadius 对齐与聚合的感知半径
	NeighborRadius float64 `yaml:"neighborRadius"`

	// SeparationRadius 分离半径，小于该距离的邻居产生排斥
	SeparationRadius float64 `yaml:"separationRadius"`

	// AvoidRadius 障碍物表面外的回避距离
	AvoidRadius float64 `yaml:"avoidRadius"`

	// 各项转向权重
	SeparationWeight float64 `yaml:"separationWeight"`
	AlignmentWeight  float64 `yaml:"alignmentWeight"`
	CohesionWeight   float64 `yaml:"cohesionWeight"`
	AvoidanceWeight  float64 `yaml:"avoidanceWeight"`
	BoundsWeight     float64 `yaml:"boundsWeight"`

	// MinSpeed, MaxSpeed 速度范围（米/秒）
	MinSpeed float64 `yaml:"minSpeed"`
	MaxSpeed float64 `yaml:"maxSpeed"`

	// MaxSteer 每秒最大转向加速度
	MaxSteer float64 `yaml:"maxSteer"`
}

// DefaultFlockConfig 默认鱼群参数
func DefaultFlockConfig() FlockConfig {
	return FlockConfig{
		Count:            24,
		NeighborRadius:   4,
		SeparationRadius: 1.2,
		AvoidRadius:      2,
		SeparationWeight: 1.8,
		AlignmentWeight:  1.0,
		CohesionWeight:   0.8,
		AvoidanceWeight:  3.0,
		BoundsWeight:     2.0,
		MinSpeed:         0.8,
		MaxSpeed:         3.0,
		MaxSteer:         4.0,
	}
}

// Validate 验证鱼群参数
func (c *FlockConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("flock count must be >= 0, got %d", c.Count)
	}
	if c.NeighborRadius <= 0 {
		return fmt.Errorf("neighborRadius must be > 0, got %.2f", c.NeighborRadius)
	}
	if c.SeparationRadius <= 0 || c.SeparationRadius > c.NeighborRadius {
		return fmt.Errorf("separationRadius must be in (0, neighborRadius], got %.2f", c.SeparationRadius)
	}
	if c.MinSpeed < 0 || c.MaxSpeed <= 0 || c.MinSpeed > c.MaxSpeed {
		return fmt.Errorf("speed range invalid: min(%.2f) max(%.2f)", c.MinSpeed, c.MaxSpeed)
	}
	if c.MaxSteer <= 0 {
		return fmt.Errorf("maxSteer must be > 0, got %.2f", c.MaxSteer)
	}
	return nil
}
