package components

// FishComponent 鱼群成员
type FishComponent struct {
	// FlockID 所属鱼群，只与同群成员交互
	FlockID int
}

// FlockObstacleComponent 鱼群需要回避的球形障碍物
type FlockObstacleComponent struct {
	Radius float64
}
