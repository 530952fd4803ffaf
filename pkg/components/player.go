package components

// PlayerComponent 标记玩家控制的潜水员实体
type PlayerComponent struct {
	Name string

	// HeadOffset 头部相对位置的高度偏移（米）
	// 入水判定以头部为准：身体入水但头部露出水面时仍可呼吸
	HeadOffset float64

	// SwimSpeed 游动速度（米/秒）
	SwimSpeed float64
}
