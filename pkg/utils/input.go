// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DiveInput 一帧的玩家输入
// 移动轴为侧视图坐标：X 水平，Y 向上
type DiveInput struct {
	MoveX float64
	MoveY float64

	// 单次触发的操作（按下当帧为 true）
	ReturnToSurface bool
	CancelReturn    bool
	RefillFull      bool
	DrainDebug      bool
	ResetZones      bool
	TogglePause     bool
	Restart         bool
}

// IsZero 是否没有任何输入
func (in DiveInput) IsZero() bool {
	return in == DiveInput{}
}

// Axis 由一对方向键得到 -1 / 0 / 1
func Axis(negative, positive bool) float64 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	}
	return 0
}

// ReadDiveInput 读取当前帧的键盘与触摸输入
//
// 键位：
//   - WASD / 方向键: 游动
//   - T: 返回水面；C: 取消返回
//   - F: 补满氧气；L: 氧气设为 10%（调试）
//   - Z: 重置补给区；P: 暂停；R: 重新开始
//
// 触摸：按住屏幕左右/上下半区游动
func ReadDiveInput(screenWidth, screenHeight int) DiveInput {
	in := DiveInput{
		MoveX: Axis(
			ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		),
		MoveY: Axis(
			ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		),
		ReturnToSurface: inpututil.IsKeyJustPressed(ebiten.KeyT),
		CancelReturn:    inpututil.IsKeyJustPressed(ebiten.KeyC),
		RefillFull:      inpututil.IsKeyJustPressed(ebiten.KeyF),
		DrainDebug:      inpututil.IsKeyJustPressed(ebiten.KeyL),
		ResetZones:      inpututil.IsKeyJustPressed(ebiten.KeyZ),
		TogglePause:     inpututil.IsKeyJustPressed(ebiten.KeyP),
		Restart:         inpututil.IsKeyJustPressed(ebiten.KeyR),
	}

	if in.MoveX == 0 && in.MoveY == 0 {
		if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
			x, y := ebiten.TouchPosition(touchIDs[0])
			in.MoveX, in.MoveY = TouchAxes(x, y, screenWidth, screenHeight)
		}
	}
	return in
}

// TouchAxes 将触摸点换算为移动方向
// 屏幕中心 1/3 区域为死区
func TouchAxes(x, y, screenWidth, screenHeight int) (float64, float64) {
	if screenWidth <= 0 || screenHeight <= 0 {
		return 0, 0
	}
	third := func(v, size int) float64 {
		switch {
		case v < size/3:
			return -1
		case v > size*2/3:
			return 1
		}
		return 0
	}
	// 屏幕 Y 向下，世界 Y 向上
	return third(x, screenWidth), -third(y, screenHeight)
}
