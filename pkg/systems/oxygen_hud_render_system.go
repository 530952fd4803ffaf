package systems

import (
	"image/color"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 布局（屏幕坐标）
const (
	OxygenHUDX      = 20.0
	OxygenHUDY      = 20.0
	OxygenHUDWidth  = 200.0
	OxygenHUDHeight = 16.0
)

var (
	oxygenHUDBackground = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	oxygenHUDBorder     = color.RGBA{R: 220, G: 230, B: 240, A: 255}
)

// OxygenHUDRenderSystem 绘制氧气条与百分比文本
type OxygenHUDRenderSystem struct {
	entityManager *ecs.EntityManager
	face          *text.GoTextFace
}

// NewOxygenHUDRenderSystem 创建 HUD 渲染系统
func NewOxygenHUDRenderSystem(em *ecs.EntityManager) *OxygenHUDRenderSystem {
	return &OxygenHUDRenderSystem{entityManager: em}
}

// SetFont 设置标签字体；未设置时使用调试字体
func (s *OxygenHUDRenderSystem) SetFont(face *text.GoTextFace) {
	s.face = face
}

// Draw 绘制所有可见的氧气显示
// 多个显示实体纵向排列
func (s *OxygenHUDRenderSystem) Draw(screen *ebiten.Image) {
	row := 0
	for _, id := range ecs.GetEntitiesWith1[*components.OxygenDisplayComponent](s.entityManager) {
		display, _ := ecs.GetComponent[*components.OxygenDisplayComponent](s.entityManager, id)
		if !display.Visible {
			continue
		}

		x := float32(OxygenHUDX)
		y := float32(OxygenHUDY + float64(row)*(OxygenHUDHeight+18))
		w := float32(OxygenHUDWidth)
		h := float32(OxygenHUDHeight)

		vector.DrawFilledRect(screen, x, y, w, h, oxygenHUDBackground, false)
		if display.FlashOn && display.Fraction > 0 {
			vector.DrawFilledRect(screen, x+2, y+2, (w-4)*float32(display.Fraction), h-4, display.BarColor, false)
		}
		vector.StrokeRect(screen, x, y, w, h, 1, oxygenHUDBorder, false)
		if s.face != nil {
			utils.DrawTextLines(screen, []string{display.Label}, s.face, float64(x+w+8), float64(y), 0, oxygenHUDBorder)
		} else {
			ebitenutil.DebugPrintAt(screen, display.Label, int(x)+int(w)+8, int(y))
		}

		row++
	}
}
