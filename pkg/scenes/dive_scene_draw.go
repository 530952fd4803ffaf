package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PixelsPerMeter 侧视图缩放
const PixelsPerMeter = 12.0

var (
	skyColor          = color.RGBA{R: 170, G: 210, B: 235, A: 255}
	surfaceLineColor  = color.RGBA{R: 230, G: 245, B: 255, A: 255}
	floorColor        = color.RGBA{R: 50, G: 40, B: 30, A: 255}
	zoneActiveColor   = color.RGBA{R: 120, G: 230, B: 255, A: 255}
	zoneFeedbackColor = color.RGBA{R: 120, G: 230, B: 255, A: 60}
	zoneDepletedColor = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	obstacleColor     = color.RGBA{R: 70, G: 65, B: 60, A: 255}
	fishColor         = color.RGBA{R: 250, G: 180, B: 60, A: 255}
	diverColor        = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	returningColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pauseOverlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// camera 以潜水员为中心的侧视相机（X 水平，Y 向上）
type camera struct {
	centerX, centerY float64
	width, height    float64
}

// worldToScreen 世界坐标（米）转屏幕坐标（像素）
func (c camera) worldToScreen(x, y float64) (float32, float32) {
	sx := c.width/2 + (x-c.centerX)*PixelsPerMeter
	sy := c.height/2 - (y-c.centerY)*PixelsPerMeter
	return float32(sx), float32(sy)
}

// applyExposure 按曝光值（EV）缩放颜色亮度，2^ev
func applyExposure(c color.RGBA, ev float64) color.RGBA {
	k := math.Pow(2, ev)
	scale := func(v uint8) uint8 {
		return uint8(utils.Clamp(math.Round(float64(v)*k), 0, 255))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Draw 绘制场景
func (s *DiveScene) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	cam := camera{width: float64(bounds.Dx()), height: float64(bounds.Dy())}
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.diverID); ok {
		cam.centerX = transform.Position.X
		cam.centerY = transform.Position.Y
	}

	env, _ := ecs.GetComponent[*components.DepthEnvironmentComponent](s.entityManager, s.diverID)
	s.drawWater(screen, cam, env)
	s.drawZones(screen, cam)
	s.drawObstacles(screen, cam)
	s.drawFish(screen, cam)
	s.drawDiver(screen, cam)

	s.hudRenderSystem.Draw(screen)
	s.drawDebugInfo(screen, env)

	if s.paused {
		vector.DrawFilledRect(screen, 0, 0, float32(cam.width), float32(cam.height), pauseOverlayColor, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED (P)", int(cam.width)/2-30, int(cam.height)/2)
	}
}

// drawWater 天空、水体（雾色 + 曝光）、水面线与水底
func (s *DiveScene) drawWater(screen *ebiten.Image, cam camera, env *components.DepthEnvironmentComponent) {
	screen.Fill(skyColor)

	water := color.RGBA{R: 40, G: 110, B: 150, A: 255}
	if env != nil && env.Initialized {
		water = applyExposure(env.FogColor, env.Exposure)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.WaterVolumeComponent](s.entityManager) {
		volume, _ := ecs.GetComponent[*components.WaterVolumeComponent](s.entityManager, id)
		x0, top := cam.worldToScreen(volume.Min.X, volume.SurfaceY)
		x1, bottom := cam.worldToScreen(volume.Max.X, volume.Min.Y)

		vector.DrawFilledRect(screen, x0, top, x1-x0, bottom-top, water, false)
		vector.StrokeLine(screen, x0, top, x1, top, 2, surfaceLineColor, false)
		vector.DrawFilledRect(screen, x0, bottom, x1-x0, float32(PixelsPerMeter), floorColor, false)
	}
}

func (s *DiveScene) drawZones(screen *ebiten.Image, cam camera) {
	for _, id := range ecs.GetEntitiesWith1[*components.RefillZoneComponent](s.entityManager) {
		zone, _ := ecs.GetComponent[*components.RefillZoneComponent](s.entityManager, id)
		x0, y0 := cam.worldToScreen(zone.Min.X, zone.Max.Y)
		x1, y1 := cam.worldToScreen(zone.Max.X, zone.Min.Y)

		c := zoneActiveColor
		if zone.IsDepleted {
			c = zoneDepletedColor
		}
		if zone.FeedbackActive {
			vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, zoneFeedbackColor, false)
		}
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, c, false)

		label := zone.Name
		if zone.MaxUses > 0 {
			label = fmt.Sprintf("%s %d/%d", zone.Name, zone.UsesRemaining, zone.MaxUses)
		}
		ebitenutil.DebugPrintAt(screen, label, int(x0), int(y0)-16)
	}
}

func (s *DiveScene) drawObstacles(screen *ebiten.Image, cam camera) {
	for _, id := range ecs.GetEntitiesWith2[*components.FlockObstacleComponent, *components.TransformComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.FlockObstacleComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		x, y := cam.worldToScreen(transform.Position.X, transform.Position.Y)
		vector.DrawFilledCircle(screen, x, y, float32(obstacle.Radius*PixelsPerMeter), obstacleColor, true)
	}
}

func (s *DiveScene) drawFish(screen *ebiten.Image, cam camera) {
	for _, id := range ecs.GetEntitiesWith2[*components.FishComponent, *components.VelocityComponent](s.entityManager) {
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}
		velocity, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		x, y := cam.worldToScreen(transform.Position.X, transform.Position.Y)

		// 尾巴指向速度反方向
		dir := utils.Vec3{X: velocity.Velocity.X, Y: velocity.Velocity.Y}.Normalize()
		tx := x - float32(dir.X*6)
		ty := y + float32(dir.Y*6)
		vector.StrokeLine(screen, tx, ty, x, y, 2, fishColor, true)
		vector.DrawFilledCircle(screen, x, y, 3, fishColor, true)
	}
}

func (s *DiveScene) drawDiver(screen *ebiten.Image, cam camera) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.diverID)
	if !ok {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.diverID)

	c := diverColor
	if s.oxygenSystem.IsReturning(s.diverID) {
		c = returningColor
	}

	x, y := cam.worldToScreen(transform.Position.X, transform.Position.Y)
	vector.DrawFilledCircle(screen, x, y, float32(0.5*PixelsPerMeter), c, true)

	if player != nil {
		hx, hy := cam.worldToScreen(transform.Position.X, transform.Position.Y+player.HeadOffset)
		vector.DrawFilledCircle(screen, hx, hy, float32(0.25*PixelsPerMeter), c, true)
	}

	// 朝向
	yaw := transform.Rotation.Yaw()
	fx := x + float32(math.Sin(yaw)*PixelsPerMeter)
	vector.StrokeLine(screen, x, y, fx, y, 2, c, true)
}

// drawDebugInfo 深度、分段与日志统计
func (s *DiveScene) drawDebugInfo(screen *ebiten.Image, env *components.DepthEnvironmentComponent) {
	lines := "WASD move  T surface  C cancel  F refill  L drain  Z reset zones  P pause  R restart"
	if utils.IsMobile() {
		lines = "Touch and hold an edge of the screen to swim"
	}
	if env != nil {
		lines += fmt.Sprintf("\nDepth %.1fm  band %s  fog %.3f  ev %.2f", env.Depth, env.Band, env.FogDensity, env.Exposure)
	}
	if s.diveLog != nil {
		stats := s.diveLog.Stats()
		lines += fmt.Sprintf("\nDives %d  deepest %.1fm  depletions %d", stats.TotalDives, stats.DeepestDepth, stats.Depletions)
	}
	bounds := screen.Bounds()
	if s.face == nil {
		ebitenutil.DebugPrintAt(screen, lines, 10, bounds.Dy()-52)
		return
	}
	wrapped := utils.WrapText(lines, s.face, float64(bounds.Dx()-20))
	lineHeight := s.face.Size * 1.3
	y := float64(bounds.Dy()) - 10 - float64(len(wrapped))*lineHeight
	utils.DrawTextLines(screen, wrapped, s.face, 10, y, lineHeight, surfaceLineColor)
}
