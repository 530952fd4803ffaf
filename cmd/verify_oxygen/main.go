// verify_oxygen 无窗口运行潜水场景，按秒打印氧气与深度
//
// 用法:
//
//	go run ./cmd/verify_oxygen -config data/dive.yaml -depth 15 -duration 30
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/decker502/deepdive/pkg/components"
	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/ecs"
	"github.com/decker502/deepdive/pkg/game"
	"github.com/decker502/deepdive/pkg/scenes"
	"github.com/decker502/deepdive/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/dive.yaml", "场景配置文件")
	depth      = flag.Float64("depth", 15, "下潜目标深度（米）")
	duration   = flag.Float64("duration", 30, "模拟时长（秒）")
	tps        = flag.Int("tps", 60, "每秒模拟步数")
	noAuto     = flag.Bool("no-auto-return", false, "关闭耗尽自动返回")
)

func main() {
	flag.Parse()
	if err := validateRunFlags(*tps, *duration); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadDiveConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *noAuto {
		cfg.Oxygen.AutoReturn = false
	}
	cfg.Flock.Count = 0

	diveLog := game.NewDiveLogManager(nil)
	scene, err := scenes.NewDiveScene(cfg, nil, diveLog, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	em := scene.EntityManager()
	diverID := scene.DiverID()
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, diverID)
	oxygen, _ := ecs.GetComponent[*components.OxygenComponent](em, diverID)
	env, _ := ecs.GetComponent[*components.DepthEnvironmentComponent](em, diverID)

	targetY := -*depth
	scene.SetInputSource(func() utils.DiveInput {
		if transform.Position.Y > targetY+0.05 {
			return utils.DiveInput{MoveY: -1}
		}
		return utils.DiveInput{}
	})

	dt := 1.0 / float64(*tps)
	steps := int(math.Round(*duration * float64(*tps)))

	fmt.Printf("%6s %8s %8s %8s %6s %-10s %s\n", "t(s)", "y(m)", "depth", "oxygen", "O2%", "band", "state")
	for i := 0; i <= steps; i++ {
		if i%*tps == 0 {
			state := "surface"
			switch {
			case scene.OxygenSystem().IsReturning(diverID):
				state = "returning"
			case oxygen.IsDraining:
				state = "draining"
			case oxygen.IsUnderwater:
				state = "grace"
			}
			fmt.Printf("%6.1f %8.2f %8.2f %8.2f %5.0f%% %-10s %s\n",
				float64(i)*dt, transform.Position.Y, env.Depth, oxygen.Current,
				100*oxygen.Current/oxygen.Max, env.Band, state)
		}
		scene.Update(dt)
	}

	stats := diveLog.Stats()
	fmt.Println()
	fmt.Printf("Dives: %d, submerged %.1fs, deepest %.1fm\n", stats.TotalDives, stats.SubmergedSeconds, stats.DeepestDepth)
	fmt.Printf("Depletions: %d, surface returns: %d, refilled %.1f\n", stats.Depletions, stats.SurfaceReturns, stats.OxygenRefilled)
}

// validateRunFlags 检查模拟步长参数
func validateRunFlags(tps int, duration float64) error {
	if tps <= 0 {
		return fmt.Errorf("-tps must be positive, got %d", tps)
	}
	if duration < 0 {
		return fmt.Errorf("-duration must not be negative, got %.2f", duration)
	}
	return nil
}
