package main

import (
	"fmt"
	"os"

	"github.com/decker502/deepdive/pkg/config"
)

// 校验潜水场景配置文件
//
//	go run ./tools data/dive.yaml other.yaml
func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"data/dive.yaml"}
	}

	failed := 0
	for _, path := range paths {
		cfg, err := config.LoadDiveConfig(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed++
			continue
		}

		fmt.Printf("✅ %s\n", path)
		fmt.Printf("   水体: %d, 补给区: %d, 障碍物: %d, 鱼: %d\n",
			len(cfg.WaterVolumes), len(cfg.RefillZones), len(cfg.Obstacles), cfg.Flock.Count)
		if cfg.Oxygen.SurfacePoint == nil {
			fmt.Printf("⚠️  未配置 surfacePoint，返回水面将失败\n")
		}
		if len(cfg.WaterVolumes) == 0 {
			fmt.Printf("⚠️  没有水体，潜水员永远不会入水\n")
		}
	}

	if failed > 0 {
		fmt.Printf("❌ %d 个文件验证失败\n", failed)
		os.Exit(1)
	}
}
