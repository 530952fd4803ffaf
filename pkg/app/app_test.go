package app

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/deepdive/pkg/config"
	"github.com/decker502/deepdive/pkg/embedded"
)

// TestLoadConfigFromFile 从文件系统加载项目自带的场景配置
func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig("../../data/dive.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.WaterVolumes) != 1 || len(cfg.RefillZones) != 2 {
		t.Errorf("Expected 1 volume and 2 zones, got %d/%d", len(cfg.WaterVolumes), len(cfg.RefillZones))
	}
	if cfg.Oxygen.SurfacePoint == nil {
		t.Error("Expected surface point to be configured")
	}
}

// TestLoadConfigEmbedded 路径为空时读取嵌入资源，缺省段落取默认值
func TestLoadConfigEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/dive.yaml": {Data: []byte("oxygen:\n  maxOxygen: 50\n")},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Oxygen.MaxOxygen != 50 {
		t.Errorf("MaxOxygen: got %v, want 50", cfg.Oxygen.MaxOxygen)
	}
	if cfg.Oxygen.DrainRate != config.DefaultDrainRate {
		t.Errorf("DrainRate should keep default, got %v", cfg.Oxygen.DrainRate)
	}
}

// TestLoadConfigErrors 文件不存在或嵌入资源未初始化
func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig("does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}

	embedded.Init(nil)
	if _, err := LoadConfig(""); err == nil {
		t.Error("Expected error when embedded data is not initialized")
	}
}
