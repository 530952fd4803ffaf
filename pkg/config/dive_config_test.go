package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadDiveConfigFromDataDir 测试加载项目自带的 data/dive.yaml
func TestLoadDiveConfigFromDataDir(t *testing.T) {
	cfg, err := LoadDiveConfig(filepath.Join("..", "..", "data", "dive.yaml"))
	if err != nil {
		t.Fatalf("LoadDiveConfig() error: %v", err)
	}

	if cfg.Oxygen.MaxOxygen != 100 || cfg.Oxygen.DrainRate != 10 || cfg.Oxygen.GraceTime != 2 {
		t.Errorf("unexpected oxygen config: %+v", cfg.Oxygen)
	}
	if cfg.Oxygen.SurfacePoint == nil {
		t.Fatal("surfacePoint should be configured")
	}
	if len(cfg.WaterVolumes) != 1 {
		t.Errorf("expected 1 water volume, got %d", len(cfg.WaterVolumes))
	}
	if len(cfg.RefillZones) != 2 {
		t.Fatalf("expected 2 refill zones, got %d", len(cfg.RefillZones))
	}
	if cfg.RefillZones[1].Mode != RefillModeInstant || cfg.RefillZones[1].MaxUses != 2 {
		t.Errorf("air-tank zone mismatch: %+v", cfg.RefillZones[1])
	}
	if cfg.DepthEnvironment.Floor.Depth != 40 {
		t.Errorf("floor depth = %v, want 40", cfg.DepthEnvironment.Floor.Depth)
	}
}

func TestParseDiveConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *DiveConfig)
	}{
		{
			name:        "empty document uses defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *DiveConfig) {
				if cfg.Oxygen.MaxOxygen != DefaultMaxOxygen {
					t.Errorf("MaxOxygen = %v, want %v", cfg.Oxygen.MaxOxygen, DefaultMaxOxygen)
				}
				if cfg.Oxygen.LowThreshold != LowOxygenThreshold {
					t.Errorf("LowThreshold = %v, want %v", cfg.Oxygen.LowThreshold, LowOxygenThreshold)
				}
				if cfg.Oxygen.SurfacePoint != nil {
					t.Error("SurfacePoint should be nil by default")
				}
				if cfg.DiverSpawn.Rotation.W != 1 {
					t.Errorf("spawn rotation should default to identity, got %+v", cfg.DiverSpawn.Rotation)
				}
			},
		},
		{
			name: "partial oxygen section keeps other defaults",
			yamlContent: `
oxygen:
  drainRate: 5
  autoReturn: false
  surfacePoint:
    position: { x: 1, y: 2, z: 3 }
`,
			validate: func(t *testing.T, cfg *DiveConfig) {
				if cfg.Oxygen.DrainRate != 5 {
					t.Errorf("DrainRate = %v, want 5", cfg.Oxygen.DrainRate)
				}
				if cfg.Oxygen.AutoReturn {
					t.Error("AutoReturn should be false")
				}
				if cfg.Oxygen.GraceTime != DefaultGraceTime {
					t.Errorf("GraceTime = %v, want default %v", cfg.Oxygen.GraceTime, DefaultGraceTime)
				}
				// 缺省朝向应补为单位四元数
				if cfg.Oxygen.SurfacePoint.Rotation.W != 1 {
					t.Errorf("surface rotation should default to identity, got %+v", cfg.Oxygen.SurfacePoint.Rotation)
				}
			},
		},
		{
			name: "negative max oxygen",
			yamlContent: `
oxygen:
  maxOxygen: -1
`,
			wantErr:     true,
			errContains: "maxOxygen",
		},
		{
			name: "unknown refill mode",
			yamlContent: `
refillZones:
  - name: vent
    mode: teleport
`,
			wantErr:     true,
			errContains: "unknown mode",
		},
		{
			name: "instant zone without amount",
			yamlContent: `
refillZones:
  - name: tank
    mode: instant
`,
			wantErr:     true,
			errContains: "instantAmount",
		},
		{
			name: "depth stops out of order",
			yamlContent: `
depthEnvironment:
  mid:
    depth: 50
`,
			wantErr:     true,
			errContains: "deep depth",
		},
		{
			name: "separation radius larger than neighbor radius",
			yamlContent: `
flock:
  separationRadius: 10
`,
			wantErr:     true,
			errContains: "separationRadius",
		},
		{
			name: "invalid yaml",
			yamlContent: `
oxygen: [unclosed
`,
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDiveConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadDiveConfigMissingFile(t *testing.T) {
	_, err := LoadDiveConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestOxygenConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OxygenConfig)
		wantErr bool
	}{
		{"default is valid", func(c *OxygenConfig) {}, false},
		{"negative drain", func(c *OxygenConfig) { c.DrainRate = -1 }, true},
		{"negative grace", func(c *OxygenConfig) { c.GraceTime = -0.1 }, true},
		{"threshold one", func(c *OxygenConfig) { c.LowThreshold = 1 }, true},
		{"smooth return without duration", func(c *OxygenConfig) { c.ReturnDuration = 0 }, true},
		{"instant return ignores duration", func(c *OxygenConfig) {
			c.SmoothReturn = false
			c.ReturnDuration = 0
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultOxygenConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
