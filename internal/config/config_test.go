package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/daynight/internal/render"
	"github.com/Faultbox/daynight/pkg/projection"
	"github.com/Faultbox/daynight/pkg/shading"
	"github.com/Faultbox/daynight/pkg/solar"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test render defaults
	if cfg.Render.Mode != "global" {
		t.Errorf("expected mode global, got %s", cfg.Render.Mode)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("expected width 1200, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Render.Height)
	}
	if cfg.Render.Interval != 60*time.Second {
		t.Errorf("expected interval 60s, got %v", cfg.Render.Interval)
	}

	// Test shading defaults
	if cfg.Shading.BlurAngle != 4 {
		t.Errorf("expected blur angle 4, got %v", cfg.Shading.BlurAngle)
	}
	if !cfg.Shading.Phong {
		t.Error("expected phong to be enabled by default")
	}
	if cfg.Shading.NightAlpha != 130 {
		t.Errorf("expected night alpha 130, got %d", cfg.Shading.NightAlpha)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  mode: timezone
  width: 1200
  height: 615
  interval: 2m
  workers: 3
  output_dir: /tmp/daynight

projection:
  lat_min: -60

shading:
  blur_angle: 6
  phong: false
  timezone_alpha: 100
  tint: {r: 10, g: 0, b: 30}

logging:
  level: "debug"
  log_file: "daynight.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Render.Mode != "timezone" {
		t.Errorf("expected mode timezone, got %s", cfg.Render.Mode)
	}
	if cfg.Render.Height != 615 {
		t.Errorf("expected height 615, got %d", cfg.Render.Height)
	}
	if cfg.Render.Interval != 2*time.Minute {
		t.Errorf("expected interval 2m, got %v", cfg.Render.Interval)
	}
	if cfg.Render.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Render.Workers)
	}

	if cfg.Shading.BlurAngle != 6 {
		t.Errorf("expected blur 6, got %v", cfg.Shading.BlurAngle)
	}
	if cfg.Shading.Phong {
		t.Error("expected phong to be disabled")
	}
	// Unset keys keep their defaults
	if cfg.Shading.ShadingDivisor != 260 {
		t.Errorf("expected shading divisor 260, got %v", cfg.Shading.ShadingDivisor)
	}
	if cfg.Shading.Tint != (shading.RGB{R: 10, G: 0, B: 30}) {
		t.Errorf("unexpected tint %v", cfg.Shading.Tint)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}

	// Projection overrides apply on top of the mode's projection
	p := cfg.ProjectionFor(render.ModeTimezone)
	if p.Kind != projection.Miller {
		t.Errorf("expected miller projection, got %s", p.Kind)
	}
	if p.LatMin != -60 {
		t.Errorf("expected lat_min -60, got %v", p.LatMin)
	}
	if p.LatMax != 85.3 {
		t.Errorf("expected lat_max to stay 85.3, got %v", p.LatMax)
	}
	if p.LonOffset != 12.5 {
		t.Errorf("expected lon_offset to stay 12.5, got %v", p.LonOffset)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := map[string]string{
		"bad syntax":  "render:\n  width: not a number\n  invalid syntax here\n",
		"unknown key": "render:\n  widht: 100\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("expected defaults to survive, got width %d", cfg.Render.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Isolate from any user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create daynight.yaml in current directory
	configPath := filepath.Join(tmpDir, "daynight.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find daynight.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "mode flag",
			setup: func() { *flagMode = "lights" },
			verify: func(cfg *Config) {
				if cfg.Render.Mode != "lights" {
					t.Errorf("expected mode lights, got %s", cfg.Render.Mode)
				}
			},
			teardown: func() { *flagMode = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2400
				*flagHeight = 1200
			},
			verify: func(cfg *Config) {
				if cfg.Render.Width != 2400 {
					t.Errorf("expected width 2400, got %d", cfg.Render.Width)
				}
				if cfg.Render.Height != 1200 {
					t.Errorf("expected height 1200, got %d", cfg.Render.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "interval flag",
			setup: func() { *flagInterval = 5 * time.Minute },
			verify: func(cfg *Config) {
				if cfg.Render.Interval != 5*time.Minute {
					t.Errorf("expected interval 5m, got %v", cfg.Render.Interval)
				}
			},
			teardown: func() { *flagInterval = 0 },
		},
		{
			name: "blur zero and no phong",
			setup: func() {
				*flagBlur = 0
				*flagNoPhong = true
			},
			verify: func(cfg *Config) {
				if cfg.Shading.BlurAngle != 0 {
					t.Errorf("expected blur 0, got %v", cfg.Shading.BlurAngle)
				}
				if cfg.Shading.Phong {
					t.Error("expected phong disabled")
				}
			},
			teardown: func() {
				*flagBlur = -1
				*flagNoPhong = false
			},
		},
		{
			name: "textures",
			setup: func() {
				*flagDay = "day.png"
				*flagNight = "night.png"
			},
			verify: func(cfg *Config) {
				if cfg.Render.DayTexture != "day.png" || cfg.Render.NightTexture != "night.png" {
					t.Errorf("unexpected textures %q %q", cfg.Render.DayTexture, cfg.Render.NightTexture)
				}
			},
			teardown: func() {
				*flagDay = ""
				*flagNight = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Render.Mode = "mercator" }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"zero interval", func(c *Config) { c.Render.Interval = 0 }},
		{"bad shading", func(c *Config) { c.Shading.BlurAngle = -2 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"degenerate miller", func(c *Config) {
			c.Render.Mode = "timezone"
			v := 90.0
			c.Projection.LatMin = &v
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRequest(t *testing.T) {
	cfg := Default()
	cfg.Render.Mode = "timezone"
	cfg.Render.Width, cfg.Render.Height = 1200, 615

	in := solar.Instant{Year: 2024, Month: 3, Day: 1, Hour: 6.5}
	req, err := cfg.Request(in)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.Policy != shading.PolicyTimezone {
		t.Errorf("expected timezone policy, got %s", req.Policy)
	}
	if req.Projection.Kind != projection.Miller {
		t.Errorf("expected miller projection, got %s", req.Projection.Kind)
	}
	if req.Width != 1200 || req.Height != 615 || req.Instant != in {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Mode = "lights"
	offset := 30.0
	cfg.Projection.LonOffset = &offset
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Render.Mode != "lights" {
		t.Errorf("expected mode lights, got %s", loaded.Render.Mode)
	}
	if loaded.Projection.LonOffset == nil || *loaded.Projection.LonOffset != 30 {
		t.Errorf("expected lon_offset 30, got %v", loaded.Projection.LonOffset)
	}
	if loaded.Render.Interval != time.Minute {
		t.Errorf("expected interval 1m, got %v", loaded.Render.Interval)
	}
}
