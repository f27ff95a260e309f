package config

import (
	"flag"
	"time"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMode     = flag.String("mode", "", "Map mode: global, lights or timezone")
	flagWidth    = flag.Int("width", 0, "Output width in pixels")
	flagHeight   = flag.Int("height", 0, "Output height in pixels")
	flagInterval = flag.Duration("interval", 0, "Time between frames")
	flagWorkers  = flag.Int("workers", 0, "Parallel row workers (0 = one per CPU)")
	flagOutput   = flag.String("out", "", "Output directory")
	flagDay      = flag.String("day", "", "Day texture PNG (global mode)")
	flagNight    = flag.String("night", "", "Night texture PNG (global mode)")
	flagBlur     = flag.Float64("blur", -1, "Terminator blur angle in degrees")
	flagNoPhong  = flag.Bool("no-phong", false, "Disable day side shading")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		cfg.Render.Mode = *flagMode
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagInterval > time.Duration(0) {
		cfg.Render.Interval = *flagInterval
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagOutput != "" {
		cfg.Render.OutputDir = *flagOutput
	}
	if *flagDay != "" {
		cfg.Render.DayTexture = *flagDay
	}
	if *flagNight != "" {
		cfg.Render.NightTexture = *flagNight
	}
	if *flagBlur >= 0 {
		cfg.Shading.BlurAngle = *flagBlur
	}
	if *flagNoPhong {
		cfg.Shading.Phong = false
	}
}
