// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/deodar/internal/scene"
)

// Config is the full application configuration.
type Config struct {
	// ListenAddr is the HTTP server address, e.g. ":8173".
	ListenAddr string `yaml:"listenAddr"`
	// StaticDir is served at / when set.
	StaticDir string `yaml:"staticDir"`
	// CameraID selects the capture device.
	CameraID int `yaml:"cameraId"`
	// MotionThresh is the percent pixel change that counts as motion.
	MotionThresh float64 `yaml:"motionThresh"`
	// HookDir holds mode-change hook executables.
	HookDir string `yaml:"hookDir"`
	// Tray disables the system tray icon when false.
	Tray bool `yaml:"tray"`

	Scene  SceneConfig  `yaml:"scene"`
	Params scene.Params `yaml:"params"`

	// Photos preloads the photo collection at startup.
	Photos []string `yaml:"photos"`
}

// SceneConfig sets the element pool sizes and layout seed.
type SceneConfig struct {
	StardustCount int    `yaml:"stardustCount"`
	OrnamentCount int    `yaml:"ornamentCount"`
	BulbCount     int    `yaml:"bulbCount"`
	Seed          uint64 `yaml:"seed"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	sc := scene.DefaultConfig()
	return Config{
		ListenAddr:   ":8173",
		CameraID:     0,
		MotionThresh: 1.0,
		Tray:         true,
		Scene: SceneConfig{
			StardustCount: sc.StardustCount,
			OrnamentCount: sc.OrnamentCount,
			BulbCount:     sc.BulbCount,
			Seed:          sc.Seed,
		},
		Params: scene.DefaultParams(),
	}
}

// Load reads the configuration at path, filling unset fields with
// defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults replaces zero values that have no sensible zero meaning.
func (c *Config) fillDefaults() {
	d := Default()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.MotionThresh <= 0 {
		c.MotionThresh = d.MotionThresh
	}
	if c.Scene.StardustCount <= 0 {
		c.Scene.StardustCount = d.Scene.StardustCount
	}
	if c.Scene.OrnamentCount <= 0 {
		c.Scene.OrnamentCount = d.Scene.OrnamentCount
	}
	if c.Scene.BulbCount <= 0 {
		c.Scene.BulbCount = d.Scene.BulbCount
	}
	if c.Scene.Seed == 0 {
		c.Scene.Seed = d.Scene.Seed
	}
	if c.Params == (scene.Params{}) {
		c.Params = d.Params
	}
}

// ToScene converts the YAML pool settings to a scene.Config.
func (c *Config) ToScene() scene.Config {
	return scene.Config{
		StardustCount: c.Scene.StardustCount,
		OrnamentCount: c.Scene.OrnamentCount,
		BulbCount:     c.Scene.BulbCount,
		Seed:          c.Scene.Seed,
	}
}
