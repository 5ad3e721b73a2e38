package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "SENSEXP"

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}
type Audio struct {
	FFmpeg           string `yaml:"ffmpeg"`
	TranscodeTimeout int    `yaml:"transcode_timeout"` // sec
}
type Plot struct {
	Width  float64 `yaml:"width"`  // inches
	Height float64 `yaml:"height"` // inches
	DPI    int     `yaml:"dpi"`
	Prompt bool    `yaml:"prompt"`
}
type Viewer struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	OpenBrowser bool   `yaml:"open_browser"`
	GraceMs     int    `yaml:"grace_ms"`
}
type Root struct {
	Log    Log    `yaml:"log"`
	Audio  Audio  `yaml:"audio"`
	Plot   Plot   `yaml:"plot"`
	Viewer Viewer `yaml:"viewer"`
	Paths  struct {
		Outputs string `yaml:"outputs"`
	} `yaml:"paths"`
	// Save exports the figure and a run summary under Paths.Outputs.
	Save bool `yaml:"save"`
}

// New returns a viper instance carrying the built-in defaults and reading
// SENSEXP_* environment overrides (SENSEXP_PLOT_DPI, SENSEXP_LOG_LEVEL, ...).
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("audio.ffmpeg", "ffmpeg")
	v.SetDefault("audio.transcode_timeout", 60)
	v.SetDefault("plot.width", 10.0)
	v.SetDefault("plot.height", 6.0)
	v.SetDefault("plot.dpi", 96)
	v.SetDefault("plot.prompt", true)
	v.SetDefault("viewer.enabled", true)
	v.SetDefault("viewer.addr", "127.0.0.1:0")
	v.SetDefault("viewer.open_browser", true)
	v.SetDefault("viewer.grace_ms", 2000)
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("save", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load merges an optional config file into v and decodes the result. An
// explicit path must exist; otherwise the usual locations are probed and
// the built-in defaults are used when none is present.
func Load(v *viper.Viper, path string) (*Root, error) {
	if path == "" {
		path = find()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	var cfg Root
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" })
	if err != nil {
		return nil, err
	}
	if cfg.Plot.DPI <= 0 || cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
		return nil, errors.New("config: plot width, height and dpi must be positive")
	}
	return &cfg, nil
}

func find() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	var guess []string = []string{
		filepath.Join("config", env, "config.yaml"),
		"sensexp.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// YAML renders the effective configuration.
func (r *Root) YAML() ([]byte, error) { return yaml.Marshal(r) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
func DurMillis(n int) time.Duration  { return time.Duration(n) * time.Millisecond }
