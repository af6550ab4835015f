package stream

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of rectx.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Scene SceneConfig `yaml:"scene"`
	HTTP  struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// SceneConfig holds the fixed parameters of the moving rectangle scene.
type SceneConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	StartX      float64  `yaml:"startX"`
	StartY      float64  `yaml:"startY"`
	MaxX        float64  `yaml:"maxX"`
	MaxY        float64  `yaml:"maxY"`
	Duration    float64  `yaml:"duration"`
	Period      float64  `yaml:"period"`
	RectWidth   int      `yaml:"rectWidth"`
	RectHeight  int      `yaml:"rectHeight"`
	Colors      []string `yaml:"colors,flow"`
	PanelWidth  int      `yaml:"panelWidth"`
	PanelHeight int      `yaml:"panelHeight"`
	FontSize    float64  `yaml:"fontSize"`
	TextX       int      `yaml:"textX"`
	Baselines   []int    `yaml:"baselines,flow"`
	FrameRate   float64  `yaml:"frameRate"`
	PauseKey    string   `yaml:"pauseKey"`
	StartPaused bool     `yaml:"startPaused"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "rectx"
	c.Mqtt.Topics.Stream = "rectx/stream"
	c.Mqtt.Topics.Control = "rectx/control"
	c.HTTP.Addr = ":3000"
	c.Scene = SceneConfig{
		Width:       750,
		Height:      400,
		MaxX:        600,
		MaxY:        300,
		Duration:    4,
		Period:      5,
		RectWidth:   300,
		RectHeight:  200,
		Colors:      []string{"#ff8080", "#0099b0"},
		PanelWidth:  200,
		PanelHeight: 100,
		FontSize:    25,
		TextX:       10,
		Baselines:   []int{30, 60},
		FrameRate:   60,
		PauseKey:    "space",
	}
	return c
}

// ReadConfig decodes the YAML file at path over DefaultConfig.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := c.Scene.validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func (s SceneConfig) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene size %dx%d must be positive", s.Width, s.Height)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("scene duration %v must be positive", s.Duration)
	}
	if len(s.Colors) != 2 {
		return fmt.Errorf("scene needs exactly 2 colors, got %d", len(s.Colors))
	}
	if len(s.Baselines) != 2 {
		return fmt.Errorf("scene needs exactly 2 text baselines, got %d", len(s.Baselines))
	}
	if s.FrameRate <= 0 {
		return fmt.Errorf("scene frame rate %v must be positive", s.FrameRate)
	}
	return nil
}

// WatchConfig calls onChange with the re-read configuration every time the
// file at path is written. It returns when ctx is done.
func WatchConfig(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			c, err := ReadConfig(path)
			if err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			log.Printf("Config reloaded from %s", path)
			onChange(c)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config watcher: %v", err)
		}
	}
}
