package stream

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
mqtt:
  url: tcp://broker:1883
  topics:
    stream: home/canvas/stream
scene:
  width: 500
  height: 300
  colors: ["#ffffff", "#000000"]
  pauseKey: p
http:
  addr: ":8080"
`)

	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	if c.Mqtt.URL != "tcp://broker:1883" {
		t.Errorf("Mqtt.URL = %q", c.Mqtt.URL)
	}
	if c.Mqtt.Topics.Stream != "home/canvas/stream" {
		t.Errorf("Topics.Stream = %q", c.Mqtt.Topics.Stream)
	}
	if c.Mqtt.Topics.Control != "rectx/control" {
		t.Errorf("Topics.Control = %q, want default", c.Mqtt.Topics.Control)
	}
	if c.Scene.Width != 500 || c.Scene.Height != 300 {
		t.Errorf("scene size = %dx%d, want 500x300", c.Scene.Width, c.Scene.Height)
	}
	if c.Scene.Colors[0] != "#ffffff" || c.Scene.Colors[1] != "#000000" {
		t.Errorf("Colors = %v", c.Scene.Colors)
	}
	if c.Scene.PauseKey != "p" {
		t.Errorf("PauseKey = %q", c.Scene.PauseKey)
	}
	if c.Scene.MaxX != 600 || c.Scene.Period != 5 || c.Scene.Duration != 4 {
		t.Errorf("motion defaults lost: %+v", c.Scene)
	}
	if c.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", c.HTTP.Addr)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "scene: [", "decode"},
		{"zero duration", "scene:\n  duration: 0\n", "duration"},
		{"one color", "scene:\n  colors: [\"#ffffff\"]\n", "colors"},
		{"negative size", "scene:\n  width: -1\n", "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := ReadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("ReadConfig error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Fatalf("ReadConfig error = %v, want not-exist", err)
	}
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "scene:\n  frameRate: 30\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(c Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	rewrite := time.NewTicker(50 * time.Millisecond)
	defer rewrite.Stop()

	for received := false; !received; {
		select {
		case c := <-changes:
			received = c.Scene.FrameRate == 24
		case <-rewrite.C:
			writeConfig(t, dir, "scene:\n  frameRate: 24\n")
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WatchConfig returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WatchConfig did not return after cancel")
	}
}
