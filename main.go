package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/rectx/api"
	"github.com/matt-g-everett/rectx/display"
	"github.com/matt-g-everett/rectx/input"
	"github.com/matt-g-everett/rectx/stream"
	"github.com/matt-g-everett/rectx/util"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Streamer   *stream.Streamer
	Api        *api.Api
	Ticker     *stream.Ticker
	Controller *stream.Controller
	frame      *stream.Frame
	rnd        util.RandomSource
}

func newApp(config stream.Config, seed int64) (*app, error) {
	a := new(app)
	a.Config = config
	a.rnd = util.NewRandomSource(seed)
	a.frame = stream.NewFrame(config.Scene.Width, config.Scene.Height)
	a.Ticker = stream.NewTicker(config.Scene.FrameRate)

	renderer, err := stream.NewRenderer(config.Scene, a.rnd)
	if err != nil {
		return nil, err
	}
	a.Controller = stream.NewController(stream.ControllerOptions{
		Scheduler: a.Ticker,
		Animation: stream.NewMotion(config.Scene),
		Renderer:  renderer,
		Frame:     a.frame,
		Paused:    config.Scene.StartPaused,
	})
	a.Api = api.NewApi(a.Controller)

	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(a.Controller); err != nil {
		log.Println(err)
	}
}

func (a *app) connect() error {
	if a.Config.Mqtt.URL == "" {
		return nil
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (a *app) sinks() stream.FrameSinks {
	sinks := stream.FrameSinks{a.Api}
	if a.Streamer != nil {
		sinks = append(sinks, a.Streamer)
	}
	return sinks
}

// applyConfig swaps reloaded scene settings into the running controller.
// The frame size and transport settings only change on restart.
func (a *app) applyConfig(config stream.Config) {
	renderer, err := stream.NewRenderer(config.Scene, a.rnd)
	if err != nil {
		log.Printf("Keeping previous scene: %v", err)
		return
	}
	if config.Scene.Width != a.Config.Scene.Width || config.Scene.Height != a.Config.Scene.Height {
		log.Println("Scene size changes need a restart")
	}
	a.Controller.SetAnimation(stream.NewMotion(config.Scene))
	a.Controller.SetRenderer(renderer)
}

func (a *app) serve(ctx context.Context) {
	if a.Config.HTTP.Addr == "" {
		return
	}
	go func() {
		if err := a.Api.Serve(ctx, a.Config.HTTP.Addr); err != nil {
			log.Printf("HTTP: %v", err)
		}
	}()
}

func (a *app) runWindow(ctx context.Context) error {
	key, err := display.ParseKey(a.Config.Scene.PauseKey)
	if err != nil {
		return err
	}

	if !a.Controller.Start() {
		return nil
	}
	defer a.Controller.Stop()

	// ebiten owns the frame cadence here, so the ticker's queue is flushed
	// from the window's update loop instead of by Ticker.Run.
	w := display.NewWindow(ctx, a.Ticker.FrameQueue, a.Controller, a.frame, key)
	return w.Run("rectx")
}

func (a *app) runTerminal(ctx context.Context, quit func()) error {
	key, err := input.ParseKey(a.Config.Scene.PauseKey)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	if !a.Controller.Start() {
		return nil
	}
	defer a.Controller.Stop()

	go a.Ticker.Run(ctx)
	go input.ShowStatus(ctx, screen, a.Controller, a.Config.Scene.PauseKey)

	bridge := input.NewBridge(key, a.Controller)
	bridge.Listen(ctx, screen, quit)
	return nil
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	window := flag.Bool("window", false, "Render in a desktop window instead of the terminal.")
	seed := flag.Int64("seed", time.Now().UTC().UnixNano(), "Seed for the rectangle colour picker.")
	logPath := flag.String("log", "rectx.log", "Log file used while the terminal is taken over.")
	flag.Parse()

	config, err := stream.ReadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, using defaults", *configPath)
	} else if err != nil {
		log.Fatal(err)
	}

	if !*window {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
		mqtt.ERROR = log.New(f, "", log.LstdFlags)
	}
	log.Printf("Config: %+v", config.Scene)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(config, *seed)
	if err != nil {
		log.Fatal(err)
	}
	if err := a.connect(); err != nil {
		log.Fatalf("MQTT connect: %v", err)
	}
	if a.Client != nil {
		defer a.Client.Disconnect(250)
	}
	a.Controller.SetSink(a.sinks())
	a.serve(ctx)

	go func() {
		if err := stream.WatchConfig(ctx, *configPath, a.applyConfig); err != nil {
			log.Printf("Not watching config: %v", err)
		}
	}()

	if *window {
		err = a.runWindow(ctx)
	} else {
		err = a.runTerminal(ctx, cancel)
	}
	if err != nil {
		log.Fatal(err)
	}
}
