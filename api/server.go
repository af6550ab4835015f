package api

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/matt-g-everett/rectx/stream"
)

// Scene is the view of the running controller the API exposes.
type Scene interface {
	State() stream.State
	Running() bool
	Toggle() bool
}

type stateResponse struct {
	Running bool `json:"running"`
	stream.State
}

// Api serves the latest frame and the run state over HTTP. It is a
// stream.FrameSink: every painted frame is copied into it.
type Api struct {
	scene Scene

	mu     sync.Mutex
	latest *stream.Frame
}

// NewApi creates an instance of an Api.
func NewApi(scene Scene) *Api {
	a := new(Api)
	a.scene = scene
	a.latest = stream.NewFrame(0, 0)
	return a
}

// SendFrame keeps a copy of f for /frame.png.
func (a *Api) SendFrame(f *stream.Frame) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f.CopyTo(a.latest)
}

// Handler routes the API endpoints.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /frame.png", a.handleFrame)
	mux.HandleFunc("GET /state", a.handleState)
	mux.HandleFunc("POST /toggle", a.handleToggle)
	return mux
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.latest.Bounds().Empty() {
		http.Error(w, "no frame painted yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, a.latest.Image()); err != nil {
		log.Printf("Encode frame: %v", err)
	}
}

func (a *Api) handleState(w http.ResponseWriter, r *http.Request) {
	a.writeState(w)
}

func (a *Api) handleToggle(w http.ResponseWriter, r *http.Request) {
	log.Printf("API: running=%v", a.scene.Toggle())
	a.writeState(w)
}

func (a *Api) writeState(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse{Running: a.scene.Running(), State: a.scene.State()})
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
