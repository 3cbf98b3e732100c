package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/houselights/stream"
)

// Status is the JSON body of GET /status.
type Status struct {
	Tick      uint64  `json:"tick"`
	Universes int     `json:"universes"`
	Bytes     int     `json:"bytes"`
	UptimeSec float64 `json:"uptime_sec"`
}

// Api serves the loop status and a websocket preview of the padded frame.
type Api struct {
	addr     string
	started  time.Time
	upgrader websocket.Upgrader

	mu        sync.Mutex
	tick      uint64
	universes int
	frame     []byte
	clients   map[*websocket.Conn]bool

	notify chan struct{}
}

// NewApi creates an Api that will listen on addr once Serve is called.
func NewApi(addr string) *Api {
	a := new(Api)
	a.addr = addr
	a.started = time.Now()
	a.upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	a.clients = make(map[*websocket.Conn]bool)
	a.notify = make(chan struct{}, 1)
	return a
}

// Publish implements stream.FrameObserver. It never blocks the caller.
func (a *Api) Publish(tick uint64, universes []stream.Universe) {
	a.mu.Lock()
	a.tick = tick
	a.universes = len(universes)
	a.frame = a.frame[:0]
	for _, u := range universes {
		a.frame = append(a.frame, u.Data...)
	}
	a.mu.Unlock()

	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Handler routes /status and /frame.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", a.handleStatus)
	mux.HandleFunc("/frame", a.handleFrame)
	return mux
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	status := Status{
		Tick:      a.tick,
		Universes: a.universes,
		Bytes:     len(a.frame),
		UptimeSec: time.Since(a.started).Seconds(),
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Debug().Err(err).Msg("status write failed")
	}
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("frame preview upgrade failed")
		return
	}
	a.mu.Lock()
	a.clients[conn] = true
	a.mu.Unlock()

	// Drain reads so close frames from the client are noticed.
	go func() {
		defer a.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (a *Api) drop(conn *websocket.Conn) {
	a.mu.Lock()
	delete(a.clients, conn)
	a.mu.Unlock()
	conn.Close()
}

func (a *Api) clientCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.clients)
}

// broadcast sends the latest frame to every preview client after each
// Publish. Frames published while a send is in flight are coalesced.
func (a *Api) broadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.notify:
		}

		a.mu.Lock()
		frame := append([]byte(nil), a.frame...)
		conns := make([]*websocket.Conn, 0, len(a.clients))
		for c := range a.clients {
			conns = append(conns, c)
		}
		a.mu.Unlock()

		for _, c := range conns {
			_ = c.SetWriteDeadline(time.Now().Add(time.Second))
			if err := c.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				a.drop(c)
			}
		}
	}
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.addr,
		Handler:      a.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go a.broadcast(ctx)
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info().Str("addr", a.addr).Msg("api listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
