// Package viewer shows a rendered figure in the browser and blocks until the
// viewing window is closed.
//
// The page holds a websocket open to the server. When the last socket drops
// and nobody reconnects within the grace period (a reload reconnects almost
// immediately), the window counts as closed.
package viewer

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Addr  string
	Title string
	Grace time.Duration
	// Open is called with the page URL once the server listens.
	Open func(ctx context.Context, url string) error
}

type server struct {
	png      []byte
	title    string
	upgrader websocket.Upgrader

	events chan int
	done   chan struct{}
	once   sync.Once
}

func newServer(png []byte, title string) *server {
	return &server{
		png:    png,
		title:  title,
		events: make(chan int),
		done:   make(chan struct{}),
	}
}

// Serve blocks until the viewer window closes or ctx is cancelled. Both count
// as a normal end of the session.
func Serve(ctx context.Context, png []byte, o Options) error {
	addr := o.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s := newServer(png, o.Title)
	srv := &http.Server{Handler: s.routes(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	url := "http://" + ln.Addr().String() + "/"
	logrus.WithField("url", url).Info("figure ready, close the viewer window to exit")
	if o.Open != nil {
		if err := o.Open(ctx, url); err != nil {
			logrus.WithError(err).Warn("could not open browser, visit the url manually")
		}
	}

	select {
	case err = <-errCh:
	default:
		err = s.wait(ctx, o.Grace)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

func (s *server) wait(ctx context.Context, grace time.Duration) error {
	defer s.once.Do(func() { close(s.done) })
	active := 0
	var closed <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logrus.Info("viewer interrupted")
			return nil
		case d := <-s.events:
			active += d
			if d > 0 {
				closed = nil
			} else if active == 0 {
				closed = time.After(grace)
			}
		case <-closed:
			logrus.Debug("viewer window closed")
			return nil
		}
	}
}

func (s *server) notify(d int) {
	select {
	case s.events <- d:
	case <-s.done:
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/figure.png", s.handleFigure)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, struct{ Title string }{s.title}); err != nil {
		logrus.WithError(err).Warn("render viewer page")
	}
}

func (s *server) handleFigure(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(s.png)
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	s.notify(+1)
	defer s.notify(-1)

	// Unblock the read loop when the session ends first.
	go func() {
		<-s.done
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #fff; font-family: sans-serif; }
img { display: block; max-width: 100vw; max-height: 100vh; margin: auto; }
#status { position: fixed; bottom: 4px; right: 8px; color: #888; font-size: 12px; }
</style>
</head>
<body>
<img src="/figure.png" alt="{{.Title}}">
<div id="status"></div>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onclose = () => { document.getElementById("status").textContent = "session ended"; };
</script>
</body>
</html>
`))
