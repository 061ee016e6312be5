package health

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Gate reports the current market state for the status line.
type Gate interface {
	IsOpen(t time.Time) bool
	Describe() string
}

// Server answers liveness probes on the root path. It shares nothing mutable
// with the scheduler beyond a point-in-time gate check.
type Server struct {
	addr        string
	gate        Gate
	symbolCount int
	startedAt   time.Time
	srv         *http.Server
}

func NewServer(addr string, gate Gate, symbolCount int) *Server {
	return &Server{
		addr:        addr,
		gate:        gate,
		symbolCount: symbolCount,
		startedAt:   time.Now(),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)

	s.srv = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] health server listening on %s", s.addr)
	return s.srv.Serve(ln)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	now := time.Now()
	state := "closed"
	if s.gate.IsOpen(now) {
		state = "open"
	}
	fmt.Fprintf(w, "StockSentry is running\nmarket: %s (%s)\ntime: %s\nsymbols tracked: %d\nup since: %s\n",
		state, s.gate.Describe(), now.Format(time.RFC3339),
		s.symbolCount, s.startedAt.Format(time.RFC3339))
}
