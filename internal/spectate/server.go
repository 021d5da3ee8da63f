package spectate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Server exposes the hub over HTTP.
//
//	GET /ws/{session}          WebSocket feed of snapshots
//	GET /qr.png?session={id}   QR code of the watch URL
type Server struct {
	hub     *Hub
	baseURL string
	logger  *log.Logger
}

// NewServer creates a server. baseURL is the externally reachable address,
// e.g. "http://localhost:8080".
func NewServer(hub *Hub, baseURL string, logger *log.Logger) *Server {
	if logger == nil {
		logger = hub.logger
	}
	return &Server{
		hub:     hub,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// WatchURL returns the WebSocket URL for sessionID.
func (s *Server) WatchURL(sessionID string) string {
	base := s.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws/" + sessionID
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{session}", s.handleWS)
	mux.HandleFunc("GET /qr.png", s.handleQR)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session")
	if id == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}
	s.hub.ServeWS(w, r, id)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}
	png, err := QRCodePNG(s.WatchURL(id))
	if err != nil {
		s.logger.Error("qr generation failed", "session", id, "err", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ListenAndServe runs the hub and the HTTP server on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: serve: %w", err)
	}
}
