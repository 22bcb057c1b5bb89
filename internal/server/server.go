package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/config"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/sandbox"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// Server exposes a sandbox to browsers over HTTP and WebSocket.
type Server struct {
	projectPath string
	cfg         *config.Config
	hub         *Hub
	session     *Session
}

// New creates a server for the given project directory and configuration.
func New(projectPath string, cfg *config.Config) *Server {
	hub := NewHub()
	return &Server{
		projectPath: projectPath,
		cfg:         cfg,
		hub:         hub,
		session:     NewSession(sandbox.New(cfg), hub, cfg.TickInterval(), cfg.Server.BroadcastEvery),
	}
}

// Session returns the server's engine session.
func (s *Server) Session() *Session {
	return s.session
}

// Handler returns the HTTP routes. WebSocket clients stay bound to ctx.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})
	mux.HandleFunc("GET /", s.handleIndex)

	return enableCORS(mux)
}

// Start runs the session and the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go s.session.Run(ctx)

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler(ctx)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("server shutdown failed")
		}
	}()

	logger.Log.Infof("City sandbox server starting on http://localhost%s", addr)
	logger.Log.Infof("Project: %s", s.projectPath)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Debug("write response failed")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>City Sandbox</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>City Sandbox</h1>
<p>Connect a renderer to <code>/ws</code>; the scene is also available at <code>/api/scene</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	msg, err := s.session.Do(r.Context(), func(sb *sandbox.Sandbox) ServerMessage {
		return ServerMessage{Type: MsgScene, Scene: sb.Export()}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, msg.Scene)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	msg, err := s.session.Do(r.Context(), func(sb *sandbox.Sandbox) ServerMessage {
		report := config.Validate(sb.Config)
		report.Merge(scene.ValidateDocument(sb.Export()))
		return ServerMessage{Type: MsgValidation, Report: report}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, msg.Report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := newClient(conn, s.session, s.hub)
	logger.Log.WithField("client", client.ID).Info("client connected")

	go client.writePump()
	go client.readPump(ctx)
}
