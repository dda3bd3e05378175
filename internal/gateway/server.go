package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/tools"
	"github.com/wardenhq/warden/internal/version"
)

// CommandRunner executes one guarded command invocation.
type CommandRunner interface {
	Execute(ctx context.Context, name, argsJSON string) (string, error)
}

// Server exposes the command guard over HTTP.
type Server struct {
	cfg        config.GatewayConfig
	runner     CommandRunner
	httpServer *http.Server
}

// New builds a gateway server around the given runner.
func New(cfg config.GatewayConfig, runner CommandRunner) *Server {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 18890
	}

	cfg.Host = host
	cfg.Port = port
	return &Server{
		cfg:    cfg,
		runner: runner,
	}
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

func (s *Server) Start() error {
	mux := NewHandler(s.cfg.Token, s.runner)
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("gateway listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// NewHandler builds the gateway routes. Exec requests require the bearer
// token when one is configured.
func NewHandler(token string, runner CommandRunner) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodGet {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"request_id": requestID,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodGet {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"version":    version.Version,
			"request_id": requestID,
		})
	})
	mux.HandleFunc("/exec", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodPost {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		if strings.TrimSpace(token) != "" && !isAuthorized(r, token) {
			writeError(w, requestID, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token")
			return
		}

		var req struct {
			Command string `json:"command"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, requestID, http.StatusBadRequest, "bad_request", "invalid json request")
			return
		}
		if strings.TrimSpace(req.Command) == "" {
			writeError(w, requestID, http.StatusBadRequest, "bad_request", "command is required")
			return
		}

		if runner == nil {
			writeError(w, requestID, http.StatusInternalServerError, "internal_error", "command runner is not configured")
			return
		}

		argsJSON, err := json.Marshal(map[string]string{"command": req.Command})
		if err != nil {
			writeError(w, requestID, http.StatusInternalServerError, "internal_error", "failed to encode command")
			return
		}

		ctx := tools.WithInvocationContext(r.Context(), tools.InvocationContext{
			Caller:    "gateway",
			RequestID: requestID,
		})
		result, err := runner.Execute(ctx, "run_safe_command", string(argsJSON))
		if err != nil {
			slog.Error("gateway exec failed", "request_id", requestID, "error", err)
			writeError(w, requestID, http.StatusInternalServerError, "internal_error", "failed to execute command")
			return
		}

		var payload tools.RunCommandOutput
		if err := json.Unmarshal([]byte(result), &payload); err != nil {
			writeError(w, requestID, http.StatusInternalServerError, "internal_error", "unexpected tool result")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"result":     payload,
			"request_id": requestID,
		})
	})
	return mux
}

func isAuthorized(r *http.Request, expected string) bool {
	got := strings.TrimSpace(r.Header.Get("Authorization"))
	if got == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(got, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(got, prefix))
	return token == expected
}

func getRequestID(r *http.Request) string {
	rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
	if rid != "" {
		return rid
	}
	return uuid.NewString()
}

func writeError(w http.ResponseWriter, requestID string, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"code":       code,
		"message":    message,
		"request_id": requestID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
