package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"

	appplayers "github.com/preston-bernstein/player-records-service/internal/app/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/poller"
)

// ServiceInfo is reported by the root endpoint.
type ServiceInfo struct {
	Name    string
	Version string
}

// Handler wires HTTP routes to the players service.
type Handler struct {
	svc      *appplayers.Service
	info     ServiceInfo
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *appplayers.Service, info ServiceInfo, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		info:     info,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/":
		h.Root(w, r)
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/players", "/datos":
		h.Players(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Root describes the service and its endpoints.
func (h *Handler) Root(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"message": h.info.Name,
		"version": h.info.Version,
		"endpoints": map[string]string{
			"players": "/players - filtered, grouped and paginated player records",
			"datos":   "/datos - alias of /players",
			"health":  "/health - liveness check",
			"ready":   "/ready - readiness check",
		},
	}, h.logger)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "service is running",
	}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Players runs a filter/group/paginate query over the dataset.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	req, err := parseQueryRequest(r.URL.Query())
	if err != nil {
		logging.Warn(logger, "invalid query parameters", logging.FieldError, err)
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}

	res, err := h.svc.Query(r.Context(), req)
	if err != nil {
		if errors.Is(err, appplayers.ErrDatasetUnavailable) {
			writeError(w, r, nethttp.StatusBadGateway, err.Error(), logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", logger)
		return
	}

	writeJSON(w, nethttp.StatusOK, res, logger)
}
