package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/player-records-service/internal/app/players"
	"github.com/preston-bernstein/player-records-service/internal/http/requestutil"
	"github.com/preston-bernstein/player-records-service/internal/logging"
)

type datasetRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher datasetRefresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher datasetRefresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshDataset forces the cached dataset to reload from upstream.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshDataset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "dataset refresh not configured", logger)
		return
	}

	rows, err := h.refresher.Refresh(r.Context())
	switch {
	case errors.Is(err, appplayers.ErrRefreshUnsupported):
		writeError(w, r, http.StatusConflict, "dataset cache is disabled", logger)
		return
	case err != nil:
		logging.Warn(logger, "admin dataset refresh failed", slog.Any(logging.FieldError, err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh dataset", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rows":   rows,
	}, logger)
	logging.Info(logger, "admin dataset refreshed", slog.Int(logging.FieldRows, rows))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
