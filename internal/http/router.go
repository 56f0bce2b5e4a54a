package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/player-records-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The admin routes are mounted only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/", handler.Root)
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/players", handler.Players)
	mux.HandleFunc("/datos", handler.Players)
	if admin != nil {
		mux.HandleFunc("/admin/dataset/refresh", admin.RefreshDataset)
	}
	return mux
}
