package handlers

import (
	"net/http"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/http/respond"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/middleware"
	"github.com/hongminglow/driveops-be/internal/service"
)

type DashboardHandler struct {
	svc service.DashboardService
	log logger.ILogger
}

func NewDashboardHandler(svc service.DashboardService, log logger.ILogger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

func (h *DashboardHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.Handle("GET /api/dashboard/stats", guard(auth.AdminOnly, h.handleStats))
	mux.Handle("GET /api/dashboard/driver-stats", guard(auth.DriverOnly, h.handleDriverStats))
}

func (h *DashboardHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

// handleDriverStats reports on the calling driver only.
func (h *DashboardHandler) handleDriverStats(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.IdentityFrom(r.Context())
	stats, err := h.svc.DriverStats(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
