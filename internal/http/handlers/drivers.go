package handlers

import (
	"net/http"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/http/respond"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/middleware"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/service"
)

// DriverHandler exposes admin management of driver accounts.
type DriverHandler struct {
	svc service.DriverService
	log logger.ILogger
}

func NewDriverHandler(svc service.DriverService, log logger.ILogger) *DriverHandler {
	return &DriverHandler{svc: svc, log: log}
}

func (h *DriverHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.Handle("GET /api/users/drivers", guard(auth.AdminOnly, h.handleList))
	mux.Handle("POST /api/users/drivers", guard(auth.AdminOnly, h.handleCreate))
	mux.Handle("GET /api/users/drivers/{id}", guard(auth.AdminOnly, h.handleGet))
	mux.Handle("PUT /api/users/drivers/{id}", guard(auth.AdminOnly, h.handleUpdate))
	mux.Handle("DELETE /api/users/drivers/{id}", guard(auth.AdminOnly, h.handleDelete))
}

func (h *DriverHandler) handleList(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, drivers)
}

func (h *DriverHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	driver, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, driver)
}

func (h *DriverHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	driver, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, driver)
}

func (h *DriverHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.DriverUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	driver, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, driver)
}

func (h *DriverHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.Message(w, http.StatusOK, "Driver deleted successfully")
}
