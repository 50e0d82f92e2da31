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

type TruckHandler struct {
	svc service.TruckService
	log logger.ILogger
}

func NewTruckHandler(svc service.TruckService, log logger.ILogger) *TruckHandler {
	return &TruckHandler{svc: svc, log: log}
}

func (h *TruckHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.Handle("POST /api/trucks", guard(auth.AdminOnly, h.handleCreate))
	mux.Handle("GET /api/trucks", guard(auth.AnyRole, h.handleList))
	mux.Handle("GET /api/trucks/{id}", guard(auth.AnyRole, h.handleGet))
	mux.Handle("PUT /api/trucks/{id}", guard(auth.AdminOnly, h.handleUpdate))
	mux.Handle("DELETE /api/trucks/{id}", guard(auth.AdminOnly, h.handleDelete))
}

func (h *TruckHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TruckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	truck, tiers, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.TruckResponse{Truck: truck, Tiers: tiers})
}

func (h *TruckHandler) handleList(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, trucks)
}

func (h *TruckHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	truck, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, truck)
}

// handleUpdate decodes the body over the stored truck, so omitted fields keep their values.
func (h *TruckHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	req := service.TruckRequestFrom(current)
	if !decodeJSON(w, r, &req) {
		return
	}
	truck, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, truck)
}

func (h *TruckHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	truck, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.TruckDeleteResponse{Message: "Truck deleted successfully", Truck: truck})
}
