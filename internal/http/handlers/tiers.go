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

type TierHandler struct {
	svc service.TierService
	log logger.ILogger
}

func NewTierHandler(svc service.TierService, log logger.ILogger) *TierHandler {
	return &TierHandler{svc: svc, log: log}
}

func (h *TierHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.Handle("POST /api/tiers", guard(auth.AdminOnly, h.handleCreate))
	mux.Handle("GET /api/tiers", guard(auth.AnyRole, h.handleList))
	mux.Handle("GET /api/tiers/{id}", guard(auth.AnyRole, h.handleGet))
	mux.Handle("GET /api/tiers/truck/{truckId}", guard(auth.AnyRole, h.handleListByTruck))
	mux.Handle("PUT /api/tiers/{id}", guard(auth.AdminOrDriver, h.handleUpdate))
	mux.Handle("DELETE /api/tiers/{id}", guard(auth.AdminOnly, h.handleDelete))
}

func (h *TierHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tier, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, tier)
}

func (h *TierHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, tiers)
}

func (h *TierHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tier, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, tier)
}

func (h *TierHandler) handleListByTruck(w http.ResponseWriter, r *http.Request) {
	truckID, ok := pathID(w, r, "truckId")
	if !ok {
		return
	}
	tiers, err := h.svc.ListByTruck(r.Context(), truckID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, tiers)
}

func (h *TierHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.TierUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, _ := auth.IdentityFrom(r.Context())
	tier, err := h.svc.Update(r.Context(), id, req, caller)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, tier)
}

func (h *TierHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tier, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.TierDeleteResponse{Message: "Tier deleted successfully", Tier: tier})
}
