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

type TripHandler struct {
	svc service.TripService
	log logger.ILogger
}

func NewTripHandler(svc service.TripService, log logger.ILogger) *TripHandler {
	return &TripHandler{svc: svc, log: log}
}

func (h *TripHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.Handle("POST /api/trips", guard(auth.AdminOnly, h.handleCreate))
	mux.Handle("GET /api/trips", guard(auth.AnyRole, h.handleList))
	mux.Handle("GET /api/trips/{id}", guard(auth.AnyRole, h.handleGet))
	mux.Handle("PUT /api/trips/{id}", guard(auth.AdminOrDriver, h.handleUpdate))
	mux.Handle("DELETE /api/trips/{id}", guard(auth.AdminOnly, h.handleDelete))
}

func (h *TripHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) handleList(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, trips)
}

func (h *TripHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	trip, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, trip)
}

func (h *TripHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.TripUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, _ := auth.IdentityFrom(r.Context())
	trip, err := h.svc.Update(r.Context(), id, req, caller)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, trip)
}

func (h *TripHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	trip, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.TripDeleteResponse{Message: "Trip deleted successfully", Trip: trip})
}
