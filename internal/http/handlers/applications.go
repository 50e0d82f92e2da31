package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/http/respond"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/middleware"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/service"
	"github.com/hongminglow/driveops-be/internal/uploads"
)

// Form keys posted by the public registration page.
const (
	formFullName = "Full_name"
	formEmail    = "Email"
	formPhone    = "Phone_number"
	formPassword = "Password"
	formCV       = "CV"
)

// ApplicationHandler serves driver applications.
type ApplicationHandler struct {
	svc       service.ApplicationService
	blobs     uploads.BlobStore
	maxUpload int64
	log       logger.ILogger
}

func NewApplicationHandler(svc service.ApplicationService, blobs uploads.BlobStore, maxUpload int64, log logger.ILogger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, blobs: blobs, maxUpload: maxUpload, log: log}
}

func (h *ApplicationHandler) Register(mux *http.ServeMux, guard middleware.Guard) {
	mux.HandleFunc("POST /api/applications", h.handleSubmit)
	mux.Handle("GET /api/applications", guard(auth.AdminOnly, h.handleList))
	mux.Handle("PUT /api/applications/review", guard(auth.AdminOnly, h.handleReview))
}

func (h *ApplicationHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if !h.readForm(w, r, &req) {
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.discardCV(r, req.CVPath)
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, app)
}

// discardCV removes a CV stored for a submission that was not persisted.
func (h *ApplicationHandler) discardCV(r *http.Request, path string) {
	if path == "" {
		return
	}
	if err := h.blobs.Delete(context.WithoutCancel(r.Context()), path); err != nil {
		h.log.Warning("failed to remove orphaned CV", logger.String("path", path), logger.Error(err))
	}
}

// readForm fills req from a multipart body and stores the optional CV file.
func (h *ApplicationHandler) readForm(w http.ResponseWriter, r *http.Request, req *dto.SubmitApplicationRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+maxJSONBody)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "upload is too large")
			return false
		}
		respond.Error(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	defer r.MultipartForm.RemoveAll()

	req.FullName = r.FormValue(formFullName)
	req.Email = r.FormValue(formEmail)
	req.Phone = r.FormValue(formPhone)
	req.Password = r.FormValue(formPassword)

	file, header, err := r.FormFile(formCV)
	if errors.Is(err, http.ErrMissingFile) {
		return true
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid CV upload")
		return false
	}
	defer file.Close()

	path, err := h.blobs.Save(r.Context(), header.Filename, file)
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		respond.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return false
	case errors.Is(err, uploads.ErrUnsupportedType):
		respond.Error(w, http.StatusBadRequest, "CV must be a PDF or Word document")
		return false
	case err != nil:
		writeServiceError(w, r, h.log, err)
		return false
	}
	req.CVPath = path
	return true
}

func (h *ApplicationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) handleReview(w http.ResponseWriter, r *http.Request) {
	var req dto.ReviewApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Approve == nil {
		respond.Error(w, http.StatusBadRequest, "email and approve are required")
		return
	}

	reviewer, _ := auth.IdentityFrom(r.Context())
	app, err := h.svc.Review(r.Context(), req.Email, *req.Approve, reviewer)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, app)
}
