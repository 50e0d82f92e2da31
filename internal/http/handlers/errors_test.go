package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", &service.Error{Kind: service.KindValidation, Message: "bad input"}, http.StatusBadRequest, "bad input"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"forbidden", &service.Error{Kind: service.KindForbidden, Message: "nope"}, http.StatusForbidden, "nope"},
		{"not found", &service.Error{Kind: service.KindNotFound, Message: "truck not found"}, http.StatusNotFound, "truck not found"},
		{"wrapped conflict", fmt.Errorf("review: %w", &service.Error{Kind: service.KindConflict, Message: "dup"}), http.StatusConflict, "dup"},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger.NewNop(), tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.body), rec.Body.String())
		})
	}
}

func TestPathIDRejectsNonNumeric(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := pathID(w, r, "id"); ok {
			w.WriteHeader(http.StatusOK)
		}
	})

	for path, want := range map[string]int{
		"/things/12":  http.StatusOK,
		"/things/abc": http.StatusBadRequest,
		"/things/-3":  http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}
