package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"bouldern/pkg/colors"
	"bouldern/pkg/gyms"
	"bouldern/pkg/pipeline"
	"bouldern/pkg/routes"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const updateInfo = "This page only exists to handle boulder app updates"

// Updater runs the update pipeline for one gym.
type Updater interface {
	Run(ctx context.Context, gymName string) error
}

type Handler struct {
	updater Updater
	// one update at a time
	mu  sync.Mutex
	now func() time.Time
}

func NewHandler(updater Updater) *Handler {
	return &Handler{updater: updater, now: time.Now}
}

type statusResponse struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func getIndex(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func getUpdate(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, statusResponse{Status: updateInfo})
}

func (h *Handler) postUpdate(w http.ResponseWriter, r *http.Request) {
	gym := chi.URLParam(r, "gym")
	logger := log.WithField("gym", gym)

	h.mu.Lock()
	defer h.mu.Unlock()

	start := h.now()
	err := h.updater.Run(r.Context(), gym)
	if err != nil {
		status := statusFor(err)
		logger.WithError(err).WithField("status", status).Error("gym update failed")
		sendJSON(w, status, statusResponse{Error: err.Error()})
		return
	}
	logger.WithField("took", h.now().Sub(start)).Info("gym update finished")
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gyms.ErrUnknownGym):
		return http.StatusNotFound
	case errors.Is(err, routes.ErrSheetFetch):
		return http.StatusBadGateway
	case errors.Is(err, routes.ErrDataLoad), errors.Is(err, colors.ErrColorResolution):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrPersistence), errors.Is(err, pipeline.ErrNotification):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	sendResponse(w, status, body)
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
