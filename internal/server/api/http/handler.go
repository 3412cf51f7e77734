// Package http serves the CEK endpoint of the skill.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/DenisKhanov/ClovaHome/internal/cek"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps the CEK request body.
const maxBodySize = 1 << 20

// ContentType is the content type CEK expects in responses.
const ContentType = "application/json;charset=UTF-8"

// Request outcomes reported to the RequestObserver.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Clova validates and routes CEK requests.
type Clova interface {
	Route(ctx context.Context, body []byte, header http.Header) (*cek.Response, error)
}

// RequestObserver records the outcome of each CEK request.
type RequestObserver interface {
	ObserveRequest(outcome string, elapsed time.Duration)
}

// Handler serves CEK requests.
type Handler struct {
	clova    Clova
	observer RequestObserver
}

// NewHandler creates a Handler forwarding requests to clova. observer may be nil.
func NewHandler(clova Clova, observer RequestObserver) *Handler {
	return &Handler{
		clova:    clova,
		observer: observer,
	}
}

// ServeCEK forwards the raw body and headers to the CEK router and writes its answer as JSON.
func (h *Handler) ServeCEK(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := OutcomeOK
	defer func() {
		if h.observer != nil {
			h.observer.ObserveRequest(outcome, time.Since(start))
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		outcome = OutcomeMalformed
		logrus.WithError(err).Warn("failed to read CEK request body")
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	res, err := h.clova.Route(r.Context(), body, r.Header)
	if err != nil {
		status := http.StatusInternalServerError
		outcome = OutcomeError
		switch {
		case errors.Is(err, cek.ErrMalformedRequest):
			status, outcome = http.StatusBadRequest, OutcomeMalformed
		case errors.Is(err, cek.ErrMissingSignature), errors.Is(err, cek.ErrApplicationMismatch):
			status, outcome = http.StatusForbidden, OutcomeRejected
		}
		logrus.WithError(err).Warnf("CEK request refused with status %d", status)
		writeError(w, status, http.StatusText(status))
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		outcome = OutcomeError
		logrus.WithError(err).Error("failed to encode CEK response")
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	// CEK expects JSON with an explicit charset
	w.Header().Set("Content-Type", ContentType)
	if _, err = w.Write(data); err != nil {
		logrus.WithError(err).Error("failed to write CEK response")
	}
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", ContentType)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
