package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
)

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns each request a UUID, exposed in the X-Request-ID
// response header and attached to the context for logging. An incoming
// X-Request-ID is trusted if present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestIDFromContext returns the request's UUID, or an empty string.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with method, path, status,
// duration, and request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", requestIDFromContext(r.Context()),
		)
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps structured error codes onto HTTP statuses and writes the
// JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidCity,
		apperrors.ErrCodeInvalidMeasure, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodePatternNotFound,
		apperrors.ErrCodeYarnNotFound, apperrors.ErrCodeCityNotFound,
		apperrors.ErrCodeDesignerNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		status = http.StatusBadGateway
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeRateLimited:
		status = http.StatusBadGateway
	}

	var resp errorResponse
	resp.Error.Code = string(apperrors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(apperrors.ErrCodeInternal)
	}
	resp.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
