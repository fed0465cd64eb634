package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	if logger != nil {
		logger.Warn("http error",
			logx.String("req_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("msg", msg),
		)
	}
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg})
}

// writeDomainError maps service errors onto HTTP statuses.
// Upstream failures are checked first: they may wrap a backend 404 or 409.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrSubmissionFailed), errors.Is(err, apperr.ErrPreferenceCommitFailed):
		if logger != nil {
			logger.Error("upstream call failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		}
		writeError(logger, w, r, http.StatusBadGateway, upstreamMessage(err))
	case errors.Is(err, apperr.ErrUpstream):
		if logger != nil {
			logger.Error("upstream call failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		}
		writeError(logger, w, r, http.StatusBadGateway, apperr.ErrUpstream.Error())
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	default:
		if logger != nil {
			logger.Error("internal error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		}
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// upstreamMessage keeps backend details out of the response.
func upstreamMessage(err error) string {
	if errors.Is(err, apperr.ErrPreferenceCommitFailed) {
		return apperr.ErrPreferenceCommitFailed.Error()
	}
	return apperr.ErrSubmissionFailed.Error()
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func pathParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		return "", errors.New("missing " + name)
	}
	return v, nil
}
