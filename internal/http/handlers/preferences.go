package handlers

import (
	"net/http"

	"grocery-shopper/internal/logx"
)

// PreferencesHandler serves the customer's variance preferences editor.
type PreferencesHandler struct {
	store  preferenceStore
	logger logx.Logger
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(logger logx.Logger, store preferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store, logger: logger}
}

func (h *PreferencesHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := pathParam(r, "userID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}

// Get handles GET /users/{userID}/preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	st, err := h.store.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, stateToResponse(st))
}

// Edit handles PATCH /users/{userID}/preferences.
// The draft is loaded first so editing never depends on a prior GET.
// @Summary Изменить черновик настроек
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body preferenceEditRequest true "Key and value"
// @Success 200 {object} preferenceStateDTO
// @Failure 400 {object} ErrorResponse "unknown key or value"
// @Router /users/{userID}/preferences [patch]
func (h *PreferencesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req preferenceEditRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if _, err := h.store.Get(r.Context(), userID); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	st, err := h.store.Set(r.Context(), userID, req.Key, req.Value)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, stateToResponse(st))
}

// Commit handles POST /users/{userID}/preferences/commit.
// @Summary Сохранить настройки
// @Tags preferences
// @Produce json
// @Success 200 {object} preferencesDTO
// @Failure 502 {object} ErrorResponse "commit failed, draft kept"
// @Router /users/{userID}/preferences/commit [post]
func (h *PreferencesHandler) Commit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	p, err := h.store.Commit(r.Context(), userID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, preferencesToResponse(p))
}

// Discard handles DELETE /users/{userID}/preferences/draft.
func (h *PreferencesHandler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.store.Discard(r.Context(), userID); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
