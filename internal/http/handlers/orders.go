package handlers

import (
	"net/http"

	"grocery-shopper/internal/logx"
)

// OrderHandler serves the driver's shopping session of an order.
type OrderHandler struct {
	sessions sessionRegistry
	logger   logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, sessions sessionRegistry) *OrderHandler {
	return &OrderHandler{sessions: sessions, logger: logger}
}

// open resolves the session of the {orderID} path parameter and writes the error response itself.
func (h *OrderHandler) open(w http.ResponseWriter, r *http.Request) (orderSession, bool) {
	orderID, err := pathParam(r, "orderID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	s, err := h.sessions.Open(r.Context(), orderID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return nil, false
	}
	return s, true
}

// Get handles GET /orders/{orderID}.
// @Summary Снимок заказа
// @Description Открывает сессию при первом обращении и возвращает позиции и прогресс
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} snapshotDTO
// @Failure 404 {object} ErrorResponse "order not found"
// @Router /orders/{orderID} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(s.Snapshot()))
}

// Refresh handles POST /orders/{orderID}/refresh.
func (h *OrderHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	snap, err := s.Refresh(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
}

// CloseSession handles DELETE /orders/{orderID}/session.
func (h *OrderHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathParam(r, "orderID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !h.sessions.Close(orderID) {
		writeError(h.logger, w, r, http.StatusNotFound, "no open session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewWeight handles POST /orders/{orderID}/items/{itemID}/weight/preview.
// @Summary Предпросмотр веса
// @Description Считает отклонение и ожидаемое решение без обращения к бэкенду
// @Tags orders
// @Accept json
// @Produce json
// @Param request body weightRequest true "Candidate weight"
// @Success 200 {object} previewDTO
// @Failure 400 {object} ErrorResponse "invalid weight"
// @Router /orders/{orderID}/items/{itemID}/weight/preview [post]
func (h *OrderHandler) PreviewWeight(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathParam(r, "itemID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req weightRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	ev, err := s.PreviewWeight(itemID, req.Weight)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, previewToResponse(ev))
}

// SubmitWeight handles POST /orders/{orderID}/items/{itemID}/weight.
// @Summary Отправить фактический вес
// @Tags orders
// @Accept json
// @Produce json
// @Param request body weightRequest true "Actual weight"
// @Success 200 {object} weightResultDTO
// @Failure 400 {object} ErrorResponse "invalid weight"
// @Failure 409 {object} ErrorResponse "order not editable or submission in flight"
// @Failure 502 {object} ErrorResponse "submission failed"
// @Router /orders/{orderID}/items/{itemID}/weight [post]
func (h *OrderHandler) SubmitWeight(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathParam(r, "itemID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req weightRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	res, err := s.SubmitWeight(r.Context(), itemID, req.Weight, req.Note)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, weightResultToResponse(res))
}

// SetFoundQuantity handles PUT /orders/{orderID}/items/{itemID}/found-quantity.
func (h *OrderHandler) SetFoundQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathParam(r, "itemID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req foundQuantityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	item, p, err := s.SetFoundQuantity(r.Context(), itemID, req.FoundQuantity, req.Notes)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, itemResultDTO{
		Item:     itemToResponse(item),
		Progress: progressToResponse(p),
	})
}

// Checkout handles POST /orders/{orderID}/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.open(w, r)
	if !ok {
		return
	}
	snap, err := s.ProceedToCheckout(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
}
