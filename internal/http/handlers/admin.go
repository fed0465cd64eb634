package handlers

import (
	"net/http"
	"time"

	"grocery-shopper/internal/logx"
)

const defaultDriftWindow = 24 * time.Hour

// AdminHandler serves operator reports.
type AdminHandler struct {
	drift  driftReader
	logger logx.Logger
	now    func() time.Time
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(logger logx.Logger, drift driftReader) *AdminHandler {
	return &AdminHandler{drift: drift, logger: logger, now: time.Now}
}

// Drift handles GET /admin/variance/drift?since=RFC3339.
// Without since the report covers the last day.
// @Summary Расхождение предпросмотра и решения бэкенда
// @Tags admin
// @Produce json
// @Param since query string false "RFC3339 lower bound"
// @Success 200 {object} driftReportDTO
// @Failure 400 {object} ErrorResponse "invalid since"
// @Router /admin/variance/drift [get]
func (h *AdminHandler) Drift(w http.ResponseWriter, r *http.Request) {
	since := h.now().Add(-defaultDriftWindow)
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid since: want RFC3339")
			return
		}
		since = t
	}
	since = since.UTC()

	rows, err := h.drift.DriftSummary(r.Context(), since)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	decisions, err := h.drift.Decisions(r.Context(), since)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	out := driftReportDTO{
		Since:     since,
		Rows:      make([]driftRowDTO, 0, len(rows)),
		Decisions: make(map[string]map[string]int64, len(decisions)),
	}
	for _, row := range rows {
		out.Total += row.Count
		if row.Predicted != row.Server {
			out.Mismatched += row.Count
		}
		out.Rows = append(out.Rows, driftRowDTO{
			Predicted: string(row.Predicted),
			Server:    string(row.Server),
			Count:     row.Count,
		})
	}
	for outcome, byDecision := range decisions {
		out.Decisions[string(outcome)] = byDecision
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
