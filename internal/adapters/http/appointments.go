package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"
)

func (rt *Router) parseAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	prefill, err := rt.prefill.Parse(r.Context(), userIDFromContext(r.Context()), req.Text)
	if rt.metrics != nil {
		rt.metrics.RecordPrefill(rt.service, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefill)
}

func (rt *Router) exportCalendar(w http.ResponseWriter, r *http.Request) {
	feed, err := rt.calendar.Export(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ten99.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(feed)
}

func (rt *Router) listInbox(w http.ResponseWriter, r *http.Request) {
	items, err := rt.inbox.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (rt *Router) acceptProposal(w http.ResponseWriter, r *http.Request) {
	result, err := rt.inbox.Accept(r.Context(), userIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) declineProposal(w http.ResponseWriter, r *http.Request) {
	if err := rt.inbox.Decline(r.Context(), userIDFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
