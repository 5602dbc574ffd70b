package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func (rt *Router) createShareLink(w http.ResponseWriter, r *http.Request) {
	link, err := rt.share.CreateShareLink(r.Context(), userIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordShareLink(rt.service)
	}
	writeJSON(w, http.StatusCreated, link)
}

func (rt *Router) emailShareLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	link, err := rt.share.EmailShareLink(r.Context(), userIDFromContext(r.Context()), r.PathValue("id"), req.To)
	if rt.metrics != nil {
		rt.metrics.RecordShareEmail(rt.service, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// sendShareEmail is the direct delivery route: the caller supplies the
// whole message, sender included, with an already composed link. Unlike
// emailShareLink there is no configured-sender fallback; a missing from is
// a validation error.
func (rt *Router) sendShareEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string `json:"to"`
		From    string `json:"from"`
		Subject string `json:"subject"`
		Link    string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	err := rt.share.SendShareEmail(r.Context(), domain.ShareEmail{
		To:      req.To,
		From:    req.From,
		Subject: req.Subject,
		Link:    req.Link,
	})
	if rt.metrics != nil {
		rt.metrics.RecordShareEmail(rt.service, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully"})
}

func (rt *Router) shareNotify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipientEmail string `json:"recipientEmail"`
		FileData       struct {
			Title string `json:"title"`
		} `json:"fileData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	message, err := rt.share.Notify(r.Context(), userIDFromContext(r.Context()), req.RecipientEmail, req.FileData.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
