package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/LoriCiv/ten99/internal/core/usecase"
)

// registerEntityRoutes wires the uniform CRUD surface for one collection:
// list, create, get, partial update, delete, and the SSE change stream.
func registerEntityRoutes[T any, D usecase.Draft](
	mux *http.ServeMux,
	rt *Router,
	name string,
	uc *usecase.EntityUseCase[T, D],
) {
	base := "/v1/" + name

	mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		records, err := uc.List(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	})

	mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var draft D
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		record, err := uc.Create(r.Context(), userIDFromContext(r.Context()), draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	})

	mux.HandleFunc("GET "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		record, err := uc.Get(r.Context(), userIDFromContext(r.Context()), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("PATCH "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var draft D
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		record, err := uc.Update(r.Context(), userIDFromContext(r.Context()), r.PathValue("id"), draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Delete(r.Context(), userIDFromContext(r.Context()), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET "+base+"/watch", func(w http.ResponseWriter, r *http.Request) {
		updates, cancel, err := uc.Watch(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		defer cancel()

		if rt.metrics != nil {
			rt.metrics.WatchStreamOpened(rt.service, name)
			defer rt.metrics.WatchStreamClosed(rt.service, name)
		}

		streamJSON(w, r, updates)
	})
}

// streamJSON writes each refreshed result set as one SSE data event. The
// connection stays open until the client goes away or the subscription ends.
func streamJSON[T any](w http.ResponseWriter, r *http.Request, updates <-chan []T) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case records, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(records)
			if err != nil {
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
