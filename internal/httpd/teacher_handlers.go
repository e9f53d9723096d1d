package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/rebound/internal/contract"
)

func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	entries, err := h.teacher.Roster(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if entries == nil {
		entries = []contract.RosterEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req contract.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	m, err := h.teacher.SendMessage(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewMessageView(m))
}

func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.teacher.Conversation(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "studentId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewMessageViews(msgs))
}
