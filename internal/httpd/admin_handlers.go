package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context(), domain.Role(r.URL.Query().Get("role")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	views := make([]contract.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, contract.NewUserView(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.admin.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewUserView(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.admin.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewUserView(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteUser(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "User removed")
}
