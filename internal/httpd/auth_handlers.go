package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/contract"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req contract.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req contract.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req contract.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.auth.UpdateProfile(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewUserView(u))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req contract.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.auth.ChangePassword(r.Context(), UserFromContext(r.Context()).ID, req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated")
}

// ForgotPassword answers the same way whether or not the email is known.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req contract.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.auth.RequestPasswordReset(r.Context(), req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "If that email is registered, a reset link has been sent")
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req contract.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.Token = chi.URLParam(r, "token")

	err := h.auth.ResetPassword(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongPurpose):
		writeMessage(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	case err != nil:
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password has been reset")
}
