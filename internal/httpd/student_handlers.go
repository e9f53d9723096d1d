package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/rebound/internal/contract"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.student.Dashboard(r.Context(), UserFromContext(r.Context()).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ReportDailyLog(w http.ResponseWriter, r *http.Request) {
	var req contract.DailyLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.student.ReportDailyLog(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	resp, err := h.student.Progress(r.Context(), UserFromContext(r.Context()).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Workload(w http.ResponseWriter, r *http.Request) {
	resp, err := h.student.Workload(r.Context(), UserFromContext(r.Context()).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Perspective(w http.ResponseWriter, r *http.Request) {
	var req contract.PerspectiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.student.Perspective(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req contract.BreakdownRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.student.Breakdown(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) StudentMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.student.Messages(r.Context(), UserFromContext(r.Context()).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewMessageViews(msgs))
}

func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	t, err := h.student.AddTask(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewTaskView(t))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	t, err := h.student.UpdateTask(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewTaskView(t))
}

func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.student.CompleteTask(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewTaskView(t))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.student.DeleteTask(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task removed")
}

func (h *Handler) AddSubject(w http.ResponseWriter, r *http.Request) {
	var req contract.SubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	s, err := h.student.AddSubject(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewSubjectView(s))
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateSubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	s, err := h.student.UpdateSubject(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewSubjectView(s))
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	if err := h.student.DeleteSubject(r.Context(), UserFromContext(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Subject and associated tasks removed")
}
