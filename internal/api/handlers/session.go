package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/DevChiefs/MockAI/internal/api/middleware"
	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/DevChiefs/MockAI/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	interviewService *service.InterviewService
}

func NewSessionHandler(interviewService *service.InterviewService) *SessionHandler {
	return &SessionHandler{interviewService: interviewService}
}

type CreateSessionRequest struct {
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

type UpdateStatusRequest struct {
	Status         string `json:"status"`
	ExternalCallID string `json:"externalCallId"`
}

type SessionResponse struct {
	Success bool                     `json:"success"`
	Session *domain.InterviewSession `json:"session"`
}

type SessionListResponse struct {
	Success  bool                       `json:"success"`
	Sessions []*domain.InterviewSession `json:"sessions"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.interviewService.Create(r.Context(), user.ID, service.CreateSessionInput{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Job title and resume text are required")
			return
		}
		log.Printf("ERROR [session.Create] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Success: true, Session: session})
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessions, err := h.interviewService.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [session.List] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SessionListResponse{Success: true, Sessions: sessions})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session, err := h.interviewService.Get(r.Context(), user.ID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR [session.Get] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Success: true, Session: session})
}

func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.interviewService.UpdateStatus(r.Context(), user.ID, sessionID,
		domain.SessionStatus(req.Status), req.ExternalCallID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Unknown session status")
		case errors.Is(err, service.ErrInvalidTransition):
			writeError(w, http.StatusConflict, "Invalid status transition")
		default:
			log.Printf("ERROR [session.UpdateStatus] %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Success: true, Session: session})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if err := h.interviewService.Delete(r.Context(), user.ID, sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR [session.Delete] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
