package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/DevChiefs/MockAI/internal/api/middleware"
	"github.com/DevChiefs/MockAI/internal/service"
	"github.com/google/uuid"
)

const (
	maxJobTitleLen       = 120
	maxJobDescriptionLen = 50000
	minResumeTextLen     = 10
	maxResumeTextLen     = 200000
)

type CoachHandler struct {
	coachService     *service.CoachService
	interviewService *service.InterviewService
}

func NewCoachHandler(coachService *service.CoachService, interviewService *service.InterviewService) *CoachHandler {
	return &CoachHandler{
		coachService:     coachService,
		interviewService: interviewService,
	}
}

type CoachConfigRequest struct {
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
	SessionID      string `json:"sessionId"`
}

// BuildConfig generates a coach config. A model failure is never an error
// here: the fallback result ships with success:true and source:"fallback".
// Only malformed input produces success:false.
func (h *CoachHandler) BuildConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CoachConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	if err := validateCoachConfigRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cfg, source := h.coachService.Build(r.Context(), service.BuildCoachConfigInput{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
	})

	if req.SessionID != "" {
		sessionID, err := uuid.Parse(req.SessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		if err := h.interviewService.AttachCoachConfig(r.Context(), user.ID, sessionID, cfg); err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				writeError(w, http.StatusNotFound, "Session not found")
				return
			}
			log.Printf("ERROR [coach.BuildConfig] attach config: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  string(source),
		"data":    cfg,
	})
}

func validateCoachConfigRequest(req *CoachConfigRequest) error {
	if n := len(req.JobTitle); n < 1 || n > maxJobTitleLen {
		return errors.New("job title length out of range")
	}
	if len(req.JobDescription) > maxJobDescriptionLen {
		return errors.New("job description too long")
	}
	if n := len(req.ResumeText); n < minResumeTextLen || n > maxResumeTextLen {
		return errors.New("resume text length out of range")
	}
	return nil
}
