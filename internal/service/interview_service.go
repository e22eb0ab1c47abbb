package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/DevChiefs/MockAI/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound covers both a missing session and a session owned
	// by someone else, so responses never reveal which one it was.
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid session input")
)

type InterviewService struct {
	sessionRepo repository.InterviewSessionRepository
}

func NewInterviewService(sessionRepo repository.InterviewSessionRepository) *InterviewService {
	return &InterviewService{sessionRepo: sessionRepo}
}

type CreateSessionInput struct {
	JobTitle       string
	JobDescription string
	ResumeText     string
}

func (s *InterviewService) Create(ctx context.Context, userID uuid.UUID, input CreateSessionInput) (*domain.InterviewSession, error) {
	jobTitle := strings.TrimSpace(input.JobTitle)
	resumeText := strings.TrimSpace(input.ResumeText)
	if jobTitle == "" || resumeText == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	session := &domain.InterviewSession{
		ID:             uuid.New(),
		UserID:         userID,
		JobTitle:       jobTitle,
		JobDescription: strings.TrimSpace(input.JobDescription),
		ResumeText:     resumeText,
		Status:         domain.SessionStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// getOwned loads a session and enforces ownership. Missing rows and foreign
// rows come back as the same error.
func (s *InterviewService) getOwned(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *InterviewService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, error) {
	return s.getOwned(ctx, userID, sessionID)
}

// List returns the requester's sessions, newest first.
func (s *InterviewService) List(ctx context.Context, userID uuid.UUID) ([]*domain.InterviewSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID)
}

// UpdateStatus applies a lifecycle transition and optionally attaches the
// voice SDK's call id. Concurrent transitions are last-write-wins.
func (s *InterviewService) UpdateStatus(ctx context.Context, userID, sessionID uuid.UUID, status domain.SessionStatus, externalCallID string) (*domain.InterviewSession, error) {
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	session.Status = status
	if externalCallID != "" {
		session.ExternalCallID = externalCallID
	}
	session.UpdatedAt = time.Now()

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *InterviewService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

// AttachCoachConfig stores the generated coach config on the session so the
// interview page can reuse it without another generation round trip.
func (s *InterviewService) AttachCoachConfig(ctx context.Context, userID, sessionID uuid.UUID, cfg domain.CoachConfig) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	session.CoachConfig = datatypes.JSON(payload)
	session.UpdatedAt = time.Now()

	return s.sessionRepo.Update(ctx, session)
}
