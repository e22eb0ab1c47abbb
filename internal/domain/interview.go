package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus represents the lifecycle state of an interview session
type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusPending, SessionStatusInProgress, SessionStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Completed is terminal; a session never moves backwards. Re-asserting the
// current pending/in_progress state is allowed so that a retried call start
// is not an error.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusPending:
		return next == SessionStatusPending || next == SessionStatusInProgress || next == SessionStatusCompleted
	case SessionStatusInProgress:
		return next == SessionStatusInProgress || next == SessionStatusCompleted
	case SessionStatusCompleted:
		return false
	}
	return false
}

// InterviewSession is one mock-interview attempt owned by a user. ResumeText
// is plain text already extracted from the uploaded document; extraction
// happens outside this service.
type InterviewSession struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	JobTitle       string         `json:"jobTitle" gorm:"not null"`
	JobDescription string         `json:"jobDescription"`
	ResumeText     string         `json:"resumeText" gorm:"type:text;not null"`
	ExternalCallID string         `json:"externalCallId"`
	Status         SessionStatus  `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CoachConfig    datatypes.JSON `json:"coachConfig,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
