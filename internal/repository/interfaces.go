package repository

import (
	"context"
	"time"

	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthSessionRepository interface {
	Create(ctx context.Context, session *domain.AuthSession) error
	GetByToken(ctx context.Context, token string) (*domain.AuthSession, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) error
}

type InterviewSessionRepository interface {
	Create(ctx context.Context, session *domain.InterviewSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.InterviewSession, error)
	Update(ctx context.Context, session *domain.InterviewSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User             UserRepository
	AuthSession      AuthSessionRepository
	InterviewSession InterviewSessionRepository
}
