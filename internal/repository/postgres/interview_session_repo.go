package postgres

import (
	"context"

	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type interviewSessionRepository struct {
	db *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) *interviewSessionRepository {
	return &interviewSessionRepository{db: db}
}

func (r *interviewSessionRepository) Create(ctx context.Context, session *domain.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *interviewSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error) {
	var session domain.InterviewSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *interviewSessionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.InterviewSession, error) {
	var sessions []*domain.InterviewSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *interviewSessionRepository) Update(ctx context.Context, session *domain.InterviewSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *interviewSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.InterviewSession{}, "id = ?", id).Error
}
