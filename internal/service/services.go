package service

import (
	"github.com/DevChiefs/MockAI/internal/cache"
	"github.com/DevChiefs/MockAI/internal/config"
	"github.com/DevChiefs/MockAI/internal/llm"
	"github.com/DevChiefs/MockAI/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Interview *InterviewService
	Coach     *CoachService
}

func NewServices(repos *repository.Repositories, llmClient llm.Client, cacheClient *cache.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, repos.AuthSession, cfg),
		Interview: NewInterviewService(repos.InterviewSession),
		Coach:     NewCoachService(llmClient, cacheClient, cfg),
	}
}
