package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/DevChiefs/MockAI/internal/cache"
	"github.com/DevChiefs/MockAI/internal/config"
	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/DevChiefs/MockAI/internal/llm"
)

const (
	maxResumeChars         = 12000
	maxJobDescriptionChars = 8000

	minFirstMessageChars = 40
	maxFirstMessageChars = 600
	minSystemPromptChars = 300
	minFocusAreas        = 3
	maxFocusAreas        = 6
	minFocusAreaChars    = 2
	maxFocusAreaChars    = 80
)

// CoachSource reports which path produced a coach config.
type CoachSource string

const (
	CoachSourceModel    CoachSource = "model"
	CoachSourceFallback CoachSource = "fallback"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

type CoachService struct {
	client llm.Client
	cache  *cache.Client
	cfg    *config.Config
}

// NewCoachService builds the coach-config generator. client may be nil, in
// which case every request takes the fallback path.
func NewCoachService(client llm.Client, cacheClient *cache.Client, cfg *config.Config) *CoachService {
	return &CoachService{
		client: client,
		cache:  cacheClient,
		cfg:    cfg,
	}
}

type BuildCoachConfigInput struct {
	JobTitle       string
	JobDescription string
	ResumeText     string
}

func normalizeText(text string, maxChars int) string {
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(collapsed)
	if len(runes) > maxChars {
		return string(runes[:maxChars])
	}
	return collapsed
}

// FallbackCoachConfig synthesizes a coach config from fixed templates. It is
// pure: the same inputs always produce the same output.
func FallbackCoachConfig(jobTitle, resumeText, jobDescription string) domain.CoachConfig {
	normalizedResume := normalizeText(resumeText, maxResumeChars)
	normalizedJobDescription := normalizeText(jobDescription, maxJobDescriptionChars)
	if normalizedJobDescription == "" {
		normalizedJobDescription = "Not provided"
	}

	return domain.CoachConfig{
		FirstMessage: fmt.Sprintf("Hello! I'm excited to interview you for the %s role. I reviewed your resume and will ask targeted questions. Let's start: tell me about yourself and why this role is a strong fit for you.", jobTitle),
		SystemPrompt: fmt.Sprintf(`You are an expert AI interview coach conducting a professional interview for the position: %s.

JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

YOUR ROLE:
1. Run a realistic interview with 5-7 strong questions.
2. Ask one question at a time and wait for the candidate's response.
3. Mix behavioral, technical, and problem-solving questions.
4. Reference resume details when relevant.
5. Give short, constructive feedback after important answers.
6. Ask concise follow-up questions to probe depth.
7. Keep tone warm, direct, and professional.
8. End by asking if they have any questions for the interviewer.

DO NOT:
- Ask "How can I help you?"
- Dump multiple questions in one turn
- Break role as interviewer`, jobTitle, normalizedJobDescription, normalizedResume),
		FocusAreas: []string{
			"experience depth",
			"technical clarity",
			"communication quality",
		},
	}
}

// Build returns a coach config and the path that produced it. The model path
// is best-effort: one attempt inside a bounded timeout, and any failure
// (unconfigured client, network, schema violation) falls back to the
// deterministic templates instead of surfacing an error.
func (s *CoachService) Build(ctx context.Context, input BuildCoachConfigInput) (domain.CoachConfig, CoachSource) {
	normalizedResume := normalizeText(input.ResumeText, maxResumeChars)
	normalizedJobDescription := normalizeText(input.JobDescription, maxJobDescriptionChars)

	if s.client == nil {
		return FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription), CoachSourceFallback
	}

	cacheKey := s.cacheKey(input.JobTitle, normalizedJobDescription, normalizedResume)
	if cached, _ := s.cache.Get(ctx, cacheKey); cached != nil {
		var cfg domain.CoachConfig
		if err := json.Unmarshal(cached, &cfg); err == nil {
			return cfg, CoachSourceModel
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CoachTimeout)
	defer cancel()

	raw, err := s.client.GenerateCoachConfig(callCtx, input.JobTitle, normalizedJobDescription, normalizedResume)
	if err != nil {
		log.Printf("ERROR [coach.Build] model generation failed, using fallback: %v", err)
		return FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription), CoachSourceFallback
	}

	cfg, err := s.validate(raw, input)
	if err != nil {
		log.Printf("ERROR [coach.Build] model output failed validation, using fallback: %v", err)
		return FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription), CoachSourceFallback
	}

	if payload, err := json.Marshal(cfg); err == nil {
		_ = s.cache.Set(ctx, cacheKey, payload, s.cfg.CoachCacheTTL)
	}

	return cfg, CoachSourceModel
}

func (s *CoachService) cacheKey(jobTitle, jobDescription, resumeText string) string {
	h := sha256.New()
	h.Write([]byte(s.cfg.CoachModel))
	h.Write([]byte{0})
	h.Write([]byte(jobTitle))
	h.Write([]byte{0})
	h.Write([]byte(jobDescription))
	h.Write([]byte{0})
	h.Write([]byte(resumeText))
	return "coach_config:" + hex.EncodeToString(h.Sum(nil))
}

// validate enforces the coach-config schema on model output. Too few usable
// focus areas is recoverable: the fallback's focus areas substitute in.
func (s *CoachService) validate(raw *domain.CoachConfig, input BuildCoachConfigInput) (domain.CoachConfig, error) {
	firstMessage := strings.TrimSpace(raw.FirstMessage)
	systemPrompt := strings.TrimSpace(raw.SystemPrompt)

	if n := len([]rune(firstMessage)); n < minFirstMessageChars || n > maxFirstMessageChars {
		return domain.CoachConfig{}, fmt.Errorf("first message length %d out of range", n)
	}
	if n := len([]rune(systemPrompt)); n < minSystemPromptChars {
		return domain.CoachConfig{}, fmt.Errorf("system prompt length %d below minimum", n)
	}

	focusAreas := make([]string, 0, maxFocusAreas)
	for _, area := range raw.FocusAreas {
		area = strings.TrimSpace(area)
		if n := len([]rune(area)); n < minFocusAreaChars || n > maxFocusAreaChars {
			continue
		}
		focusAreas = append(focusAreas, area)
		if len(focusAreas) == maxFocusAreas {
			break
		}
	}
	if len(focusAreas) < minFocusAreas {
		fallback := FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription)
		focusAreas = fallback.FocusAreas
	}

	return domain.CoachConfig{
		FirstMessage: firstMessage,
		SystemPrompt: systemPrompt,
		FocusAreas:   focusAreas,
	}, nil
}
