package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DevChiefs/MockAI/internal/cache"
	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/DevChiefs/MockAI/internal/service"
	"github.com/DevChiefs/MockAI/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLLM returns a canned config or error and counts invocations.
type stubLLM struct {
	cfg   *domain.CoachConfig
	err   error
	calls int
}

func (s *stubLLM) GenerateCoachConfig(ctx context.Context, jobTitle, jobDescription, resumeText string) (*domain.CoachConfig, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func validModelConfig() *domain.CoachConfig {
	return &domain.CoachConfig{
		FirstMessage: strings.Repeat("Welcome to your mock interview! ", 3),
		SystemPrompt: strings.Repeat("You are a rigorous but fair interviewer. ", 10),
		FocusAreas:   []string{"system design", "incident response", "go internals"},
	}
}

func TestCoachService_FallbackIsDeterministic(t *testing.T) {
	first := service.FallbackCoachConfig("Backend Engineer", "5 years Go building APIs", "Own our payments platform")
	second := service.FallbackCoachConfig("Backend Engineer", "5 years Go building APIs", "Own our payments platform")

	assert.Equal(t, first, second)
	assert.Contains(t, first.FirstMessage, "Backend Engineer")
	assert.Contains(t, first.SystemPrompt, "Own our payments platform")
	assert.Equal(t, []string{"experience depth", "technical clarity", "communication quality"}, first.FocusAreas)
}

func TestCoachService_FallbackNormalizesInputs(t *testing.T) {
	cfg := service.FallbackCoachConfig("SRE", "  lots\n\nof \t whitespace  ", strings.Repeat("x", 9000))

	assert.Contains(t, cfg.SystemPrompt, "lots of whitespace")
	// Job description is truncated to its 8000-char bound
	assert.NotContains(t, cfg.SystemPrompt, strings.Repeat("x", 8001))
	assert.Contains(t, cfg.SystemPrompt, strings.Repeat("x", 8000))
}

func TestCoachService_FallbackWithoutJobDescription(t *testing.T) {
	cfg := service.FallbackCoachConfig("SRE", "resume text", "")
	assert.Contains(t, cfg.SystemPrompt, "Not provided")
}

func TestCoachService_Build(t *testing.T) {
	cfg := testutil.TestConfig()
	input := service.BuildCoachConfigInput{
		JobTitle:       "Backend Engineer",
		JobDescription: "Go services at scale",
		ResumeText:     "5 years Go...",
	}

	t.Run("nil client always falls back", func(t *testing.T) {
		svc := service.NewCoachService(nil, nil, cfg)

		got, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceFallback, source)
		assert.Equal(t, service.FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription), got)
	})

	t.Run("model failure falls back with identical output", func(t *testing.T) {
		stub := &stubLLM{err: errors.New("upstream timeout")}
		svc := service.NewCoachService(stub, nil, cfg)

		got, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceFallback, source)
		assert.Equal(t, service.FallbackCoachConfig(input.JobTitle, input.ResumeText, input.JobDescription), got)
		assert.Equal(t, 1, stub.calls, "exactly one attempt, no retries")
	})

	t.Run("model success", func(t *testing.T) {
		stub := &stubLLM{cfg: validModelConfig()}
		svc := service.NewCoachService(stub, nil, cfg)

		got, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceModel, source)
		assert.Len(t, got.FocusAreas, 3)
	})

	t.Run("short first message fails validation and falls back", func(t *testing.T) {
		invalid := validModelConfig()
		invalid.FirstMessage = "Hi there."
		stub := &stubLLM{cfg: invalid}
		svc := service.NewCoachService(stub, nil, cfg)

		_, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceFallback, source)
	})

	t.Run("short system prompt fails validation and falls back", func(t *testing.T) {
		invalid := validModelConfig()
		invalid.SystemPrompt = "Interview them."
		stub := &stubLLM{cfg: invalid}
		svc := service.NewCoachService(stub, nil, cfg)

		_, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceFallback, source)
	})

	t.Run("too few usable focus areas substitutes the fallback's", func(t *testing.T) {
		partial := validModelConfig()
		partial.FocusAreas = []string{"system design", "x", "   "}
		stub := &stubLLM{cfg: partial}
		svc := service.NewCoachService(stub, nil, cfg)

		got, source := svc.Build(context.Background(), input)

		assert.Equal(t, service.CoachSourceModel, source)
		assert.Equal(t, []string{"experience depth", "technical clarity", "communication quality"}, got.FocusAreas)
	})

	t.Run("overlong focus area list is capped at six", func(t *testing.T) {
		long := validModelConfig()
		long.FocusAreas = []string{"one", "two", "three", "four", "five", "six", "seven"}
		stub := &stubLLM{cfg: long}
		svc := service.NewCoachService(stub, nil, cfg)

		got, _ := svc.Build(context.Background(), input)

		assert.Len(t, got.FocusAreas, 6)
	})
}

func TestCoachService_CachesModelResults(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	stub := &stubLLM{cfg: validModelConfig()}
	svc := service.NewCoachService(stub, cacheClient, testutil.TestConfig())
	input := service.BuildCoachConfigInput{
		JobTitle:   "Backend Engineer",
		ResumeText: "5 years Go...",
	}

	first, source := svc.Build(context.Background(), input)
	require.Equal(t, service.CoachSourceModel, source)

	second, source := svc.Build(context.Background(), input)
	assert.Equal(t, service.CoachSourceModel, source)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls, "second request must be served from the cache")

	// Different inputs miss the cache
	input.JobTitle = "Staff Engineer"
	_, _ = svc.Build(context.Background(), input)
	assert.Equal(t, 2, stub.calls)
}

func TestCoachService_FallbackIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	stub := &stubLLM{err: errors.New("down")}
	svc := service.NewCoachService(stub, cacheClient, testutil.TestConfig())
	input := service.BuildCoachConfigInput{
		JobTitle:   "Backend Engineer",
		ResumeText: "5 years Go...",
	}

	_, source := svc.Build(context.Background(), input)
	require.Equal(t, service.CoachSourceFallback, source)

	_, source = svc.Build(context.Background(), input)
	assert.Equal(t, service.CoachSourceFallback, source)
	assert.Equal(t, 2, stub.calls, "failures are retried on the next request, not cached")
}
