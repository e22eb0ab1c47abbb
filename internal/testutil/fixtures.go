package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test User",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":           b.email,
		"password":        b.password,
		"confirmPassword": b.password,
		"name":            b.name,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: authResp.User.Email,
		Name:  authResp.User.Name,
	}

	return user, authResp.Token
}

// InterviewSessionBuilder creates test interview sessions with a builder pattern
type InterviewSessionBuilder struct {
	owner          *domain.User
	jobTitle       string
	jobDescription string
	resumeText     string
	status         domain.SessionStatus
	createdAt      time.Time
}

// NewInterviewSessionBuilder creates a new builder with default values
func NewInterviewSessionBuilder() *InterviewSessionBuilder {
	return &InterviewSessionBuilder{
		jobTitle:   "Backend Engineer",
		resumeText: "5 years of Go experience building HTTP services.",
		status:     domain.SessionStatusPending,
		createdAt:  time.Now(),
	}
}

// WithOwner sets the owning user
func (b *InterviewSessionBuilder) WithOwner(user *domain.User) *InterviewSessionBuilder {
	b.owner = user
	return b
}

// WithJobTitle sets the job title
func (b *InterviewSessionBuilder) WithJobTitle(title string) *InterviewSessionBuilder {
	b.jobTitle = title
	return b
}

// WithJobDescription sets the job description
func (b *InterviewSessionBuilder) WithJobDescription(description string) *InterviewSessionBuilder {
	b.jobDescription = description
	return b
}

// WithResumeText sets the resume text
func (b *InterviewSessionBuilder) WithResumeText(text string) *InterviewSessionBuilder {
	b.resumeText = text
	return b
}

// WithStatus sets the lifecycle status
func (b *InterviewSessionBuilder) WithStatus(status domain.SessionStatus) *InterviewSessionBuilder {
	b.status = status
	return b
}

// WithCreatedAt sets the creation timestamp, for ordering tests
func (b *InterviewSessionBuilder) WithCreatedAt(ts time.Time) *InterviewSessionBuilder {
	b.createdAt = ts
	return b
}

// Build creates the interview session in the database
func (b *InterviewSessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.InterviewSession {
	t.Helper()

	if b.owner == nil {
		b.owner, _ = NewUserBuilder().Build(t, db)
	}

	session := &domain.InterviewSession{
		ID:             uuid.New(),
		UserID:         b.owner.ID,
		JobTitle:       b.jobTitle,
		JobDescription: b.jobDescription,
		ResumeText:     b.resumeText,
		Status:         b.status,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.createdAt,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create interview session: %v", err)
	}

	return session
}
