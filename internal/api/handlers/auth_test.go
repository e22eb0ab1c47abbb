package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DevChiefs/MockAI/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexTokenRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		expectedError  string
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":           "alice@example.com",
				"password":        "Passw0rd",
				"confirmPassword": "Passw0rd",
				"name":            "Alice",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.True(t, result.Success)
				assert.Regexp(t, hexTokenRe, result.Token)
				assert.Equal(t, "alice@example.com", result.User.Email)
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"password":        "password123",
				"confirmPassword": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":           "existing@example.com",
				"password":        "password123",
				"confirmPassword": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "already exists",
		},
		{
			name: "password mismatch",
			request: map[string]string{
				"email":           "mismatch@example.com",
				"password":        "password123",
				"confirmPassword": "password456",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "do not match",
		},
		{
			name: "five character password",
			request: map[string]string{
				"email":           "weak@example.com",
				"password":        "pass5",
				"confirmPassword": "pass5",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_RejectedRegistrationCreatesNoAccount(t *testing.T) {
	ts := testutil.NewTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"email":           "weak@example.com",
		"password":        "pass5",
		"confirmPassword": "pass5",
	})
	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Logging in with the rejected credentials must fail
	body, _ = json.Marshal(map[string]string{
		"email":    "weak@example.com",
		"password": "pass5",
	})
	resp, err = http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Invalid credentials")
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    user.Email,
				"password": password,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    user.Email,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
		{
			name: "unknown email gets the same error",
			request: map[string]string{
				"email":    "nobody@example.com",
				"password": password,
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			var result testutil.AuthResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.True(t, result.Success)
			assert.Regexp(t, hexTokenRe, result.Token)
		})
	}
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithEmail("me@example.com").
		BuildAndAuthenticate(t, ts)

	me := func() *http.Response {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/auth/me"), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := me()
	defer resp.Body.Close()
	var meResp struct {
		Success bool `json:"success"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.AssertJSONResponse(t, resp, &meResp)
	assert.True(t, meResp.Success)
	assert.Equal(t, user.ID.String(), meResp.User.ID)

	// Logout invalidates the token
	req, _ := http.NewRequest(http.MethodPost, ts.APIURL("/auth/logout"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	logoutResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	logoutResp.Body.Close()
	assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

	afterLogout := me()
	defer afterLogout.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, afterLogout.StatusCode)
}

func TestAuthHandler_MissingToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/auth/me"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
