package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview/internal/httpx"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/user"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T, repo user.Repository) (*HTTPHandler, *crypto.TokenService) {
	t.Helper()
	tokens := crypto.NewTokenService(testSecret, 0)
	return NewHTTPHandler(NewService(user.NewService(repo), tokens)), tokens
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpx.MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Message
}

func TestHTTPHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedMsg    string
	}{
		{"success", `{"username":"alice","password":"pw"}`, http.StatusCreated, "User registered successfully"},
		{"missing password", `{"username":"alice"}`, http.StatusBadRequest, "Username and password are required"},
		{"blank username", `{"username":"   ","password":"pw"}`, http.StatusBadRequest, "Username and password are required"},
		{"empty body", ``, http.StatusBadRequest, "Username and password are required"},
		{"malformed json", `{"username":`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t, user.NewMemoryRepo())

			w := httptest.NewRecorder()
			handler.Register(w, post(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, messageOf(t, w))
		})
	}
}

func TestHTTPHandler_RegisterDuplicate(t *testing.T) {
	handler, _ := newTestHandler(t, user.NewMemoryRepo())

	w := httptest.NewRecorder()
	handler.Register(w, post(`{"username":"alice","password":"pw"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	handler.Register(w, post(`{"username":" alice ","password":"other"}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", messageOf(t, w))
}

func TestHTTPHandler_RegisterRepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := user.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	handler, _ := newTestHandler(t, mockRepo)

	w := httptest.NewRecorder()
	handler.Register(w, post(`{"username":"alice","password":"pw"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTTPHandler_Login(t *testing.T) {
	repo := user.NewMemoryRepo()
	handler, tokens := newTestHandler(t, repo)

	w := httptest.NewRecorder()
	handler.Register(w, post(`{"username":"alice","password":"pw"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, post(`{"username":"alice","password":"pw"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var resp loginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "alice", resp.Username)

		username, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedMsg    string
	}{
		{"wrong password", `{"username":"alice","password":"nope"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", `{"username":"bob","password":"pw"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"case-sensitive username", `{"username":"Alice","password":"pw"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"missing fields", `{}`, http.StatusBadRequest, "Username and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, post(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, messageOf(t, w))
		})
	}
}

func TestHTTPHandler_Logout(t *testing.T) {
	handler, _ := newTestHandler(t, user.NewMemoryRepo())

	w := httptest.NewRecorder()
	handler.Logout(w, post(``))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", messageOf(t, w))
}

func TestHTTPHandler_UpdateProfile(t *testing.T) {
	repo := user.NewMemoryRepo()
	handler, _ := newTestHandler(t, repo)

	w := httptest.NewRecorder()
	handler.Register(w, post(`{"username":"alice","password":"old"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	asUser := func(username, body string) *http.Request {
		r := httptest.NewRequest(http.MethodPut, "/customer/profile", strings.NewReader(body))
		return r.WithContext(httpx.ContextWithUsername(r.Context(), username))
	}

	tests := []struct {
		name           string
		caller         string
		body           string
		expectedStatus int
		expectedMsg    string
	}{
		{"rename rejected", "alice", `{"username":"mallory","password":"new"}`, http.StatusBadRequest, "Username cannot be changed"},
		{"missing password", "alice", `{"username":"alice"}`, http.StatusBadRequest, "Password is required"},
		{"unknown caller", "ghost", `{"password":"new"}`, http.StatusNotFound, "User not found"},
		{"success", "alice", `{"username":"alice","password":"new"}`, http.StatusOK, "Profile updated successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.UpdateProfile(w, asUser(tt.caller, tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, messageOf(t, w))
		})
	}

	w = httptest.NewRecorder()
	handler.Login(w, post(`{"username":"alice","password":"old"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	handler.Login(w, post(`{"username":"alice","password":"new"}`))
	assert.Equal(t, http.StatusOK, w.Code)
}
