package auth

import (
	"errors"
	"net/http"
	"strings"

	"bookreview/internal/httpx"
	"bookreview/internal/user"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type credentialsReq struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type profileReq struct {
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// decodeCredentials reads a username/password body. It writes the error response
// itself and reports whether the handler should continue.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsReq, bool) {
	var req credentialsReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return req, false
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "Username and password are required", details)
		return req, false
	}
	return req, true
}

// Register handles POST /register
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Registration request"
// @Success 201 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 409 {object} httpx.MessageResponse
// @Router /register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			httpx.JSONMessage(w, r, http.StatusConflict, "Username already exists")
		case errors.Is(err, user.ErrMissingCredentials):
			httpx.JSONMessage(w, r, http.StatusBadRequest, "Username and password are required")
		default:
			httpx.InternalError(w, r, err)
		}
		return
	}

	httpx.JSONMessage(w, r, http.StatusCreated, "User registered successfully")
}

// Login handles POST /login
// @Summary User login
// @Description Authenticate and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Login request"
// @Success 200 {object} loginResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, username, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			httpx.JSONMessage(w, r, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, user.ErrMissingCredentials):
			httpx.JSONMessage(w, r, http.StatusBadRequest, "Username and password are required")
		default:
			httpx.InternalError(w, r, err)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, Username: username})
}

// Logout handles POST /customer/logout
// @Summary User logout
// @Description Tokens are stateless; the client discards its copy
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Router /customer/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.JSONMessage(w, r, http.StatusOK, "Logged out successfully")
}

// UpdateProfile handles PUT /customer/profile
// @Summary Change my password
// @Description The username keys every review and cannot be changed
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body profileReq true "Profile update"
// @Success 200 {object} profileResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /customer/profile [put]
func (h *HTTPHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller := httpx.UsernameFrom(r)

	var req profileReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "Password is required", details)
		return
	}
	if name := strings.TrimSpace(req.Username); name != "" && name != caller {
		httpx.JSONMessage(w, r, http.StatusBadRequest, "Username cannot be changed")
		return
	}

	if err := h.service.ChangePassword(r.Context(), caller, req.Password); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			httpx.JSONMessage(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, user.ErrMissingCredentials):
			httpx.JSONMessage(w, r, http.StatusBadRequest, "Password is required")
		default:
			httpx.InternalError(w, r, err)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, profileResponse{
		Message:  "Profile updated successfully",
		Username: caller,
	})
}
