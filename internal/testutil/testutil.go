// Package testutil holds request and token helpers shared by HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookreview/internal/platform/crypto"
)

// IssueToken returns a valid token for username signed with secret.
func IssueToken(secret, username string) string {
	token, err := crypto.NewTokenService(secret, time.Hour).Issue(username)
	if err != nil {
		panic(err)
	}
	return token
}

// ExpiredToken returns a correctly signed token that expired an hour ago.
func ExpiredToken(secret, username string) string {
	c := crypto.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return token
}

// NewRequest builds a test request. A string body is sent as is; anything else
// non-nil is JSON-encoded.
func NewRequest(method, path string, body any) *http.Request {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		if b != "" {
			rd = strings.NewReader(b)
		}
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		rd = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, rd)
	if rd != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewRequestWithAuth is NewRequest plus a bearer token when token is not empty.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

// Serve runs r through h and records the result. Body is only filled for JSON
// objects; arrays are left in Raw.
func Serve(h http.Handler, r *http.Request) RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	res := RecordResponse{
		Code:   w.Code,
		Header: w.Header(),
		Raw:    w.Body.Bytes(),
	}
	_ = json.Unmarshal(res.Raw, &res.Body)
	return res
}
