package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/credentials"
)

const testSecret = "test-secret-key"

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *Server {
	t.Helper()

	cfg := &config.Config{
		EndpointAddrHTTP:      "localhost:0",
		SecretKey:             testSecret,
		TokenValidityDuration: 20 * time.Minute,
		BcryptCost:            4,
		LogLevel:              "error",
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	svc := auth.NewService(credentials.NewMemoryRepository(), auth.NewPasswordHasher(cfg.BcryptCost), cfg, logger)

	return NewServer(cfg, svc, logger)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func credentialsBody(email, password string) string {
	b, _ := json.Marshal(map[string]string{"email": email, "password": password})
	return string(b)
}

func decodeAuthResponse(t *testing.T, w *httptest.ResponseRecorder) authResponse {
	t.Helper()
	var res authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestAliveEndpoint(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	w := doJSON(t, h, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is alive!", w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	// signup issues a token and a record id
	w := doJSON(t, h, http.MethodPost, "/auth/signup", credentialsBody("a@x.com", "password1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	signup := decodeAuthResponse(t, w)
	require.NotEmpty(t, signup.Token)
	require.NotEmpty(t, signup.AuthID)

	// signin with the same credentials returns the same record id
	w = doJSON(t, h, http.MethodPost, "/auth/signin", credentialsBody("a@x.com", "password1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	signin := decodeAuthResponse(t, w)
	assert.Equal(t, signup.AuthID, signin.AuthID)

	// wrong password
	w = doJSON(t, h, http.MethodPost, "/auth/signin", credentialsBody("a@x.com", "wrong0000"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid password", w.Body.String())

	// duplicate signup
	w = doJSON(t, h, http.MethodPost, "/auth/signup", credentialsBody("a@x.com", "password2"), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Auth already exists", w.Body.String())

	// unknown email
	w = doJSON(t, h, http.MethodPost, "/auth/signin", credentialsBody("missing@x.com", "password1"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Auth record not found", w.Body.String())
}

func TestAuthEndpoints_BadInput(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "signin not json", path: "/auth/signin", body: "not-json", want: http.StatusBadRequest},
		{name: "signin missing password", path: "/auth/signin", body: `{"email":"a@x.com"}`, want: http.StatusBadRequest},
		{name: "signup missing email", path: "/auth/signup", body: `{"password":"password1"}`, want: http.StatusBadRequest},
		{name: "signup malformed email", path: "/auth/signup", body: credentialsBody("nope", "password1"), want: http.StatusBadRequest},
		{name: "signup short password", path: "/auth/signup", body: credentialsBody("a@x.com", "short"), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestJWTCheck_ValidToken(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	w := doJSON(t, h, http.MethodPost, "/auth/signup", credentialsBody("a@x.com", "password1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeAuthResponse(t, w).Token

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+token)
	w = doJSON(t, h, http.MethodGet, "/jwt/check", "", hdr)

	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Valid     bool  `json:"valid"`
		ExpiresIn int64 `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Valid)
	assert.Greater(t, res.ExpiresIn, int64(0))
	assert.LessOrEqual(t, res.ExpiresIn, int64(20*60))
}

func TestJWTCheck_ExpiredToken(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	token, err := auth.GenerateToken("u1", []byte(testSecret), -1*time.Minute)
	require.NoError(t, err)

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+token)
	w := doJSON(t, h, http.MethodGet, "/jwt/check", "", hdr)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var res struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Valid)
	assert.Equal(t, "Token has expired", res.Message)
}

func TestJWTCheck_Rejections(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	forged, err := auth.GenerateToken("u1", []byte("some-other-secret"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong signature", header: "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := http.Header{}
			if tt.header != "" {
				hdr.Set("Authorization", tt.header)
			}
			w := doJSON(t, h, http.MethodGet, "/jwt/check", "", hdr)

			require.Equal(t, http.StatusUnauthorized, w.Code)

			var res struct {
				Valid bool `json:"valid"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.False(t, res.Valid)
		})
	}
}

func TestCORS_EnabledWhenConfigured(t *testing.T) {
	h := newTestServer(t, func(cfg *config.Config) {
		cfg.AllowedOrigins = []string{"https://app.example.com"}
	}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/auth/signin", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSignupMany_DistinctAuthIDs(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		email := fmt.Sprintf("user%d@x.com", i)
		w := doJSON(t, h, http.MethodPost, "/auth/signup", credentialsBody(email, "password1"), nil)
		require.Equal(t, http.StatusOK, w.Code)

		id := decodeAuthResponse(t, w).AuthID
		assert.False(t, seen[id], "auth ids must be unique per record")
		seen[id] = true
	}
}
