package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/sunshinej01/second-hand/internal/middleware"
	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/services"
)

const profileTestSecret = "profile-test-secret"

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(profileTestSecret))
	require.NoError(t, err)
	return signed
}

// newProfileRouter wires the auth routes against a fake backend that serves
// distinct users rows per identifier.
func newProfileRouter(t *testing.T) (*chi.Mux, *services.SessionService) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			json.NewEncoder(w).Encode(models.AuthSession{
				AccessToken: "session-token",
				User:        &models.AuthUser{ID: "user-b", Email: "b@example.com"},
			})
		case "/rest/v1/users":
			id := r.URL.Query().Get("id")
			nickname := map[string]string{
				"eq.user-a": "에이",
				"eq.user-b": "비",
			}[id]
			if nickname == "" {
				w.Write([]byte("[]"))
				return
			}
			userID := id[len("eq."):]
			if r.Method == http.MethodPatch {
				var patch map[string]interface{}
				json.NewDecoder(r.Body).Decode(&patch)
				if n, ok := patch["nickname"].(string); ok {
					nickname = n
				}
			}
			json.NewEncoder(w).Encode([]models.Profile{{ID: userID, Nickname: nickname}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	sessionService := services.NewSessionService(remote.NewClient(server.URL, "anon-key", time.Second))
	authHandler := NewAuthHandler(sessionService)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.JWTAuth(profileTestSecret))
		r.Get("/profile", authHandler.GetProfile)
		r.Put("/profile", authHandler.UpdateProfile)
	})
	return r, sessionService
}

func TestGetProfileServesAuthenticatedCaller(t *testing.T) {
	router, sessionService := newProfileRouter(t)

	// user-b holds the in-process session.
	_, err := sessionService.SignIn(context.Background(), &models.SignInRequest{
		Email: "b@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	// The request authenticates as user-a and must get user-a's row.
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-a"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	profile := resp.Data.(map[string]interface{})
	assert.Equal(t, "user-a", profile["id"])
	assert.Equal(t, "에이", profile["nickname"])
}

func TestUpdateProfilePatchesAuthenticatedCaller(t *testing.T) {
	router, sessionService := newProfileRouter(t)

	_, err := sessionService.SignIn(context.Background(), &models.SignInRequest{
		Email: "b@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"nickname": "새닉네임"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-a"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	profile := resp.Data.(map[string]interface{})
	assert.Equal(t, "user-a", profile["id"])
	assert.Equal(t, "새닉네임", profile["nickname"])
}

func TestGetProfileUnknownCaller(t *testing.T) {
	router, _ := newProfileRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-404"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProfileRequiresToken(t *testing.T) {
	router, _ := newProfileRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
