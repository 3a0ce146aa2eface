package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MindTrace/internal/models"
	"MindTrace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLoginInstallsToken(t *testing.T) {
	var sawAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ada@example.com", body.Email)
			json.NewEncoder(w).Encode(models.Token{AccessToken: "tok123", TokenType: "bearer"})
		case "/user/profile":
			sawAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(models.Profile{ID: 1, Email: "ada@example.com"})
		}
	})

	_, err := c.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)
	_, err = c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", sawAuth)
}

func TestGetActiveAlertNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sos/alerts/active", r.URL.Path)
		w.Write([]byte("null"))
	})

	alert, err := c.GetActiveAlert(context.Background())
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestCreateAlertWireFormat(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(models.Alert{ID: 1, Status: models.AlertStatusActive})
	})

	battery := 87
	_, err := c.CreateAlert(context.Background(), models.AlertCreate{
		IsTest:           true,
		Location:         &models.Location{Lat: 51.5, Lng: -0.12, Address: "London"},
		BatteryLevel:     &battery,
		ConnectionStatus: models.ConnectionOnline,
	})
	require.NoError(t, err)

	assert.Equal(t, true, raw["is_test"])
	assert.Equal(t, float64(87), raw["battery_level"])
	assert.Equal(t, "online", raw["connection_status"])
	loc, ok := raw["location"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 51.5, loc["lat"])
	assert.Equal(t, -0.12, loc["lng"])
	assert.Equal(t, "London", loc["address"])
}

func TestListAlertsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "resolved", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]models.Alert{{ID: 3, Status: models.AlertStatusResolved}})
	})

	alerts, err := c.ListAlerts(context.Background(), 50, models.AlertStatusResolved)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 3, alerts[0].ID)
}

func TestServerDetailSurfaced(t *testing.T) {
	t.Run("detail propagates", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid or expired reset token"})
		})
		err := c.ResetPassword(context.Background(), "tok", "abcdef")
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired reset token", errors.UserMessage(err))
	})

	t.Run("missing detail falls back", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := c.ResetPassword(context.Background(), "tok", "abcdef")
		require.Error(t, err)
		assert.Equal(t, errors.FallbackMessage, errors.UserMessage(err))
	})

	t.Run("unauthorized gets auth code", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
		})
		_, err := c.Login(context.Background(), "a@b.com", "nope")
		require.Error(t, err)
		assert.Equal(t, errors.CodeAuth, errors.GetCode(err))
	})
}

func TestUploadProfileImageMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.jpg", header.Filename)
		json.NewEncoder(w).Encode(models.Profile{ID: 1, ProfileImageURL: "data:image/jpeg;base64,xxx"})
	})

	p, err := c.UploadProfileImage(context.Background(), "avatar.jpg", []byte("jpegdata"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ProfileImageURL)
}

func TestFaceEndpoints(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Jane", r.FormValue("name"))
			assert.Equal(t, "Self", r.FormValue("relation"))
			_, _, err := r.FormFile("file")
			require.NoError(t, err)
			json.NewEncoder(w).Encode(FaceRegisterResponse{Name: "Jane", Relation: "Self"})
		})
		out, err := c.RegisterFace(context.Background(), "Jane", "Self", "frame.jpg", []byte("jpeg"))
		require.NoError(t, err)
		assert.Equal(t, "Jane", out.Name)
	})

	t.Run("recognize", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.FaceMatch{Name: "Jane", Relation: "Self", Confidence: 0.42})
		})
		m, err := c.RecognizeFace(context.Background(), "frame.jpg", []byte("jpeg"))
		require.NoError(t, err)
		assert.InDelta(t, 0.42, m.Confidence, 1e-9)
	})
}

func TestUpdateAlertPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/sos/alerts/7", r.URL.Path)
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "resolved", raw["status"])
		assert.Equal(t, "caregiver", raw["resolved_by"])
		json.NewEncoder(w).Encode(models.Alert{ID: 7, Status: models.AlertStatusResolved})
	})

	_, err := c.UpdateAlert(context.Background(), 7, models.AlertUpdate{
		Status:     models.AlertStatusResolved,
		ResolvedBy: "caregiver",
	})
	require.NoError(t, err)
}
