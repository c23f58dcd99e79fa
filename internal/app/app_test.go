package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kademe/manage-user/internal/account"
	"github.com/kademe/manage-user/internal/app"
	"github.com/kademe/manage-user/internal/config"
)

func post(svc *account.Service) account.Result {
	return svc.Handle(context.Background(), account.Request{
		Method:        http.MethodPost,
		Authorization: "Bearer t",
		Body:          []byte(`{"action":"delete_user","userId":"u2"}`),
	})
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.Config
		wantConfigured bool
	}{
		{
			name: "no keys",
			cfg:  config.Config{SupabaseURL: "http://127.0.0.1:1"},
		},
		{
			name: "anon key without service key",
			cfg:  config.Config{SupabaseURL: "http://127.0.0.1:1", AnonKey: "anon"},
		},
		{
			name: "service key without session verifier",
			cfg:  config.Config{SupabaseURL: "http://127.0.0.1:1", ServiceRoleKey: "service"},
		},
		{
			name:           "anon and service keys",
			cfg:            config.Config{SupabaseURL: "http://127.0.0.1:1", AnonKey: "anon", ServiceRoleKey: "service"},
			wantConfigured: true,
		},
		{
			name:           "jwt secret and service key",
			cfg:            config.Config{SupabaseURL: "http://127.0.0.1:1", JWTSecret: "secret", ServiceRoleKey: "service"},
			wantConfigured: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := app.Build(context.Background(), &tt.cfg)
			require.NoError(t, err)
			defer a.Close()

			assert.Equal(t, tt.wantConfigured, a.Configured)
			assert.Nil(t, a.DB)
			require.NotNil(t, a.Service)

			res := post(a.Service)
			if tt.wantConfigured {
				// The bogus token fails verification, so configuration passed.
				assert.Equal(t, http.StatusUnauthorized, res.Status)
			} else {
				assert.Equal(t, http.StatusInternalServerError, res.Status)
				assert.Equal(t, account.ErrorBody{Error: "Sunucu yapılandırma hatası"}, res.Body)
			}
		})
	}
}

func TestBuild_InvalidDatabaseURL(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:    "http://127.0.0.1:1",
		AnonKey:        "anon",
		ServiceRoleKey: "service",
		DatabaseURL:    "://not a url",
	}

	a, err := app.Build(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestBuild_DatabaseURLIgnoredWithoutServiceKey(t *testing.T) {
	cfg := &config.Config{SupabaseURL: "http://127.0.0.1:1", DatabaseURL: "://not a url"}

	a, err := app.Build(context.Background(), cfg)

	require.NoError(t, err)
	assert.Nil(t, a.DB)
	assert.False(t, a.Configured)
}

func TestBuild_JWTSecretTrustsTokenClaims(t *testing.T) {
	var userLookups atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/v1/user":
			userLookups.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		case "/rest/v1/profiles":
			_, _ = w.Write([]byte(`[]`))
		case "/auth/v1/admin/users/u2":
			_, _ = w.Write([]byte(`{"id":"u2"}`))
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer upstream.Close()

	cfg := &config.Config{
		SupabaseURL:    upstream.URL,
		AnonKey:        "anon",
		ServiceRoleKey: "service",
		JWTSecret:      "jwt-secret",
	}
	a, err := app.Build(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	// Permissions embedded at issue time grant access without a provider lookup.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "u1",
		"role":          "authenticated",
		"email":         "operator@example.com",
		"user_metadata": map[string]any{"permissions": map[string]any{"settings": "full"}},
		"exp":           time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("jwt-secret"))
	require.NoError(t, err)

	res := a.Service.Handle(context.Background(), account.Request{
		Method:        http.MethodPost,
		Authorization: "Bearer " + token,
		Body:          []byte(`{"action":"update_password","userId":"u2","payload":{"newPassword":"secret1"}}`),
	})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, int32(0), userLookups.Load())
}
