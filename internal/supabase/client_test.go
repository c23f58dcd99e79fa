package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kademe/manage-user/internal/supabase"
)

func TestDo_SetsCredentialHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "eq.1", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1"}`))
	}))
	defer srv.Close()

	c := supabase.NewClient(srv.URL+"/", "anon-key", supabase.WithBearer("caller-token"))

	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), supabase.Request{
		Method: http.MethodGet,
		Path:   "/auth/v1/user",
		Query:  url.Values{"id": {"eq.1"}},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "u1", out.ID)
}

func TestDo_BearerDefaultsToAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := supabase.NewClient(srv.URL, "service-key")
	err := c.Do(context.Background(), supabase.Request{Method: http.MethodDelete, Path: "/x"}, nil)

	require.NoError(t, err)
}

func TestDo_EncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["target_user_id"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := supabase.NewClient(srv.URL, "k")
	err := c.Do(context.Background(), supabase.Request{
		Method: http.MethodPost,
		Path:   "/rest/v1/rpc/cleanup",
		Body:   map[string]string{"target_user_id": "u1"},
	}, nil)

	require.NoError(t, err)
}

func TestDo_ErrorBodies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    string
	}{
		{name: "gotrue msg", status: 404, body: `{"code":404,"error_code":"user_not_found","msg":"User not found"}`, message: "User not found", code: "user_not_found"},
		{name: "postgrest message", status: 400, body: `{"code":"22P02","message":"invalid input syntax for type uuid"}`, message: "invalid input syntax for type uuid", code: "22P02"},
		{name: "oauth style", status: 401, body: `{"error":"invalid_grant","error_description":"Invalid token"}`, message: "Invalid token"},
		{name: "plain text", status: 502, body: "bad gateway", message: "bad gateway"},
		{name: "empty", status: 503, body: "", message: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := supabase.NewClient(srv.URL, "k")
			err := c.Do(context.Background(), supabase.Request{Method: http.MethodGet, Path: "/"}, nil)

			require.Error(t, err)
			var apiErr *supabase.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.True(t, supabase.IsStatus(err, tt.status))
		})
	}
}
