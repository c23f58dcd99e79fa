package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kademe/manage-user/internal/api/response"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	response.JSON(w, http.StatusOK, map[string]any{"success": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestErr(t *testing.T) {
	w := httptest.NewRecorder()

	response.Err(w, http.StatusForbidden, "Yetkisiz: Kullanıcı silme yetkiniz yok")

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Yetkisiz: Kullanıcı silme yetkiniz yok", body["error"])
	assert.Len(t, body, 1)
}

func TestPreflightOK(t *testing.T) {
	w := httptest.NewRecorder()

	response.PreflightOK(w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
