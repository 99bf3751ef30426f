package res_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"game-reports/pkg/res"
)

func TestJson(t *testing.T) {
	w := httptest.NewRecorder()
	res.Json(w, []string{"Action", "RPG"}, http.StatusOK)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `["Action","RPG"]`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	res.Error(w, "Genre parameter is required", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Genre parameter is required"}`, w.Body.String())
}

func TestError_EmptyMessage(t *testing.T) {
	w := httptest.NewRecorder()
	res.Error(w, "", http.StatusInternalServerError)

	assert.JSONEq(t, `{"error":"An unknown error occurred"}`, w.Body.String())
}
