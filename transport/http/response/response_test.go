package response_test

import (
	"encoding/json"
	"errors"
	"heritage/shared/failure"
	"heritage/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody map[string]any
	}{
		{
			name:     "conflict keeps its kind",
			err:      failure.Conflict("place was modified concurrently, please retry"),
			wantCode: http.StatusConflict,
			wantBody: map[string]any{"error": "place was modified concurrently, please retry", "kind": "Conflict"},
		},
		{
			name:     "place not found",
			err:      failure.PlaceNotFound("place not found"),
			wantCode: http.StatusNotFound,
			wantBody: map[string]any{"error": "place not found", "kind": "PlaceNotFound"},
		},
		{
			name:     "unclassified errors are masked",
			err:      errors.New("pq: password authentication failed"),
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decode(t, recorder))
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "b1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "b1"}}, decode(t, recorder))
}

func TestWithPreparingShutdown(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithPreparingShutdown(recorder)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, map[string]any{"message": "SERVER PREPARING TO SHUT DOWN"}, decode(t, recorder))
}
