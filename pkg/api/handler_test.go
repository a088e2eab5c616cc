package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bouldern/pkg/colors"
	"bouldern/pkg/gyms"
	"bouldern/pkg/pipeline"
	"bouldern/pkg/routes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIndex(t *testing.T) {
	router := GetRouter(&mockUpdater{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetUpdate(t *testing.T) {
	updater := &mockUpdater{}
	router := GetRouter(updater)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gyms/Boulder%20Haus/update", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, updateInfo, resp.Status)
	assert.Empty(t, updater.RunCalls)
}

func TestPostUpdate(t *testing.T) {
	tests := []struct {
		name       string
		runErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"unknown gym", fmt.Errorf("%w: %q", gyms.ErrUnknownGym, "Boulder Haus"), http.StatusNotFound},
		{"ambiguous wall", &routes.AmbiguousWallColumnError{Row: 3, Columns: []string{"Unnamed: 1", "Unnamed: 2"}}, http.StatusUnprocessableEntity},
		{"sheet fetch", &routes.FetchError{Sheet: "sheet-1#gid=0", Err: errors.New("quota")}, http.StatusBadGateway},
		{"unknown section", &routes.UnknownSectionError{Row: 2, Section: "Z"}, http.StatusUnprocessableEntity},
		{"unknown color", &colors.UnknownColorError{Label: "Magenta"}, http.StatusUnprocessableEntity},
		{"persistence", fmt.Errorf("%w: %w", pipeline.ErrPersistence, errors.New("disk full")), http.StatusBadGateway},
		{"notification", fmt.Errorf("%w: %w", pipeline.ErrNotification, errors.New("unauthorized")), http.StatusBadGateway},
		{"render", fmt.Errorf("%w: %w", pipeline.ErrRender, errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := &mockUpdater{
				RunFunc: func(ctx context.Context, gymName string) error { return tt.runErr },
			}
			router := GetRouter(updater)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gyms/Boulder%20Haus/update", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, []string{"Boulder Haus"}, updater.RunCalls)
			if tt.runErr != nil {
				var resp statusResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.runErr.Error(), resp.Error)
			} else {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestPostUpdateUnknownRoute(t *testing.T) {
	router := GetRouter(&mockUpdater{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gyms/Boulder%20Haus", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
