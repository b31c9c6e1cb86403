package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// newVersionRouter mounts the version routes behind a stub auth layer that
// injects a fixed designer identity.
func newVersionRouter(t *testing.T) (*gin.Engine, *service.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svcs := service.NewServices(&service.ServiceDeps{
		Config: &config.Config{
			AdditionalModificationFee: decimal.NewFromInt(50),
			AutoArchiveAfterDays:      30,
		},
		Store: store.NewMemoryStore(),
	})
	h := NewHandlers(svcs)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "designer-1")
		c.Set("role", types.RoleDesigner)
	})
	r.DELETE("/versions/:id", h.Version.Delete)
	return r, svcs
}

func publishHandlerVersion(t *testing.T, svcs *service.Services) *models.DesignVersion {
	t.Helper()
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, &models.CreateProjectRequest{
		Name:       "Handler test project",
		ClientID:   "client-1",
		DesignerID: "designer-1",
	})
	require.NoError(t, err)

	version, err := svcs.Version.CreateVersion(ctx, project.ID, "designer-1", &models.CreateVersionRequest{
		Files: []models.CreateVersionFileInput{
			{Name: "draft.pdf", URL: "https://files.example.com/draft.pdf"},
		},
	})
	require.NoError(t, err)
	return version
}

func TestDeleteVersionUnknownIDReturnsNotFound(t *testing.T) {
	r, _ := newVersionRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/versions/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.NotContains(t, body, "deleted")
}

func TestDeleteVersionReportsDeletedOnce(t *testing.T) {
	r, svcs := newVersionRouter(t)
	version := publishHandlerVersion(t, svcs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/versions/"+version.ID, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["deleted"])

	// Deleting the same version again is no longer a success.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/versions/"+version.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
