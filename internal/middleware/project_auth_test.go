package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

func setupProjectAuth(t *testing.T) (*services.ProjectService, *docstore.Store) {
	s := miniredis.RunT(t)
	store := docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { store.Close() })

	activities := services.NewActivityService(store)
	milestones := services.NewMilestoneService(store)
	return services.NewProjectService(store, milestones, activities), store
}

func requestProject(t *testing.T, projects *services.ProjectService, projectID, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/projects/"+projectID, nil)
	c.Params = gin.Params{{Key: "id", Value: projectID}}
	c.Set(constants.ContextKeyUserID, userID)

	RequireProjectAccess(projects)(c)
	return c, w
}

func TestRequireProjectAccessAllowsMembers(t *testing.T) {
	projects, _ := setupProjectAuth(t)
	created, err := projects.CreateProject(context.Background(), services.CreateProjectInput{
		Name:      "HackMate",
		Duration:  models.Duration24h,
		CreatorID: "u1",
	})
	require.NoError(t, err)

	c, w := requestProject(t, projects, created.ID, "u1")

	assert.Equal(t, http.StatusOK, w.Code)
	project, ok := GetProject(c)
	require.True(t, ok)
	assert.Equal(t, created.ID, project.ID)
}

func TestRequireProjectAccessHidesProjectFromNonMembers(t *testing.T) {
	projects, _ := setupProjectAuth(t)
	created, err := projects.CreateProject(context.Background(), services.CreateProjectInput{
		Name:      "HackMate",
		Duration:  models.Duration24h,
		CreatorID: "u1",
	})
	require.NoError(t, err)

	// Non-members get the same 404 as a missing project.
	_, w := requestProject(t, projects, created.ID, "u2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, w = requestProject(t, projects, "missing", "u1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireProjectAccessDegradesWhenStoreIsSlow(t *testing.T) {
	s := miniredis.RunT(t)
	store := docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { store.Close() })

	activities := services.NewActivityService(store)
	milestones := services.NewMilestoneService(store)
	projects := services.NewProjectService(store, milestones, activities)

	created, err := projects.CreateProject(context.Background(), services.CreateProjectInput{
		Name:      "HackMate",
		Duration:  models.Duration24h,
		CreatorID: "u1",
	})
	require.NoError(t, err)
	s.Close()

	start := time.Now()
	_, w := requestProject(t, projects, created.ID, "u1")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Less(t, time.Since(start), constants.ProjectFetchTimeout)
}
